// Package repository defines the storage contracts for the user
// directory, the swipe ledger, and the match set, plus in-memory
// implementations. Durable backends (the production system keeps both
// ledger and matches in a key-value store with prefix scans by actor)
// can replace the in-memory types behind the same interfaces.
package repository

import (
	"context"

	"github.com/okian/skillswap/internal/domain/model"
)

// Directory provides read/write access to user profiles.
type Directory interface {
	// ListUsers returns all users in stable insertion order.
	ListUsers(ctx context.Context) ([]model.User, error)

	// GetUser returns the user with the given id.
	// Returns ErrNotFound if the id is unknown.
	GetUser(ctx context.Context, id string) (model.User, error)

	// UpsertUser inserts the user or replaces the profile with the
	// same id. Insertion order is preserved across replacements.
	UpsertUser(ctx context.Context, u model.User) error

	// RemoveUser deletes the user. Returns ErrNotFound if absent.
	RemoveUser(ctx context.Context, id string) error

	// Count returns the number of users in the directory.
	Count(ctx context.Context) int

	// Clear removes all users.
	Clear(ctx context.Context)
}

// Ledger records one-directional swipe actions. At most one row exists
// per (actor, target) pair; recording again overwrites.
type Ledger interface {
	// Record inserts or overwrites the row for (actorID, targetID).
	// Returns ErrSelfSwipe when actorID == targetID and
	// ErrInvalidAction for unknown action values.
	Record(ctx context.Context, actorID, targetID string, action model.Action) error

	// Get returns the row for (actorID, targetID).
	// Returns ErrNotFound when the pair was never swiped.
	Get(ctx context.Context, actorID, targetID string) (model.SwipeAction, error)

	// HasSwiped reports whether actorID has already swiped targetID.
	HasSwiped(ctx context.Context, actorID, targetID string) bool

	// ListByActor returns all rows recorded by actorID.
	ListByActor(ctx context.Context, actorID string) ([]model.SwipeAction, error)

	// All returns every row in the ledger.
	All(ctx context.Context) ([]model.SwipeAction, error)

	// Len returns the number of rows.
	Len(ctx context.Context) int

	// Clear removes all rows. Used by reset-all only.
	Clear(ctx context.Context)
}

// MatchStore holds confirmed matches with unordered-pair uniqueness.
type MatchStore interface {
	// Create stores a match for the unordered pair {a, b}. When a
	// match for the pair already exists it is returned unchanged and
	// created is false. Returns ErrSelfSwipe when a == b.
	Create(ctx context.Context, a, b string) (m model.Match, created bool, err error)

	// GetByPair returns the match for the unordered pair {a, b}.
	// Returns ErrNotFound when the pair is unmatched.
	GetByPair(ctx context.Context, a, b string) (model.Match, error)

	// ListByUser returns all matches involving userID.
	ListByUser(ctx context.Context, userID string) ([]model.Match, error)

	// All returns every stored match.
	All(ctx context.Context) ([]model.Match, error)

	// RemoveByUser deletes all matches involving userID and returns
	// how many were removed.
	RemoveByUser(ctx context.Context, userID string) int

	// Len returns the number of matches.
	Len(ctx context.Context) int

	// Clear removes all matches. Used by reset-all only.
	Clear(ctx context.Context)
}
