package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	// ErrNotFound marks a missing user, swipe row, or match.
	ErrNotFound = errors.New("not found")

	// ErrSelfSwipe marks an attempt to act on one's own profile.
	ErrSelfSwipe = errors.New("actor and target are the same user")

	// ErrInvalidAction marks an unknown swipe action value.
	ErrInvalidAction = errors.New("invalid swipe action")

	// ErrInvalidUser marks a profile with missing required fields.
	ErrInvalidUser = errors.New("invalid user profile")
)
