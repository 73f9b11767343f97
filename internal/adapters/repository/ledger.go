package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/skillswap/internal/domain/model"
)

// pairRef is the ordered (actor, target) map key. Unlike match pair
// keys this is directional: A->B and B->A are distinct rows.
type pairRef struct {
	actor  string
	target string
}

// InMemoryLedger implements Ledger with a pair-keyed map plus a
// per-actor index for candidate filtering and statistics.
type InMemoryLedger struct {
	mu      sync.RWMutex
	rows    map[pairRef]model.SwipeAction
	byActor map[string][]string // actor -> target ids in record order
	now     func() time.Time
}

// LedgerOption applies a configuration option to the ledger.
type LedgerOption func(*InMemoryLedger)

// WithLedgerClock overrides the timestamp source. Used in tests.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(l *InMemoryLedger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewInMemoryLedger creates an empty in-memory swipe ledger.
func NewInMemoryLedger(opts ...LedgerOption) *InMemoryLedger {
	l := &InMemoryLedger{
		rows:    make(map[pairRef]model.SwipeAction),
		byActor: make(map[string][]string),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record inserts or overwrites the row for (actorID, targetID).
func (l *InMemoryLedger) Record(_ context.Context, actorID, targetID string, action model.Action) error {
	if actorID == targetID {
		return ErrSelfSwipe
	}
	if !action.Valid() {
		return ErrInvalidAction
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := pairRef{actor: actorID, target: targetID}
	if _, exists := l.rows[key]; !exists {
		l.byActor[actorID] = append(l.byActor[actorID], targetID)
	}
	l.rows[key] = model.SwipeAction{
		ActorID:   actorID,
		TargetID:  targetID,
		Action:    action,
		Timestamp: l.now().UTC(),
	}
	return nil
}

// Get returns the row for (actorID, targetID).
func (l *InMemoryLedger) Get(_ context.Context, actorID, targetID string) (model.SwipeAction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	row, ok := l.rows[pairRef{actor: actorID, target: targetID}]
	if !ok {
		return model.SwipeAction{}, ErrNotFound
	}
	return row, nil
}

// HasSwiped reports whether actorID has already swiped targetID.
func (l *InMemoryLedger) HasSwiped(_ context.Context, actorID, targetID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.rows[pairRef{actor: actorID, target: targetID}]
	return ok
}

// ListByActor returns all rows recorded by actorID in record order.
func (l *InMemoryLedger) ListByActor(_ context.Context, actorID string) ([]model.SwipeAction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	targets := l.byActor[actorID]
	out := make([]model.SwipeAction, 0, len(targets))
	for _, t := range targets {
		out = append(out, l.rows[pairRef{actor: actorID, target: t}])
	}
	return out, nil
}

// All returns every row in the ledger.
func (l *InMemoryLedger) All(_ context.Context) ([]model.SwipeAction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.SwipeAction, 0, len(l.rows))
	for _, row := range l.rows {
		out = append(out, row)
	}
	return out, nil
}

// Len returns the number of rows.
func (l *InMemoryLedger) Len(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rows)
}

// Clear removes all rows.
func (l *InMemoryLedger) Clear(_ context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = make(map[pairRef]model.SwipeAction)
	l.byActor = make(map[string][]string)
}
