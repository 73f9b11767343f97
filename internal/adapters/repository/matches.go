package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/skillswap/internal/domain/model"
)

// InMemoryMatchStore implements MatchStore keyed by the canonical
// sorted-pair key, which enforces unordered-pair uniqueness without
// checking both orderings.
type InMemoryMatchStore struct {
	mu     sync.RWMutex
	byPair map[string]model.Match
	order  []string // pair keys in creation order
	now    func() time.Time
}

// MatchStoreOption applies a configuration option to the match store.
type MatchStoreOption func(*InMemoryMatchStore)

// WithMatchClock overrides the timestamp source. Used in tests.
func WithMatchClock(now func() time.Time) MatchStoreOption {
	return func(s *InMemoryMatchStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewInMemoryMatchStore creates an empty in-memory match store.
func NewInMemoryMatchStore(opts ...MatchStoreOption) *InMemoryMatchStore {
	s := &InMemoryMatchStore{
		byPair: make(map[string]model.Match),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a match for the unordered pair {a, b}, or returns the
// existing one unchanged.
func (s *InMemoryMatchStore) Create(_ context.Context, a, b string) (model.Match, bool, error) {
	if a == b {
		return model.Match{}, false, ErrSelfSwipe
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.PairKey(a, b)
	if existing, ok := s.byPair[key]; ok {
		return existing, false, nil
	}

	userA, userB := model.NormalizePair(a, b)
	m := model.Match{
		ID:        "match-" + uuid.New().String(),
		UserAID:   userA,
		UserBID:   userB,
		CreatedAt: s.now().UTC(),
	}
	s.byPair[key] = m
	s.order = append(s.order, key)
	return m, true, nil
}

// GetByPair returns the match for the unordered pair {a, b}.
func (s *InMemoryMatchStore) GetByPair(_ context.Context, a, b string) (model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byPair[model.PairKey(a, b)]
	if !ok {
		return model.Match{}, ErrNotFound
	}
	return m, nil
}

// ListByUser returns all matches involving userID in creation order.
func (s *InMemoryMatchStore) ListByUser(_ context.Context, userID string) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Match
	for _, key := range s.order {
		if m := s.byPair[key]; m.Involves(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

// All returns every stored match in creation order.
func (s *InMemoryMatchStore) All(_ context.Context) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Match, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byPair[key])
	}
	return out, nil
}

// RemoveByUser deletes all matches involving userID.
func (s *InMemoryMatchStore) RemoveByUser(_ context.Context, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	kept := s.order[:0]
	for _, key := range s.order {
		if m := s.byPair[key]; m.Involves(userID) {
			delete(s.byPair, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept
	return removed
}

// Len returns the number of matches.
func (s *InMemoryMatchStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byPair)
}

// Clear removes all matches.
func (s *InMemoryMatchStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPair = make(map[string]model.Match)
	s.order = nil
}
