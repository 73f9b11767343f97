// Package matching implements the swipe reconciliation rule, candidate
// selection, and the derived statistics over ledger and match state.
package matching

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/skillswap/internal/adapters/repository"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

// Mode selects the reconciliation semantics for a swipe.
type Mode string

const (
	// ModeDeterministic creates a match exactly when a mutual like
	// exists. Production semantics, and the default.
	ModeDeterministic Mode = "deterministic"
	// ModeSimulated additionally gates mutual likes behind an
	// independent probability draw, modeling uncertainty about the
	// counterpart's true interest. Confined to the simulation path.
	ModeSimulated Mode = "simulated"
)

// Valid reports whether the mode is a known value.
func (m Mode) Valid() bool {
	return m == ModeDeterministic || m == ModeSimulated
}

// defaultMatchProbability is the simulated-mode gate used when no
// override is configured.
const defaultMatchProbability = 0.5

// Reconciler applies the swipe->match rule. The record, reciprocal
// lookup, and match creation run under one mutex so racing swipes for
// the same pair can never produce two matches.
type Reconciler struct {
	mu      sync.Mutex
	ledger  repository.Ledger
	matches repository.MatchStore

	// Simulated-mode state, guarded by mu.
	rng              *rand.Rand
	matchProbability float64

	log logger.Logger
}

// Option applies a configuration option to the Reconciler.
type Option func(*Reconciler)

// WithMatchProbability sets the simulated-mode gate. Values outside
// [0,1] are ignored.
func WithMatchProbability(p float64) Option {
	return func(r *Reconciler) {
		if p >= 0 && p <= 1 {
			r.matchProbability = p
		}
	}
}

// WithRandSeed fixes the simulated-mode random source. Used in tests.
func WithRandSeed(seed int64) Option {
	return func(r *Reconciler) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Reconciler) {
		if log != nil {
			r.log = log
		}
	}
}

// NewReconciler creates a reconciler over the given ledger and match
// store.
func NewReconciler(ledger repository.Ledger, matches repository.MatchStore, opts ...Option) *Reconciler {
	r := &Reconciler{
		ledger:           ledger,
		matches:          matches,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		matchProbability: defaultMatchProbability,
		log:              logger.Get().Named("reconciler"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetMatchProbability updates the simulated-mode gate at runtime.
// Values outside [0,1] are ignored.
func (r *Reconciler) SetMatchProbability(p float64) {
	if p < 0 || p > 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchProbability = p
}

// MatchProbability returns the current simulated-mode gate.
func (r *Reconciler) MatchProbability() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matchProbability
}

// Swipe records the action and, on a like, checks for the reciprocal
// like and creates at most one match for the unordered pair. Re-swiping
// the same pair overwrites the prior row rather than duplicating it.
func (r *Reconciler) Swipe(ctx context.Context, actorID, targetID string, action model.Action, mode Mode) (types.SwipeResult, error) {
	if actorID == targetID {
		return types.SwipeResult{}, repository.ErrSelfSwipe
	}
	if !action.Valid() {
		return types.SwipeResult{}, repository.ErrInvalidAction
	}
	if !mode.Valid() {
		mode = ModeDeterministic
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ledger.Record(ctx, actorID, targetID, action); err != nil {
		return types.SwipeResult{}, err
	}
	metrics.RecordSwipe(string(action))

	if action == model.ActionPass {
		return types.SwipeResult{}, nil
	}

	reciprocal, err := r.ledger.Get(ctx, targetID, actorID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// No reciprocal swipe yet; the swipe stands alone.
		return types.SwipeResult{}, nil
	case err != nil:
		return types.SwipeResult{}, fmt.Errorf("reciprocal lookup %s->%s: %w", targetID, actorID, err)
	case reciprocal.Action != model.ActionLike:
		return types.SwipeResult{}, nil
	}

	if mode == ModeSimulated && r.rng.Float64() >= r.matchProbability {
		metrics.RecordMatchGateRejected()
		return types.SwipeResult{}, nil
	}

	m, created, err := r.matches.Create(ctx, actorID, targetID)
	if err != nil {
		return types.SwipeResult{}, err
	}
	if created {
		metrics.RecordMatchCreated()
		r.log.Debug(ctx, "match created",
			logger.String("matchID", m.ID),
			logger.String("userA", m.UserAID),
			logger.String("userB", m.UserBID))
	} else {
		metrics.RecordMatchDuplicateSuppressed()
	}
	return types.SwipeResult{Matched: true, MatchID: m.ID}, nil
}
