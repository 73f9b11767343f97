// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	repository "github.com/okian/skillswap/internal/adapters/repository"
	"github.com/okian/skillswap/internal/domain/affinity"
	"github.com/okian/skillswap/internal/domain/matching"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/population"
	"github.com/okian/skillswap/internal/domain/skills"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

// Service implements the API dependencies for the skill exchange system.
type Service struct {
	mu sync.RWMutex

	// Core components
	directory  repository.Directory
	ledger     repository.Ledger
	matches    repository.MatchStore
	reconciler *matching.Reconciler
	selector   *matching.Selector
	estimator  affinity.Estimator

	// Configuration
	matchProbability    float64
	likeProbOverlap     float64
	likeProbBase        float64
	simWorkerCount      int
	simQueueSize        int
	maxPopulationPerGen int
	maxSimulationSwipes int
	randSeed            int64
	seedSet             bool

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMatchProbability sets the match gate probability used in
// simulated mode.
func WithMatchProbability(p float64) Option {
	return func(s *Service) {
		if p >= 0 && p <= 1 {
			s.matchProbability = p
		}
	}
}

// WithLikeProbabilities sets the like probabilities used when
// simulating swipe decisions.
func WithLikeProbabilities(overlap, base float64) Option {
	return func(s *Service) {
		if overlap >= 0 && overlap <= 1 && base >= 0 && base <= 1 {
			s.likeProbOverlap = overlap
			s.likeProbBase = base
		}
	}
}

// WithSimWorkerCount sets the number of simulation worker goroutines.
func WithSimWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.simWorkerCount = count
		}
	}
}

// WithSimQueueSize sets the maximum size of the simulation swipe queue.
func WithSimQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.simQueueSize = size
		}
	}
}

// WithMaxPopulation caps how many users a single generation request
// may create.
func WithMaxPopulation(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxPopulationPerGen = limit
		}
	}
}

// WithMaxSimulationSwipes caps how many swipes one simulation run may
// drive.
func WithMaxSimulationSwipes(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxSimulationSwipes = limit
		}
	}
}

// WithRandSeed fixes the random seed for reproducible runs.
func WithRandSeed(seed int64) Option {
	return func(s *Service) {
		s.randSeed = seed
		s.seedSet = true
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		matchProbability:    0.5,
		likeProbOverlap:     0.8,
		likeProbBase:        0.2,
		simWorkerCount:      runtime.NumCPU() * 2,
		simQueueSize:        100000,
		maxPopulationPerGen: 10000,
		maxSimulationSwipes: 1000000,
		stopCh:              make(chan struct{}),
		logger:              nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting skill exchange service...")

	// Initialize components
	s.directory = repository.NewInMemoryDirectory()
	s.ledger = repository.NewInMemoryLedger()
	s.matches = repository.NewInMemoryMatchStore()

	reconcilerOpts := []matching.Option{
		matching.WithMatchProbability(s.matchProbability),
		matching.WithLogger(s.logger.Named("reconciler")),
	}
	if s.seedSet {
		reconcilerOpts = append(reconcilerOpts, matching.WithRandSeed(s.randSeed))
	}
	s.reconciler = matching.NewReconciler(s.ledger, s.matches, reconcilerOpts...)
	s.selector = matching.NewSelector(s.directory, s.ledger, s.matches)
	s.estimator = affinity.NewWeightedEstimator(
		affinity.WithProbabilities(s.likeProbOverlap, s.likeProbBase),
	)

	s.started = true
	s.logger.Info(ctx, "skill exchange service started",
		logger.Float64("matchProbability", s.matchProbability),
		logger.Int("simWorkers", s.simWorkerCount),
		logger.Int("simQueueSize", s.simQueueSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping skill exchange service...")

	// Signal cleanup loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "skill exchange service stopped")
}

// UpsertUser creates or replaces a user profile. New users are
// assigned an id when none is provided.
func (s *Service) UpsertUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = model.NewUserID()
	}
	if u.Name == "" {
		return model.User{}, fmt.Errorf("upsert user %s: %w", u.ID, repository.ErrInvalidUser)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if err := s.directory.UpsertUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("upsert user %s: %w", u.ID, err)
	}
	metrics.UpdatePopulationSize(s.directory.Count(ctx))
	return u, nil
}

// GetUser returns the profile for the given user id.
func (s *Service) GetUser(ctx context.Context, userID string) (model.User, error) {
	return s.directory.GetUser(ctx, userID)
}

// ListUsers returns every profile in insertion order.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.directory.ListUsers(ctx)
}

// RemoveUser deletes a user and prunes the matches that involve them.
func (s *Service) RemoveUser(ctx context.Context, userID string) error {
	if err := s.directory.RemoveUser(ctx, userID); err != nil {
		return fmt.Errorf("remove user %s: %w", userID, err)
	}
	pruned := s.matches.RemoveByUser(ctx, userID)
	if pruned > 0 {
		s.logger.Info(ctx, "pruned matches for removed user",
			logger.String("userID", userID),
			logger.Int("pruned", pruned),
		)
	}
	metrics.UpdatePopulationSize(s.directory.Count(ctx))
	metrics.UpdateMatchesTotal(s.matches.Len(ctx))
	return nil
}

// SeedDemo inserts the demo profiles when the directory is empty.
// It returns the directory contents either way.
func (s *Service) SeedDemo(ctx context.Context) ([]model.User, error) {
	if s.directory.Count(ctx) == 0 {
		for _, u := range seedUsers() {
			if err := s.directory.UpsertUser(ctx, u); err != nil {
				return nil, fmt.Errorf("seed demo user %s: %w", u.ID, err)
			}
		}
		s.logger.Info(ctx, "seeded demo profiles", logger.Int("count", s.directory.Count(ctx)))
		metrics.UpdatePopulationSize(s.directory.Count(ctx))
	}
	return s.directory.ListUsers(ctx)
}

// GeneratePopulation creates count synthetic users for the given
// scenario and adds them to the directory.
func (s *Service) GeneratePopulation(ctx context.Context, count int, scenario population.Scenario) ([]model.User, error) {
	if count < 1 {
		return nil, fmt.Errorf("generate population: count %d: %w", count, ErrInvalidPopulationSize)
	}
	if count > s.maxPopulationPerGen {
		return nil, fmt.Errorf("generate population: count %d exceeds limit %d: %w",
			count, s.maxPopulationPerGen, ErrInvalidPopulationSize)
	}
	if !scenario.Valid() {
		return nil, fmt.Errorf("generate population: scenario %q: %w", scenario, ErrUnknownScenario)
	}

	genOpts := []population.Option{}
	if s.seedSet {
		genOpts = append(genOpts, population.WithSeed(s.randSeed))
	}
	gen := population.New(genOpts...)

	users := gen.GeneratePopulation(count, scenario)
	for _, u := range users {
		if err := s.directory.UpsertUser(ctx, u); err != nil {
			return nil, fmt.Errorf("generate population: %w", err)
		}
	}

	metrics.RecordPopulationGenerated(count)
	metrics.UpdatePopulationSize(s.directory.Count(ctx))
	s.logger.Info(ctx, "generated population",
		logger.Int("count", count),
		logger.String("scenario", string(scenario)),
	)
	return users, nil
}

// GetCandidates returns the swipe deck for a user.
func (s *Service) GetCandidates(ctx context.Context, userID string) ([]model.User, error) {
	return s.selector.Candidates(ctx, userID)
}

// Swipe records a swipe and reconciles any resulting match. Both
// parties must exist in the directory.
func (s *Service) Swipe(ctx context.Context, actorID, targetID string, action model.Action, mode matching.Mode) (types.SwipeResult, error) {
	if _, err := s.directory.GetUser(ctx, actorID); err != nil {
		return types.SwipeResult{}, fmt.Errorf("swipe actor %s: %w", actorID, err)
	}
	if _, err := s.directory.GetUser(ctx, targetID); err != nil {
		return types.SwipeResult{}, fmt.Errorf("swipe target %s: %w", targetID, err)
	}

	result, err := s.reconciler.Swipe(ctx, actorID, targetID, action, mode)
	if err != nil {
		return types.SwipeResult{}, err
	}

	metrics.UpdateLedgerSize(s.ledger.Len(ctx))
	if result.Matched {
		metrics.UpdateMatchesTotal(s.matches.Len(ctx))
	}
	return result, nil
}

// GetMatches returns a user's matches with the counterpart profile
// resolved on each entry.
func (s *Service) GetMatches(ctx context.Context, userID string) ([]types.MatchView, error) {
	if _, err := s.directory.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("matches for %s: %w", userID, err)
	}

	ms, err := s.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]types.MatchView, 0, len(ms))
	for _, m := range ms {
		counterpart, err := s.directory.GetUser(ctx, m.Counterpart(userID))
		if err != nil {
			// Counterpart no longer in the directory.
			continue
		}
		views = append(views, types.MatchView{
			ID:          m.ID,
			CreatedAt:   m.CreatedAt,
			Counterpart: counterpart,
		})
	}
	return views, nil
}

// GetStats recomputes the population statistics from current state.
func (s *Service) GetStats(ctx context.Context) (types.SimulationStats, error) {
	return matching.ComputeStats(ctx, s.directory, s.ledger, s.matches)
}

// ResetAll clears the directory, the swipe ledger, and the matches.
func (s *Service) ResetAll(ctx context.Context) {
	s.directory.Clear(ctx)
	s.ledger.Clear(ctx)
	s.matches.Clear(ctx)

	metrics.UpdatePopulationSize(0)
	metrics.UpdateLedgerSize(0)
	metrics.UpdateMatchesTotal(0)
	s.logger.Info(ctx, "reset all state")
}

// SetMatchProbability updates the simulated mode match gate at runtime.
func (s *Service) SetMatchProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("match probability %f: %w", p, ErrInvalidProbability)
	}
	s.reconciler.SetMatchProbability(p)
	return nil
}

// MatchProbability returns the current simulated mode match gate.
func (s *Service) MatchProbability() float64 {
	return s.reconciler.MatchProbability()
}

// Estimator returns the like probability estimator used by
// simulation drivers.
func (s *Service) Estimator() affinity.Estimator {
	return s.estimator
}

// SimWorkerCount returns the configured simulation worker count.
func (s *Service) SimWorkerCount() int {
	return s.simWorkerCount
}

// SimQueueSize returns the configured simulation queue capacity.
func (s *Service) SimQueueSize() int {
	return s.simQueueSize
}

// SkillCatalogSize returns the number of skills in the taxonomy.
func (s *Service) SkillCatalogSize() int {
	return skills.Count()
}

// GetServiceStats returns service statistics for monitoring.
func (s *Service) GetServiceStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"simWorkerCount":   s.simWorkerCount,
		"simQueueSize":     s.simQueueSize,
		"matchProbability": s.matchProbability,
	}

	if s.started {
		totalUsers := s.directory.Count(ctx)
		totalSwipes := s.ledger.Len(ctx)
		totalMatches := s.matches.Len(ctx)

		stats["totalUsers"] = totalUsers
		stats["totalSwipes"] = totalSwipes
		stats["totalMatches"] = totalMatches

		// Update metrics
		metrics.UpdatePopulationSize(totalUsers)
		metrics.UpdateLedgerSize(totalSwipes)
		metrics.UpdateMatchesTotal(totalMatches)
	}

	return stats
}

// seedUsers returns the built-in demo profiles.
func seedUsers() []model.User {
	now := time.Now().UTC()
	return []model.User{
		{
			ID:     "seed-1",
			Name:   "Sarah Stellar",
			Role:   "Designer",
			School: "Nebula Arts",
			Bio:    "Graphic designer wanting to learn to code.",
			Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400&auto=format&fit=crop&q=60",
			Offering: []model.Skill{
				skills.New("Graphic Design"),
				skills.New("Photoshop"),
			},
			Seeking: []model.Skill{
				skills.New("React"),
				skills.New("Web Dev"),
			},
			CreatedAt: now,
		},
		{
			ID:     "seed-2",
			Name:   "Mike Meteor",
			Role:   "Musician",
			School: "Rock Star Academy",
			Bio:    "Guitarist looking for website help.",
			Avatar: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=400&auto=format&fit=crop&q=60",
			Offering: []model.Skill{
				skills.New("Guitar"),
				skills.New("Music Theory"),
			},
			Seeking: []model.Skill{
				skills.New("HTML/CSS"),
				skills.New("JavaScript"),
			},
			CreatedAt: now,
		},
		{
			ID:     "seed-3",
			Name:   "Luna Lander",
			Role:   "Chef",
			School: "Culinary Institute",
			Bio:    "Chef who wants to learn Spanish.",
			Avatar: "https://images.unsplash.com/photo-1580489944761-15a19d654956?w=400&auto=format&fit=crop&q=60",
			Offering: []model.Skill{
				skills.New("Cooking"),
				skills.New("Italian Cuisine"),
			},
			Seeking: []model.Skill{
				skills.New("Spanish"),
				skills.New("Language"),
			},
			CreatedAt: now,
		},
		{
			ID:     "seed-4",
			Name:   "Comet Chris",
			Role:   "Tutor",
			School: "Quantum High",
			Bio:    "Math tutor looking for piano lessons.",
			Avatar: "https://images.unsplash.com/photo-1633332755192-727a05c4013d?w=400&auto=format&fit=crop&q=60",
			Offering: []model.Skill{
				skills.New("Calculus"),
				skills.New("Algebra"),
			},
			Seeking: []model.Skill{
				skills.New("Piano"),
				skills.New("Music"),
			},
			CreatedAt: now,
		},
	}
}
