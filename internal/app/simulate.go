package service

import (
	"context"
	"fmt"

	"github.com/okian/skillswap/internal/simulation"
)

// Simulate runs a simulation batch against the current population.
// Zero config fields fall back to the service configuration. A per-run
// match probability applies only for the duration of the run; the
// configured gate is restored afterwards.
func (s *Service) Simulate(ctx context.Context, cfg simulation.Config) (simulation.Report, error) {
	if cfg.Swipes > s.maxSimulationSwipes {
		return simulation.Report{}, fmt.Errorf("simulate: %d swipes exceeds limit %d: %w",
			cfg.Swipes, s.maxSimulationSwipes, ErrInvalidSwipeCount)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = s.simWorkerCount
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = s.simQueueSize
	}
	if !cfg.SeedSet && s.seedSet {
		cfg.Seed = s.randSeed
		cfg.SeedSet = true
	}

	if cfg.MatchProbabilitySet {
		if cfg.MatchProbability < 0 || cfg.MatchProbability > 1 {
			return simulation.Report{}, fmt.Errorf("simulate: match probability %f: %w",
				cfg.MatchProbability, ErrInvalidProbability)
		}
		prev := s.reconciler.MatchProbability()
		s.reconciler.SetMatchProbability(cfg.MatchProbability)
		defer s.reconciler.SetMatchProbability(prev)
	}

	return simulation.Run(ctx, s, cfg)
}
