// Package affinity estimates how likely one user is to like another,
// based on overlap between what the actor seeks and what the target
// offers. The simulation driver draws actions from these estimates.
package affinity

import (
	"context"

	"github.com/okian/skillswap/internal/domain/model"
)

// Default probabilities for the simulation's like draws.
const (
	defaultOverlapProbability = 0.8
	defaultBaseProbability    = 0.2
)

// Estimator computes the probability that actor likes target.
type Estimator interface {
	LikeProbability(ctx context.Context, actor, target model.User) float64
}

// WeightedEstimator implements Estimator with two fixed tiers: one
// probability when a skill overlap exists, a lower base otherwise.
type WeightedEstimator struct {
	overlapProbability float64
	baseProbability    float64
}

// Option applies a configuration option to the WeightedEstimator.
type Option func(*WeightedEstimator)

// WithProbabilities overrides the overlap and base like probabilities.
// Values outside [0,1] are ignored.
func WithProbabilities(overlap, base float64) Option {
	return func(e *WeightedEstimator) {
		if overlap >= 0 && overlap <= 1 {
			e.overlapProbability = overlap
		}
		if base >= 0 && base <= 1 {
			e.baseProbability = base
		}
	}
}

// NewWeightedEstimator creates an estimator with default tiers.
func NewWeightedEstimator(opts ...Option) *WeightedEstimator {
	e := &WeightedEstimator{
		overlapProbability: defaultOverlapProbability,
		baseProbability:    defaultBaseProbability,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LikeProbability returns the overlap tier when any of actor's sought
// skills is offered by target, the base tier otherwise.
func (e *WeightedEstimator) LikeProbability(_ context.Context, actor, target model.User) float64 {
	if HasOverlap(actor, target) {
		return e.overlapProbability
	}
	return e.baseProbability
}

// HasOverlap reports whether actor.Seeking and target.Offering share a
// skill name.
func HasOverlap(actor, target model.User) bool {
	return actor.SeeksAnyOf(target.Offering)
}
