package simulation

import (
	"runtime"
	"time"

	"github.com/okian/skillswap/internal/domain/types"
)

// Default run parameters.
const (
	DefaultSwipes    = 10000
	DefaultQueueSize = 100000
)

// Config holds configuration for a simulation run.
type Config struct {
	Swipes    int   // Number of swipes to drive through the pipeline
	Workers   int   // Number of concurrent workers
	QueueSize int   // Capacity of the swipe job queue
	Seed      int64 // Random seed, used only when SeedSet is true
	SeedSet   bool  // Whether Seed should override the time based seed

	// MatchProbability overrides the simulated mode match gate for
	// this run only, when MatchProbabilitySet is true. Must be in
	// [0,1].
	MatchProbability    float64
	MatchProbabilitySet bool
}

// Normalize fills zero fields with defaults.
func (c *Config) Normalize() {
	if c.Swipes <= 0 {
		c.Swipes = DefaultSwipes
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU() * 2
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
}

// Report summarizes a completed simulation run.
type Report struct {
	SwipesRequested int                   `json:"swipes_requested"`
	SwipesEnqueued  int                   `json:"swipes_enqueued"`
	SwipesProcessed int64                 `json:"swipes_processed"`
	Likes           int                   `json:"likes"`
	Passes          int                   `json:"passes"`
	MatchesMade     int64                 `json:"matches_made"`
	Failed          int64                 `json:"failed"`
	Duration        time.Duration         `json:"duration"`
	Stats           types.SimulationStats `json:"stats"`
}
