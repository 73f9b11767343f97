// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file/env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MatchProbability gates simulated-mode match creation. In [0,1].
	MatchProbability float64 `koanf:"match_probability"`

	// LikeProbabilityOverlap is the simulation's like probability when
	// the actor seeks a skill the target offers.
	LikeProbabilityOverlap float64 `koanf:"like_probability_overlap"`

	// LikeProbabilityBase is the simulation's like probability without
	// a skill overlap.
	LikeProbabilityBase float64 `koanf:"like_probability_base"`

	// SimWorkerCount sets the number of simulation swipe workers.
	SimWorkerCount int `koanf:"sim_worker_count"`

	// SimQueueSize bounds the in-memory simulation job queue.
	SimQueueSize int `koanf:"sim_queue_size"`

	// MaxPopulationPerSeed caps POST /seed?count to bound memory use.
	MaxPopulationPerSeed int `koanf:"max_population_per_seed"`

	// MaxSimulationSwipes caps a single POST /simulate run.
	MaxSimulationSwipes int `koanf:"max_simulation_swipes"`

	// DefaultScenario names the generator policy used when a seed
	// request omits one: baseline or scarcity.
	DefaultScenario string `koanf:"default_scenario"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		MatchProbability:       0.5,
		LikeProbabilityOverlap: 0.8,
		LikeProbabilityBase:    0.2,
		SimWorkerCount:         runtime.NumCPU() * 2,
		SimQueueSize:           100_000,
		MaxPopulationPerSeed:   10_000,
		MaxSimulationSwipes:    1_000_000,
		DefaultScenario:        "baseline",
	}
}
