package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/skillswap/internal/domain/population"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SKILLSWAP_CONFIG is set
//  3. env (prefix SKILLSWAP_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SKILLSWAP_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SKILLSWAP_ADDR, SKILLSWAP_MATCH_PROBABILITY, ...
	// Map env keys like SKILLSWAP_SIM_WORKER_COUNT -> sim_worker_count
	// (flat keys, underscores preserved to match koanf tags).
	envProvider := env.Provider("SKILLSWAP_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "skillswap_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks invariants that would otherwise surface as subtle
// runtime misbehavior.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MatchProbability < 0 || c.MatchProbability > 1:
		return fmt.Errorf("%w: match_probability must be in [0,1]", ErrInvalidConfig)
	case c.LikeProbabilityOverlap < 0 || c.LikeProbabilityOverlap > 1:
		return fmt.Errorf("%w: like_probability_overlap must be in [0,1]", ErrInvalidConfig)
	case c.LikeProbabilityBase < 0 || c.LikeProbabilityBase > 1:
		return fmt.Errorf("%w: like_probability_base must be in [0,1]", ErrInvalidConfig)
	case c.SimWorkerCount <= 0:
		return fmt.Errorf("%w: sim_worker_count must be positive", ErrInvalidConfig)
	case c.SimQueueSize <= 0:
		return fmt.Errorf("%w: sim_queue_size must be positive", ErrInvalidConfig)
	case c.MaxPopulationPerSeed <= 0:
		return fmt.Errorf("%w: max_population_per_seed must be positive", ErrInvalidConfig)
	case c.MaxSimulationSwipes <= 0:
		return fmt.Errorf("%w: max_simulation_swipes must be positive", ErrInvalidConfig)
	case !population.Scenario(c.DefaultScenario).Valid():
		return fmt.Errorf("%w: default_scenario %q is not a known scenario", ErrInvalidConfig, c.DefaultScenario)
	}
	return nil
}
