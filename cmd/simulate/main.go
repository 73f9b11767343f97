package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"runtime"
	"time"

	app "github.com/okian/skillswap/internal/app"
	"github.com/okian/skillswap/internal/domain/population"
	"github.com/okian/skillswap/internal/simulation"
	"github.com/okian/skillswap/pkg/logger"
)

// Default configuration constants.
const (
	defaultUsers      = 200
	defaultSwipes     = 10000
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultProb       = 0.5
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		users       = flag.Int("users", defaultUsers, "Number of users to generate before simulating")
		scenario    = flag.String("scenario", string(population.ScenarioBaseline), "Population scenario (baseline, scarcity, custom)")
		swipes      = flag.Int("swipes", defaultSwipes, "Number of swipes to simulate")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		probability = flag.Float64("probability", defaultProb, "Match probability for simulated swipes")
		seed        = flag.Int64("seed", 0, "Random seed (0 means time-based)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	log := logger.Get()

	opts := []app.Option{
		app.WithMatchProbability(*probability),
		app.WithSimWorkerCount(*workers),
	}
	if *seed != 0 {
		opts = append(opts, app.WithRandSeed(*seed))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	generated, err := svc.GeneratePopulation(ctx, *users, population.Scenario(*scenario))
	if err != nil {
		log.Error(ctx, "failed to generate population", logger.Error(err))
		return
	}
	log.Info(ctx, "population generated",
		logger.Int("users", len(generated)),
		logger.String("scenario", *scenario))

	cfg := simulation.Config{
		Swipes:  *swipes,
		Workers: *workers,
	}
	if *seed != 0 {
		cfg.Seed = *seed
		cfg.SeedSet = true
	}

	report, err := svc.Simulate(ctx, cfg)
	if err != nil {
		log.Error(ctx, "simulation failed", logger.Error(err))
		return
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Error(ctx, "failed to encode report", logger.Error(err))
		return
	}
	os.Stdout.Write(append(out, '\n'))
}

func showHelp() {
	os.Stdout.WriteString(`SkillSwap Simulation Tool
=========================

Generates a population and runs a swipe simulation against the
in-process matching service.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -users int
        Number of users to generate before simulating (default 200)
  -scenario string
        Population scenario: baseline, scarcity or custom (default "baseline")
  -swipes int
        Number of swipes to simulate (default 10000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -probability float
        Match probability applied to simulated mutual likes (default 0.5)
  -seed int
        Random seed for reproducible runs (0 means time-based)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/simulate/main.go

  # Reproducible scarcity run
  go run cmd/simulate/main.go -users 1000 -scenario scarcity -swipes 50000 -seed 42
`)
}
