// Package simulation drives synthetic swipe traffic through the
// matching pipeline and reports the resulting population statistics.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	swipequeue "github.com/okian/skillswap/internal/adapters/mq/queue"
	workerpool "github.com/okian/skillswap/internal/adapters/mq/worker"
	"github.com/okian/skillswap/internal/domain/affinity"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

// enqueueBackoff is how long the driver waits before retrying a full queue.
const enqueueBackoff = time.Millisecond

// Service is what a simulation run needs from the application.
type Service interface {
	workerpool.Swiper
	ListUsers(ctx context.Context) ([]model.User, error)
	Estimator() affinity.Estimator
	GetStats(ctx context.Context) (types.SimulationStats, error)
}

// Run drives cfg.Swipes random swipes through the worker pool and
// returns the resulting report.
func Run(ctx context.Context, svc Service, cfg Config) (Report, error) {
	cfg.Normalize()
	start := time.Now()

	log := logger.Get().Named("simulation")
	log.Info(ctx, "starting simulation run",
		logger.Int("swipes", cfg.Swipes),
		logger.Int("workers", cfg.Workers),
		logger.Int("queueSize", cfg.QueueSize),
	)

	users, err := svc.ListUsers(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("simulation: list users: %w", err)
	}
	if len(users) < 2 {
		return Report{}, fmt.Errorf("simulation: %d users: %w", len(users), ErrInsufficientUsers)
	}

	seed := time.Now().UnixNano()
	if cfg.SeedSet {
		seed = cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	q := swipequeue.NewInMemoryQueue(
		swipequeue.WithCapacity(cfg.QueueSize),
		swipequeue.WithBufferSize(cfg.QueueSize),
	)
	pool := workerpool.NewPool(cfg.Workers, q, svc)
	pool.Start(ctx)

	report := Report{SwipesRequested: cfg.Swipes}
	estimator := svc.Estimator()

	for i := 0; i < cfg.Swipes; i++ {
		actor := users[rng.Intn(len(users))]
		target := users[rng.Intn(len(users))]
		for target.ID == actor.ID {
			target = users[rng.Intn(len(users))]
		}

		action := model.ActionPass
		if rng.Float64() < estimator.LikeProbability(ctx, actor, target) {
			action = model.ActionLike
		}
		if action == model.ActionLike {
			report.Likes++
		} else {
			report.Passes++
		}

		job := swipequeue.Job{ActorID: actor.ID, TargetID: target.ID, Action: action}
		for !q.Enqueue(ctx, job) {
			if ctx.Err() != nil {
				_ = q.Close()
				return report, fmt.Errorf("simulation: enqueue: %w", ctx.Err())
			}
			time.Sleep(enqueueBackoff)
		}
		report.SwipesEnqueued++
	}

	if err := q.Close(); err != nil {
		log.Warn(ctx, "closing simulation queue", logger.Error(err))
	}
	if err := pool.Wait(ctx); err != nil {
		return report, fmt.Errorf("simulation: drain: %w", err)
	}

	report.SwipesProcessed, report.MatchesMade, report.Failed = pool.Totals()
	report.Duration = time.Since(start)
	report.Stats, err = svc.GetStats(ctx)
	if err != nil {
		return report, fmt.Errorf("simulation: stats: %w", err)
	}

	metrics.RecordSimulationRun(report.SwipesEnqueued, float64(report.Duration.Milliseconds()))
	displayReport(ctx, log, report)

	return report, nil
}

// displayReport logs the final run statistics.
func displayReport(ctx context.Context, log logger.Logger, r Report) {
	var swipesPerSecond float64
	if r.Duration > 0 {
		swipesPerSecond = float64(r.SwipesProcessed) / r.Duration.Seconds()
	}

	log.Info(ctx, "simulation run complete",
		logger.Int("swipesRequested", r.SwipesRequested),
		logger.Int("swipesEnqueued", r.SwipesEnqueued),
		logger.Int64("swipesProcessed", r.SwipesProcessed),
		logger.Int("likes", r.Likes),
		logger.Int("passes", r.Passes),
		logger.Int64("matchesMade", r.MatchesMade),
		logger.Int64("failed", r.Failed),
		logger.String("duration", r.Duration.String()),
		logger.Float64("swipesPerSecond", swipesPerSecond),
		logger.Float64("matchRate", r.Stats.MatchRate),
		logger.Float64("userUtilization", r.Stats.UserUtilization),
	)
}
