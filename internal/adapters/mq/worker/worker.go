// Package worker defines the worker pool that drains simulation swipe
// jobs into the match reconciler.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/skillswap/internal/adapters/mq/queue"
	"github.com/okian/skillswap/internal/domain/matching"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = queue.Job

// Swiper reconciles one swipe. All workers funnel through the same
// Swiper so the at-most-one-match invariant holds under parallelism.
type Swiper interface {
	Swipe(ctx context.Context, actorID, targetID string, action model.Action, mode matching.Mode) (types.SwipeResult, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes swipe jobs using the provided Swiper.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing swipe jobs.
type InMemoryWorker struct {
	queue  Queue
	swiper Swiper
	name   string

	// Result counters shared with the owning pool.
	pool *Pool

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, swiper Swiper, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		swiper:   swiper,
		name:     "worker", // default name
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing swipe job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob reconciles a single swipe in simulated mode.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	result, err := w.swiper.Swipe(ctx, job.ActorID, job.TargetID, job.Action, matching.ModeSimulated)
	if err != nil {
		metrics.RecordWorkerError()
		if w.pool != nil {
			w.pool.errorCount.Add(1)
		}
		return fmt.Errorf("swipe %s->%s failed: %w", job.ActorID, job.TargetID, err)
	}

	if w.pool != nil {
		w.pool.processedCount.Add(1)
		if result.Matched {
			w.pool.matchedCount.Add(1)
		}
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	swiper  Swiper

	// Shutdown control
	shutdown chan struct{}

	// Result tracking
	processedCount atomic.Int64
	matchedCount   atomic.Int64
	errorCount     atomic.Int64

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, swiper Swiper) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    q,
		swiper:   swiper,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(
			q,
			swiper,
			WithName("worker-"+strconv.Itoa(i)),
		)
		w.pool = pool
		pool.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerActiveCount(len(p.workers))
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has stopped (queue closed and drained)
// or ctx is done.
func (p *Pool) Wait(ctx context.Context) error {
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "wait aborted", logger.Int("worker_id", i))
			return ctx.Err()
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}

// Totals returns the number of processed jobs, matches made, and
// failed jobs so far.
func (p *Pool) Totals() (processed, matched, failed int64) {
	return p.processedCount.Load(), p.matchedCount.Load(), p.errorCount.Load()
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		select {
		case <-w.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
	metrics.UpdateWorkerActiveCount(0)
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new jobs
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	return p.Wait(shutdownCtx)
}
