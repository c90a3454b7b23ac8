// Package jobs provides the job queue backends and the pull request job runner.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
)

// ErrQueueFull is returned by the in-memory queue when no slot is free.
var ErrQueueFull = errors.New("job queue is full")

// ErrQueueStopped is returned when a job is queued after Stop.
var ErrQueueStopped = errors.New("job queue is stopped")

// Queuer is a core.JobQueuer that owns background resources.
type Queuer interface {
	core.JobQueuer
	// Stop releases the queue's resources. Jobs already accepted may still run.
	Stop()
}

// dispatcher implements Queuer with a bounded channel and a pool of worker
// goroutines that run each job in-process.
type dispatcher struct {
	ctx        context.Context
	runner     core.JobRunner
	jobQueue   chan core.Job
	maxWorkers int
	wg         sync.WaitGroup

	mu      sync.RWMutex
	stopped bool

	logger *slog.Logger
}

// NewDispatcher starts the worker pool. MaxWorkers and Size below 1 are raised to 1.
func NewDispatcher(ctx context.Context, runner core.JobRunner, cfg *config.Config, logger *slog.Logger) Queuer {
	maxWorkers := max(cfg.Queue.MaxWorkers, 1)
	size := max(cfg.Queue.Size, 1)

	d := &dispatcher{
		ctx:        context.WithoutCancel(ctx),
		runner:     runner,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan core.Job, size),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes jobs from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Debug("starting job worker", "id", workerID)

	for job := range d.jobQueue {
		d.processJob(workerID, job)
	}

	d.logger.Debug("shutting down job worker", "id", workerID)
}

func (d *dispatcher) processJob(workerID int, job core.Job) {
	d.logger.Info("worker processing job",
		"worker_id", workerID,
		"repo", job.FullName(),
		"pr", job.PRNumber,
	)

	if err := d.runner.Run(d.ctx, job); err != nil {
		d.logger.Error("job failed",
			"repo", job.FullName(),
			"pr", job.PRNumber,
			"error", err,
		)
	}
}

// Queue adds a job without blocking. It fails with ErrQueueFull when every
// slot is taken.
func (d *dispatcher) Queue(_ context.Context, job core.Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrQueueStopped
	}

	select {
	case d.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (d *dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobQueue)
	d.mu.Unlock()

	d.logger.Info("stopping dispatcher and waiting for jobs to finish")
	d.wg.Wait()
	d.logger.Info("all jobs have finished")
}
