// Package worker runs reconciliation jobs asynchronously. A fixed pool
// of workers consumes task IDs from a buffered queue, loads the uploaded
// payloads, runs the pure reconciliation core, and persists the terminal
// status. The core itself is invoked exactly once per job; the
// PROCESSING re-check plus the store's guarded transition make duplicate
// deliveries harmless.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jayjaychukwu/reconcilation/internal/store"
	"github.com/jayjaychukwu/reconcilation/pkg/constants"
	"github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
)

// Pool dispatches reconciliation jobs to a fixed number of workers.
type Pool struct {
	store   *store.Store
	files   *store.Files
	logger  *zerolog.Logger
	queue   chan string
	workers int
	wg      sync.WaitGroup
}

// New creates a pool with the given number of workers.
func New(s *store.Store, files *store.Files, workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = constants.DefaultWorkerCount
	}
	return &Pool{
		store:   s,
		files:   files,
		logger:  logger,
		queue:   make(chan string, constants.QueueBufferSize),
		workers: workers,
	}
}

// Start launches the workers. They drain the queue until ctx is
// canceled, then exit; Wait blocks until all of them have stopped.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx)
		}()
	}
	p.logger.Info().Int("workers", p.workers).Msg("reconciliation workers started")
}

// Wait blocks until all workers have exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Enqueue submits a task ID for processing. It fails when the queue is
// full rather than blocking the HTTP handler.
func (p *Pool) Enqueue(taskID string) error {
	select {
	case p.queue <- taskID:
		return nil
	default:
		return errors.New("job queue is full")
	}
}

func (p *Pool) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case taskID := <-p.queue:
			p.Process(ctx, taskID)
		}
	}
}

// Process executes one job to its terminal state. Jobs already out of
// PROCESSING are skipped; that idempotency guard belongs here, not in
// the pure core.
func (p *Pool) Process(ctx context.Context, taskID string) {
	logger := p.logger.With().Str("task_id", taskID).Logger()

	rec, err := p.store.Get(ctx, taskID)
	if err != nil {
		logger.Error().Err(err).Msg("job lookup failed")
		return
	}
	if rec.Status != reconcile.StatusProcessing {
		logger.Warn().Str("status", string(rec.Status)).Msg("job already processed, skipping")
		return
	}

	sourceRaw, err := p.files.Read(rec.SourceFile)
	if err != nil {
		p.fail(ctx, taskID, err, &logger)
		return
	}
	targetRaw, err := p.files.Read(rec.TargetFile)
	if err != nil {
		p.fail(ctx, taskID, err, &logger)
		return
	}

	result, err := reconcile.Reconcile(sourceRaw, targetRaw)
	if err != nil {
		p.fail(ctx, taskID, err, &logger)
		return
	}

	if err := p.store.MarkSuccess(ctx, taskID, result); err != nil {
		logger.Error().Err(err).Msg("failed to persist result")
		return
	}
	logger.Info().
		Int("missing_in_target", len(result.MissingInTarget)).
		Int("missing_in_source", len(result.MissingInSource)).
		Int("discrepancies", len(result.Discrepancies)).
		Msg("reconciliation completed")
}

// fail records the failure message on the job.
func (p *Pool) fail(ctx context.Context, taskID string, cause error, logger *zerolog.Logger) {
	logger.Error().Err(cause).Msg("reconciliation failed")
	if err := p.store.MarkFailed(ctx, taskID, cause.Error()); err != nil {
		logger.Error().Err(err).Msg("failed to persist failure state")
	}
}
