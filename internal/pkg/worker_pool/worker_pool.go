package worker_pool

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type TaskFunc func(ctx context.Context) (any, error)

// TaskResult holds the outcome of a finished task (its ID, result value, or error).
type TaskResult struct {
	ID     string
	Result any
	Err    error
}

// WorkerPool runs submitted tasks with at most numWorkers in flight.
// Results are returned by Wait in submission order.
type WorkerPool struct {
	group       *errgroup.Group
	ctx         context.Context
	mu          sync.Mutex
	results     []TaskResult
	stopOnError bool
	log         *log.Logger
}

// NewWorkerPool initializes the worker pool with the given number of workers.
// If stopOnError is true, the pool context is canceled on the first task
// error and tasks that have not started yet are skipped.
func NewWorkerPool(parentCtx context.Context, numWorkers int, stopOnError bool, logger *log.Logger) *WorkerPool {
	group, ctx := errgroup.WithContext(parentCtx)
	if numWorkers < 1 {
		numWorkers = 1
	}
	group.SetLimit(numWorkers)

	return &WorkerPool{
		group:       group,
		ctx:         ctx,
		stopOnError: stopOnError,
		log:         logger,
	}
}

// Submit queues a task. It blocks while all workers are busy.
func (wp *WorkerPool) Submit(id string, taskFn TaskFunc) {
	wp.mu.Lock()
	slot := len(wp.results)
	wp.results = append(wp.results, TaskResult{ID: id})
	wp.mu.Unlock()

	wp.group.Go(func() error {
		if err := wp.ctx.Err(); err != nil {
			wp.log.Warnf("Task %s skipped: pool was canceled", id)
			wp.store(slot, nil, err)
			return nil
		}

		wp.log.Debugf("Task %s started", id)
		result, err := taskFn(wp.ctx)
		wp.store(slot, result, err)

		if err != nil {
			wp.log.Errorf("Task %s failed: %v", id, err)
			if wp.stopOnError {
				return err
			}
			return nil
		}
		wp.log.Debugf("Task %s completed successfully", id)
		return nil
	})
}

// Wait blocks until every submitted task has finished and returns their
// results in submission order.
func (wp *WorkerPool) Wait() []TaskResult {
	_ = wp.group.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	out := make([]TaskResult, len(wp.results))
	copy(out, wp.results)
	return out
}

func (wp *WorkerPool) store(slot int, result any, err error) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.results[slot].Result = result
	wp.results[slot].Err = err
}
