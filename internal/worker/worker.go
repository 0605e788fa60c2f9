package worker

import (
	"context"
	"log/slog"
	"sync"
)

type ProcessFunc[J any] func(ctx context.Context, job J) error

// WorkerPool runs a fixed number of goroutines over a buffered job queue.
// Jobs that return an error are logged and dropped.
type WorkerPool[J any] struct {
	numWorkers int
	jobs       chan J
	processor  ProcessFunc[J]
	logger     *slog.Logger
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewWorkerPool[J any](numWorkers int, bufferSize int, processor ProcessFunc[J], logger *slog.Logger) *WorkerPool[J] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool[J]{
		numWorkers: numWorkers,
		jobs:       make(chan J, bufferSize),
		processor:  processor,
		logger:     logger.With("component", "worker"),
	}
}

func (wp *WorkerPool[J]) Start(ctx context.Context) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool[J]) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			if err := wp.processor(ctx, job); err != nil {
				wp.logger.Warn("job failed", "worker", id, "error", err)
			}
		}
	}
}

// Submit queues a job. It blocks while the buffer is full.
func (wp *WorkerPool[J]) Submit(job J) {
	wp.jobs <- job
}

// Stop closes the queue and waits for the workers to drain it. Safe to call
// more than once.
func (wp *WorkerPool[J]) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.jobs)
	})
	wp.wg.Wait()
}

// Process runs fn over every item with at most numWorkers in flight and
// returns once all of them have finished or ctx is done.
func Process[T any](ctx context.Context, numWorkers int, items []T, fn func(ctx context.Context, i int, item T) error, logger *slog.Logger) {
	pool := NewWorkerPool(numWorkers, len(items), func(ctx context.Context, i int) error {
		return fn(ctx, i, items[i])
	}, logger)
	pool.Start(ctx)
	for i := range items {
		pool.Submit(i)
	}
	pool.Stop()
}
