package reconcile

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Pool runs tasks on a fixed number of workers.
type Pool struct {
	workers int
	logger  *zap.Logger
	tasks   chan Task

	startOnce sync.Once
	wg        sync.WaitGroup

	// mu guards closed against concurrent Enqueue calls.
	mu     sync.RWMutex
	closed bool

	statsMu sync.Mutex
	summary Summary
}

// NewPool creates a pool with the given number of workers (minimum 1).
func NewPool(workers int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		workers: workers,
		logger:  logger,
		tasks:   make(chan Task, workers),
	}
}

// Start launches the workers. Tasks receive ctx. Calling Start twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.wg.Add(p.workers)
		for i := 0; i < p.workers; i++ {
			go func() {
				defer p.wg.Done()
				for task := range p.tasks {
					p.run(ctx, task)
				}
			}()
		}
	})
}

// Enqueue hands a task to the workers, blocking while the queue is full.
func (p *Pool) Enqueue(ctx context.Context, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks, waits for queued tasks to finish and returns
// the run summary. A pool that was never started is started first so the
// queue drains.
func (p *Pool) Close() Summary {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	p.Start(context.Background())
	p.wg.Wait()

	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.summary.clone()
}

func (p *Pool) run(ctx context.Context, task Task) {
	outcome, err := p.safeRun(ctx, task)
	if err != nil {
		p.logger.Error("Reconciliation task failed",
			zap.String("key", task.Key),
			zap.Error(err),
		)
		outcome = OutcomeFailed
	}

	p.statsMu.Lock()
	p.summary.record(outcome, err != nil)
	p.statsMu.Unlock()
}

func (p *Pool) safeRun(ctx context.Context, task Task) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", task.Key, r)
		}
	}()
	return task.Run(ctx)
}
