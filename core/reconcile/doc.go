// Package reconcile provides the bounded worker pool that runs per-entity
// reconciliation tasks and tallies their outcomes.
//
// A run enqueues one Task per entity. Workers execute tasks independently:
// a task that returns an error or panics is recorded as OutcomeFailed and
// never affects other tasks. Close waits for the queue to drain and returns
// the Summary of the run.
//
// # Usage
//
//	pool := reconcile.NewPool(8, logger)
//	pool.Start(ctx)
//	for _, o := range orders {
//	    if err := pool.Enqueue(ctx, task(o)); err != nil {
//	        // enqueue failure, the task never ran
//	    }
//	}
//	summary := pool.Close()
package reconcile
