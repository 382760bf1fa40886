package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"order-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fixed(o reconcile.Outcome) func(context.Context) (reconcile.Outcome, error) {
	return func(context.Context) (reconcile.Outcome, error) { return o, nil }
}

func TestPool_RunsEveryTask(t *testing.T) {
	pool := reconcile.NewPool(4, zap.NewNop())
	pool.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 20; i++ {
		err := pool.Enqueue(context.Background(), reconcile.Task{
			Key: fmt.Sprintf("o%d", i),
			Run: func(context.Context) (reconcile.Outcome, error) {
				ran.Add(1)
				return reconcile.OutcomeUnchanged, nil
			},
		})
		require.NoError(t, err)
	}

	summary := pool.Close()
	assert.EqualValues(t, 20, ran.Load())
	assert.Equal(t, 20, summary.Total)
	assert.Equal(t, 20, summary.Count(reconcile.OutcomeUnchanged))
	assert.Zero(t, summary.Errors)
}

func TestPool_IsolatesFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	pool := reconcile.NewPool(2, zap.New(core))
	pool.Start(context.Background())
	ctx := context.Background()

	require.NoError(t, pool.Enqueue(ctx, reconcile.Task{Key: "ok", Run: fixed(reconcile.OutcomeUpdated)}))
	require.NoError(t, pool.Enqueue(ctx, reconcile.Task{Key: "err", Run: func(context.Context) (reconcile.Outcome, error) {
		return reconcile.OutcomeUpdated, errors.New("write failed")
	}}))
	require.NoError(t, pool.Enqueue(ctx, reconcile.Task{Key: "panic", Run: func(context.Context) (reconcile.Outcome, error) {
		panic("boom")
	}}))
	require.NoError(t, pool.Enqueue(ctx, reconcile.Task{Key: "after", Run: fixed(reconcile.OutcomeNotFound)}))

	summary := pool.Close()
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, 1, summary.Count(reconcile.OutcomeUpdated))
	assert.Equal(t, 2, summary.Count(reconcile.OutcomeFailed))
	assert.Equal(t, 1, summary.Count(reconcile.OutcomeNotFound))
	assert.Equal(t, 2, logs.FilterMessage("Reconciliation task failed").Len())
}

func TestPool_EnqueueAfterClose(t *testing.T) {
	pool := reconcile.NewPool(1, nil)
	pool.Start(context.Background())
	pool.Close()

	err := pool.Enqueue(context.Background(), reconcile.Task{Key: "late", Run: fixed(reconcile.OutcomeUpdated)})
	assert.ErrorIs(t, err, reconcile.ErrPoolClosed)

	// Closing twice is safe.
	assert.Equal(t, 0, pool.Close().Total)
}

func TestPool_EnqueueCancelled(t *testing.T) {
	pool := reconcile.NewPool(1, nil)
	pool.Start(context.Background())

	release := make(chan struct{})
	blocking := reconcile.Task{Key: "block", Run: func(context.Context) (reconcile.Outcome, error) {
		<-release
		return reconcile.OutcomeUnchanged, nil
	}}

	// One task occupies the worker, one fills the queue.
	require.NoError(t, pool.Enqueue(context.Background(), blocking))
	require.NoError(t, pool.Enqueue(context.Background(), blocking))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Queue may have one slot free if the worker already picked up the first task.
	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = pool.Enqueue(ctx, blocking)
	}
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	summary := pool.Close()
	assert.Equal(t, summary.Count(reconcile.OutcomeUnchanged), summary.Total)
}

func TestPool_CloseWithoutStart(t *testing.T) {
	pool := reconcile.NewPool(0, nil)
	require.NoError(t, pool.Enqueue(context.Background(), reconcile.Task{Key: "o1", Run: fixed(reconcile.OutcomeSkipped)}))

	summary := pool.Close()
	assert.Equal(t, 1, summary.Count(reconcile.OutcomeSkipped))
}

func TestSummary_CountEmpty(t *testing.T) {
	var s reconcile.Summary
	assert.Zero(t, s.Count(reconcile.OutcomeUpdated))
}
