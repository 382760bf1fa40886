package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"order-reconciler/core/reconcile"
	"order-reconciler/feature/orders/models"
	ordersreconcile "order-reconciler/feature/orders/reconcile"
	"order-reconciler/feature/orders/store"
	"order-reconciler/feature/provider"
	"order-reconciler/feature/provider/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusJob_UpdatesOnDifference(t *testing.T) {
	s, clk := newStore(t)
	o := seed(t, s, "o1", models.StatusOrdered, "e1")

	sim := provider.NewSimulatedClient()
	sim.Put(provider.RemoteOrder{ID: "e1", Type: models.TypeConnector, Status: models.StatusProcessing})

	job := ordersreconcile.NewStatusJob(sim, s, zap.NewNop(), ordersreconcile.JobOptions{})
	clk.Advance(time.Minute)

	outcome, err := job.Execute(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUpdated, outcome)

	stored := reload(t, s, o.ID)
	assert.Equal(t, models.StatusProcessing, stored.Status)
	assert.True(t, clk.Now().Equal(stored.UpdatedAt))
	assert.Equal(t, "e1", stored.ExternalIDValue())
	assert.Equal(t, models.StatusProcessing, o.Status)
}

func TestStatusJob_Idempotent(t *testing.T) {
	s, clk := newStore(t)
	o := seed(t, s, "o1", models.StatusOrdered, "e1")

	sim := provider.NewSimulatedClient()
	sim.Put(provider.RemoteOrder{ID: "e1", Type: models.TypeConnector, Status: models.StatusCompleted})
	job := ordersreconcile.NewStatusJob(sim, s, nil, ordersreconcile.JobOptions{})
	ctx := context.Background()

	_, err := job.Execute(ctx, o)
	require.NoError(t, err)
	first := reload(t, s, o.ID)

	clk.Advance(time.Hour)

	outcome, err := job.Execute(ctx, reload(t, s, o.ID))
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUnchanged, outcome)
	assert.Equal(t, first, reload(t, s, o.ID))

	// A stale in-memory copy does not cause a second write either.
	stale := *o
	stale.Status = models.StatusOrdered
	outcome, err = job.Execute(ctx, &stale)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUnchanged, outcome)
	assert.Equal(t, first, reload(t, s, o.ID))
}

func TestStatusJob_EqualStatusDoesNotWrite(t *testing.T) {
	s, clk := newStore(t)
	o := seed(t, s, "o1", models.StatusProcessing, "e1")
	before := reload(t, s, o.ID)

	p := new(mocks.Client)
	p.On("FetchOrder", mock.Anything, "e1").Return(&provider.RemoteOrder{ID: "e1", Status: models.StatusProcessing}, nil)

	clk.Advance(time.Minute)
	outcome, err := ordersreconcile.NewStatusJob(p, s, nil, ordersreconcile.JobOptions{}).Execute(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUnchanged, outcome)
	assert.Equal(t, before, reload(t, s, o.ID))
}

func TestStatusJob_SkipsWithoutExternalID(t *testing.T) {
	s, _ := newStore(t)
	o := seed(t, s, "o1", models.StatusOrdered, "")

	p := new(mocks.Client)
	outcome, err := ordersreconcile.NewStatusJob(p, s, nil, ordersreconcile.JobOptions{}).Execute(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeSkipped, outcome)
	p.AssertNotCalled(t, "FetchOrder", mock.Anything, mock.Anything)
}

func TestStatusJob_NotFoundLeavesOrderUntouched(t *testing.T) {
	s, clk := newStore(t)
	o := seed(t, s, "o1", models.StatusOrdered, "gone")
	before := reload(t, s, o.ID)

	core, logs := observer.New(zap.WarnLevel)
	job := ordersreconcile.NewStatusJob(provider.NewSimulatedClient(), s, zap.New(core), ordersreconcile.JobOptions{})

	clk.Advance(time.Minute)
	outcome, err := job.Execute(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeNotFound, outcome)
	assert.Equal(t, before, reload(t, s, o.ID))

	entries := logs.FilterMessage("External order not found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, o.ID, entries[0].ContextMap()["order_id"])
	assert.Equal(t, "gone", entries[0].ContextMap()["external_id"])
}

func TestStatusJob_ProviderFailuresAreSwallowed(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"Transport", fmt.Errorf("%w: dial tcp: connection refused", provider.ErrProvider)},
		{"Status", &provider.StatusError{Method: "GET", Path: "/api/v1/order/e1", StatusCode: 503}},
		{"Auth", fmt.Errorf("%w: bad credentials", provider.ErrAuth)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t)
			o := seed(t, s, "o1", models.StatusOrdered, "e1")
			before := reload(t, s, o.ID)

			p := new(mocks.Client)
			p.On("FetchOrder", mock.Anything, "e1").Return(nil, tt.err)

			outcome, err := ordersreconcile.NewStatusJob(p, s, nil, ordersreconcile.JobOptions{}).Execute(context.Background(), o)
			assert.NoError(t, err)
			assert.Equal(t, reconcile.OutcomeFailed, outcome)
			assert.Equal(t, before, reload(t, s, o.ID))
		})
	}
}

func TestStatusJob_UnclassifiedFetchErrorPropagates(t *testing.T) {
	s, _ := newStore(t)
	o := seed(t, s, "o1", models.StatusOrdered, "e1")

	p := new(mocks.Client)
	p.On("FetchOrder", mock.Anything, "e1").Return(nil, errors.New("unexpected"))

	outcome, err := ordersreconcile.NewStatusJob(p, s, nil, ordersreconcile.JobOptions{}).Execute(context.Background(), o)
	assert.Error(t, err)
	assert.Equal(t, reconcile.OutcomeFailed, outcome)
}

type failingStore struct {
	*store.Store
}

func (failingStore) UpdateStatusIfChanged(context.Context, string, models.Status) (*models.Order, bool, error) {
	return nil, false, errors.New("database is locked")
}

func TestStatusJob_StoreFailurePropagates(t *testing.T) {
	s, _ := newStore(t)
	o := seed(t, s, "o1", models.StatusOrdered, "e1")

	sim := provider.NewSimulatedClient()
	sim.Put(provider.RemoteOrder{ID: "e1", Status: models.StatusProcessing})

	_, err := ordersreconcile.NewStatusJob(sim, failingStore{s}, nil, ordersreconcile.JobOptions{}).Execute(context.Background(), o)
	assert.ErrorContains(t, err, "database is locked")
}

func TestStatusJob_DryRun(t *testing.T) {
	s, _ := newStore(t)
	o := seed(t, s, "o1", models.StatusOrdered, "e1")
	before := reload(t, s, o.ID)

	sim := provider.NewSimulatedClient()
	sim.Put(provider.RemoteOrder{ID: "e1", Status: models.StatusCompleted})

	outcome, err := ordersreconcile.NewStatusJob(sim, s, nil, ordersreconcile.JobOptions{DryRun: true}).Execute(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeWouldUpdate, outcome)
	assert.Equal(t, before, reload(t, s, o.ID))
}

func TestStatusJob_Regression(t *testing.T) {
	sim := provider.NewSimulatedClient()
	sim.Put(provider.RemoteOrder{ID: "e1", Status: models.StatusOrdered})

	t.Run("ForwardOnly", func(t *testing.T) {
		s, _ := newStore(t)
		o := seed(t, s, "o1", models.StatusProcessing, "e1")

		outcome, err := ordersreconcile.NewStatusJob(sim, s, nil, ordersreconcile.JobOptions{ForwardOnly: true}).Execute(context.Background(), o)
		require.NoError(t, err)
		assert.Equal(t, reconcile.OutcomeRegressionIgnored, outcome)
		assert.Equal(t, models.StatusProcessing, reload(t, s, o.ID).Status)
	})

	t.Run("DefaultAcceptsOverwrite", func(t *testing.T) {
		s, _ := newStore(t)
		o := seed(t, s, "o1", models.StatusProcessing, "e1")

		outcome, err := ordersreconcile.NewStatusJob(sim, s, nil, ordersreconcile.JobOptions{}).Execute(context.Background(), o)
		require.NoError(t, err)
		assert.Equal(t, reconcile.OutcomeUpdated, outcome)
		assert.Equal(t, models.StatusOrdered, reload(t, s, o.ID).Status)
	})
}
