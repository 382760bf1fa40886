package reconcile_test

import (
	"context"
	"testing"
	"time"

	"order-reconciler/core/clock"
	"order-reconciler/core/database"
	"order-reconciler/feature/orders/models"
	"order-reconciler/feature/orders/store"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*store.Store, *clock.Manual) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	clk := clock.NewManual(epoch)
	s := store.New(db, clk)
	require.NoError(t, s.EnsureSchema(context.Background(), true))
	return s, clk
}

// seed creates an order with the given status and external id (empty for none).
func seed(t *testing.T, s *store.Store, name string, status models.Status, externalID string) *models.Order {
	t.Helper()
	ctx := context.Background()

	o, err := s.Create(ctx, name, models.TypeConnector)
	require.NoError(t, err)
	if externalID != "" {
		o, err = s.AttachExternalID(ctx, o.ID, externalID)
		require.NoError(t, err)
	}
	if status != models.StatusOrdered {
		o, _, err = s.UpdateStatusIfChanged(ctx, o.ID, status)
		require.NoError(t, err)
	}
	return o
}

func reload(t *testing.T, s *store.Store, id string) *models.Order {
	t.Helper()
	o, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}
