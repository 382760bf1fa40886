package provider

import (
	"context"

	"order-reconciler/feature/orders/models"
)

// RemoteOrder is the provider's view of an order.
type RemoteOrder struct {
	ID     string        `json:"id"`
	Type   models.Type   `json:"type"`
	Status models.Status `json:"status"`
}

// Client is the port to the external order provider.
type Client interface {
	// CreateOrder submits the order's type and returns the provider-assigned id.
	// Persisting the id is the caller's job.
	CreateOrder(ctx context.Context, order *models.Order) (string, error)

	// FetchOrder returns the remote state of an order.
	// A nil order with a nil error means the provider does not know the id.
	FetchOrder(ctx context.Context, externalID string) (*RemoteOrder, error)

	// DeleteOrder asks the provider to remove an order. It reports true when
	// the provider acknowledged, false with a nil error when the id is unknown.
	DeleteOrder(ctx context.Context, externalID string) (bool, error)

	// ListOrders returns a snapshot of every order the provider holds.
	ListOrders(ctx context.Context) ([]RemoteOrder, error)
}
