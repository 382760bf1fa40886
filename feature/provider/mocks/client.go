package mocks

import (
	"context"

	"order-reconciler/feature/orders/models"
	"order-reconciler/feature/provider"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of provider.Client
type Client struct {
	mock.Mock
}

func (m *Client) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *Client) FetchOrder(ctx context.Context, externalID string) (*provider.RemoteOrder, error) {
	args := m.Called(ctx, externalID)
	if o, ok := args.Get(0).(*provider.RemoteOrder); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DeleteOrder(ctx context.Context, externalID string) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *Client) ListOrders(ctx context.Context) ([]provider.RemoteOrder, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]provider.RemoteOrder); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
