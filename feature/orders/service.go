package orders

import (
	"context"
	"fmt"

	"order-reconciler/core/reconcile"
	"order-reconciler/feature/orders/models"
	ordersreconcile "order-reconciler/feature/orders/reconcile"
	"order-reconciler/feature/orders/store"
	"order-reconciler/feature/provider"

	"go.uber.org/zap"
)

// Service implements the order lifecycle on top of the store and the provider.
type Service struct {
	store    *store.Store
	provider provider.Client
	job      *ordersreconcile.StatusJob
	logger   *zap.Logger
}

// NewService creates a new order service.
func NewService(s *store.Store, p provider.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    s,
		provider: p,
		job:      ordersreconcile.NewStatusJob(p, s, logger, ordersreconcile.JobOptions{}),
		logger:   logger,
	}
}

// Create stores a new order and submits it to the provider. When the
// provider rejects it the order stays without external id and is returned
// without error; it will not take part in status checks.
func (s *Service) Create(ctx context.Context, name string, typ models.Type) (*models.Order, error) {
	order, err := s.store.Create(ctx, name, typ)
	if err != nil {
		return nil, err
	}

	l := s.logger.With(zap.String("order_id", order.ID))

	externalID, err := s.provider.CreateOrder(ctx, order)
	if err != nil {
		l.Warn("Provider did not accept order", zap.Error(err))
		return order, nil
	}

	order, err = s.store.AttachExternalID(ctx, order.ID, externalID)
	if err != nil {
		return nil, err
	}

	l.Info("Order created", zap.String("external_id", externalID))
	return order, nil
}

// Get returns an order or store.ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrOrderNotFound, id)
	}
	return order, nil
}

// List returns orders whose name contains nameFilter, sorted by name then newest first.
func (s *Service) List(ctx context.Context, nameFilter string) ([]models.Order, error) {
	return s.store.List(ctx, nameFilter)
}

// SetStatus applies an explicit status edit. Writing the current status is a no-op.
func (s *Service) SetStatus(ctx context.Context, id string, status models.Status) (*models.Order, bool, error) {
	return s.store.UpdateStatusIfChanged(ctx, id, status)
}

// Check reconciles a single order with the provider right away.
func (s *Service) Check(ctx context.Context, id string) (*models.Order, reconcile.Outcome, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	outcome, err := s.job.Execute(ctx, order)
	if err != nil {
		return nil, outcome, err
	}
	return order, outcome, nil
}

// Delete removes a completed order. The provider copy is deleted on a best
// effort basis first; its failure does not block the local delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != models.StatusCompleted {
		return fmt.Errorf("%w: order %s is %s", store.ErrOrderNotCompleted, id, order.Status)
	}

	l := s.logger.With(zap.String("order_id", id))

	if order.HasExternalID() {
		ok, err := s.provider.DeleteOrder(ctx, order.ExternalIDValue())
		switch {
		case err != nil:
			l.Warn("Failed to delete order at provider", zap.Error(err))
		case !ok:
			l.Warn("Provider does not know order", zap.String("external_id", order.ExternalIDValue()))
		}
	}

	if _, err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	l.Info("Order deleted")
	return nil
}

// ListRemote returns the provider's current view of all orders.
func (s *Service) ListRemote(ctx context.Context) ([]provider.RemoteOrder, error) {
	return s.provider.ListOrders(ctx)
}
