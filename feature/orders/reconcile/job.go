package reconcile

import (
	"context"
	"errors"
	"fmt"

	"order-reconciler/core/reconcile"
	"order-reconciler/feature/orders/models"
	"order-reconciler/feature/provider"

	"go.uber.org/zap"
)

// OrderStore is the persistence the status check needs.
type OrderStore interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	UpdateStatusIfChanged(ctx context.Context, id string, status models.Status) (*models.Order, bool, error)
	ListCandidates(ctx context.Context) ([]models.Order, error)
}

// JobOptions tunes a StatusJob.
type JobOptions struct {
	// DryRun reports OutcomeWouldUpdate instead of writing.
	DryRun bool
	// ForwardOnly keeps the local status when the remote one ranks behind it.
	ForwardOnly bool
}

// StatusJob brings one order's local status in line with the provider.
type StatusJob struct {
	provider provider.Client
	store    OrderStore
	logger   *zap.Logger
	opts     JobOptions
}

// NewStatusJob creates a job.
func NewStatusJob(p provider.Client, s OrderStore, logger *zap.Logger, opts JobOptions) *StatusJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusJob{provider: p, store: s, logger: logger, opts: opts}
}

// Execute checks one order. Provider and credential failures are logged and
// reported as OutcomeFailed with a nil error; only store failures and
// unclassified fetch errors are returned.
func (j *StatusJob) Execute(ctx context.Context, order *models.Order) (reconcile.Outcome, error) {
	l := j.logger.With(zap.String("order_id", order.ID))

	if !order.HasExternalID() {
		l.Debug("Order has no external id, skipping")
		return reconcile.OutcomeSkipped, nil
	}

	externalID := order.ExternalIDValue()
	l = l.With(zap.String("external_id", externalID))

	remote, err := j.provider.FetchOrder(ctx, externalID)
	if err != nil {
		if errors.Is(err, provider.ErrProvider) || errors.Is(err, provider.ErrAuth) {
			l.Error("Failed to fetch order from provider", zap.Error(err))
			return reconcile.OutcomeFailed, nil
		}
		return reconcile.OutcomeFailed, fmt.Errorf("fetch order %s: %w", order.ID, err)
	}

	if remote == nil {
		l.Warn("External order not found")
		return reconcile.OutcomeNotFound, nil
	}

	if remote.Status == order.Status {
		return reconcile.OutcomeUnchanged, nil
	}

	l = l.With(zap.String("from", string(order.Status)), zap.String("to", string(remote.Status)))

	if j.opts.ForwardOnly && remote.Status.Rank() < order.Status.Rank() {
		l.Info("Ignoring status regression")
		return reconcile.OutcomeRegressionIgnored, nil
	}

	if j.opts.DryRun {
		l.Info("Order status would change")
		return reconcile.OutcomeWouldUpdate, nil
	}

	updated, changed, err := j.store.UpdateStatusIfChanged(ctx, order.ID, remote.Status)
	if err != nil {
		return reconcile.OutcomeFailed, err
	}
	*order = *updated

	if !changed {
		return reconcile.OutcomeUnchanged, nil
	}

	l.Info("Order status updated")
	return reconcile.OutcomeUpdated, nil
}
