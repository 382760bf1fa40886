package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"order-reconciler/core/cache"
	"order-reconciler/core/clock"
	"order-reconciler/core/reconcile"
	"order-reconciler/feature/orders/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotCandidate is returned by Dispatch for completed orders and orders without external id.
	ErrNotCandidate = errors.New("order is not a reconciliation candidate")
	// ErrLeaseHeld is returned by Dispatch when another run holds the order.
	ErrLeaseHeld = errors.New("order is leased by another run")
)

// EnqueueFailure records an order that could not be handed to the pool.
type EnqueueFailure struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

// RunReport describes one status check run.
type RunReport struct {
	RunID           string            `json:"run_id"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
	DryRun          bool              `json:"dry_run"`
	Candidates      int               `json:"candidates"`
	Dispatched      int               `json:"dispatched"`
	LeaseSkipped    int               `json:"lease_skipped"`
	EnqueueFailures []EnqueueFailure  `json:"enqueue_failures"`
	Summary         reconcile.Summary `json:"summary"`
}

// SchedulerOptions wires optional collaborators.
type SchedulerOptions struct {
	// Leases, when set, guards each order against concurrent runs in other processes.
	Leases cache.Cache
	// Clock defaults to system time.
	Clock clock.Clock
	// Out receives the human readable progress lines. Defaults to io.Discard.
	Out io.Writer
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Scheduler selects candidate orders and runs one StatusJob per order on a worker pool.
type Scheduler struct {
	store  OrderStore
	job    *StatusJob
	cfg    Config
	dryRun bool

	leases cache.Cache
	clock  clock.Clock
	out    io.Writer
	logger *zap.Logger
}

// NewScheduler creates a scheduler. The job's options decide dry-run reporting.
func NewScheduler(store OrderStore, job *StatusJob, cfg Config, opts SchedulerOptions) *Scheduler {
	s := &Scheduler{
		store:  store,
		job:    job,
		cfg:    cfg,
		dryRun: job.opts.DryRun,
		leases: opts.Leases,
		clock:  opts.Clock,
		out:    opts.Out,
		logger: opts.Logger,
	}
	if s.clock == nil {
		s.clock = clock.NewSystem()
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if cfg.LeaseSeconds == 0 {
		s.leases = nil
	}
	return s
}

// SelectCandidates returns every order that is not completed and has an external id.
func (s *Scheduler) SelectCandidates(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	candidates := orders[:0]
	for _, o := range orders {
		if o.IsReconcilable() {
			candidates = append(candidates, o)
		}
	}
	return candidates, nil
}

// Dispatch enqueues one independent status check for order.
func (s *Scheduler) Dispatch(ctx context.Context, pool *reconcile.Pool, order models.Order) error {
	if !order.IsReconcilable() {
		return fmt.Errorf("%w: %s", ErrNotCandidate, order.ID)
	}

	release, err := s.acquire(ctx, order.ID)
	if err != nil {
		return err
	}

	task := reconcile.Task{
		Key: order.ID,
		Run: func(ctx context.Context) (reconcile.Outcome, error) {
			defer release()
			o := order
			return s.job.Execute(ctx, &o)
		},
	}

	if err := pool.Enqueue(ctx, task); err != nil {
		release()
		return fmt.Errorf("failed to enqueue order %s: %w", order.ID, err)
	}
	return nil
}

// Run performs one full pass: select, dispatch every candidate, wait for the
// pool to drain and report.
func (s *Scheduler) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:           uuid.NewString(),
		StartedAt:       s.clock.Now(),
		DryRun:          s.dryRun,
		EnqueueFailures: []EnqueueFailure{},
	}
	l := s.logger.With(zap.String("run_id", report.RunID))

	candidates, err := s.SelectCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}
	report.Candidates = len(candidates)

	l.Info("Found orders to check", zap.Int("count", len(candidates)))
	fmt.Fprintf(s.out, "Found %d orders to check.\n", len(candidates))

	pool := reconcile.NewPool(s.cfg.Workers, l)
	pool.Start(ctx)

	for _, order := range candidates {
		err := s.Dispatch(ctx, pool, order)
		switch {
		case err == nil:
			report.Dispatched++
			fmt.Fprintf(s.out, "Dispatched status check for order %s\n", order.ID)
		case errors.Is(err, ErrLeaseHeld):
			report.LeaseSkipped++
			l.Info("Order is being checked elsewhere", zap.String("order_id", order.ID))
		default:
			report.EnqueueFailures = append(report.EnqueueFailures, EnqueueFailure{OrderID: order.ID, Error: err.Error()})
			l.Error("Failed to dispatch status check", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	report.Summary = pool.Close()
	report.FinishedAt = s.clock.Now()

	l.Info("Status check finished",
		zap.Int("dispatched", report.Dispatched),
		zap.Int("updated", report.Summary.Count(reconcile.OutcomeUpdated)),
		zap.Int("failed", report.Summary.Count(reconcile.OutcomeFailed)),
		zap.Int("enqueue_failures", len(report.EnqueueFailures)),
	)
	return report, nil
}

// Watch runs immediately and then every interval until ctx is cancelled.
// Run errors are logged and do not stop the loop. onReport may be nil.
func (s *Scheduler) Watch(ctx context.Context, interval time.Duration, onReport func(*RunReport)) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := s.Run(ctx)
		if err != nil {
			s.logger.Error("Status check run failed", zap.Error(err))
		} else if onReport != nil {
			onReport(report)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func leaseKey(orderID string) string {
	return "reconcile:order:" + orderID
}

// acquire takes the per-order lease and returns its release function.
func (s *Scheduler) acquire(ctx context.Context, orderID string) (func(), error) {
	if s.leases == nil {
		return func() {}, nil
	}

	key := leaseKey(orderID)
	owner := []byte(uuid.NewString())
	ok, err := s.leases.SetNX(ctx, key, owner, s.cfg.LeaseTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lease for order %s: %w", orderID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLeaseHeld, orderID)
	}

	return func() {
		// The run context may already be cancelled; the lease must still go.
		released, err := s.leases.DeleteIfValue(context.Background(), key, owner)
		switch {
		case err != nil:
			s.logger.Warn("Failed to release lease", zap.String("order_id", orderID), zap.Error(err))
		case !released:
			s.logger.Warn("Lease expired before the check finished", zap.String("order_id", orderID))
		}
	}, nil
}
