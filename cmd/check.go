package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-reconciler/core/cache"
	"order-reconciler/core/reconcile"
	"order-reconciler/core/storage"
	ordersreconcile "order-reconciler/feature/orders/reconcile"
	"order-reconciler/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	checkDryRun   bool
	checkWatch    bool
	checkInterval time.Duration
	checkReport   bool
)

// checkStatusesCmd runs the status reconciliation.
var checkStatusesCmd = &cobra.Command{
	Use:   "check-statuses",
	Short: "Sync local order statuses with the provider",
	Long: `Selects every order that is not completed and has an external id,
fetches its status from the provider and stores it when it differs.

Examples:
  # One pass
  order-reconciler check-statuses

  # Report what would change without writing
  order-reconciler check-statuses --dry-run

  # Keep running every 30 seconds and upload each run report
  order-reconciler check-statuses --watch --interval 30s --report`,
	RunE: runCheckStatuses,
}

func init() {
	checkStatusesCmd.Flags().BoolVar(&checkDryRun, "dry-run", false, "Report changes without writing them")
	checkStatusesCmd.Flags().BoolVar(&checkWatch, "watch", false, "Repeat the check until interrupted")
	checkStatusesCmd.Flags().DurationVar(&checkInterval, "interval", 0, "Time between runs in watch mode (default scheduler.interval_seconds)")
	checkStatusesCmd.Flags().BoolVar(&checkReport, "report", false, "Upload each run report to object storage")

	RootCmd.AddCommand(checkStatusesCmd)
}

func runCheckStatuses(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	leases, err := cache.New(rt.cfg.Cache.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create lease cache: %w", err)
	}
	defer leases.Close()
	if err := leases.Ping(ctx); err != nil {
		return fmt.Errorf("lease cache unreachable: %w", err)
	}

	job := ordersreconcile.NewStatusJob(rt.provider, rt.store, rt.logger, ordersreconcile.JobOptions{
		DryRun:      checkDryRun,
		ForwardOnly: rt.cfg.Scheduler.ForwardOnly,
	})
	sched := ordersreconcile.NewScheduler(rt.store, job, rt.cfg.Scheduler, ordersreconcile.SchedulerOptions{
		Leases: leases,
		Clock:  rt.clock,
		Out:    cmd.OutOrStdout(),
		Logger: rt.logger,
	})

	publisher, err := newReportPublisher(rt, checkReport)
	if err != nil {
		return err
	}

	onReport := func(r *ordersreconcile.RunReport) {
		printRunSummary(rt.logger, r)
		if publisher == nil {
			return
		}
		if _, err := publisher.Publish(ctx, r); err != nil {
			rt.logger.Error("Failed to publish run report", zap.String("run_id", r.RunID), zap.Error(err))
		}
	}

	if !checkWatch {
		r, err := sched.Run(ctx)
		if err != nil {
			return err
		}
		onReport(r)
		return nil
	}

	interval := checkInterval
	if interval == 0 {
		interval = rt.cfg.Scheduler.Interval()
	}
	rt.logger.Info("Watching order statuses", zap.Duration("interval", interval))
	return sched.Watch(ctx, interval, onReport)
}

// newReportPublisher returns nil when reports are neither requested nor enabled.
func newReportPublisher(rt *runtime, requested bool) (*report.Publisher, error) {
	if !requested && !rt.cfg.Storage.Enabled {
		return nil, nil
	}

	client, err := storage.NewClient(rt.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	timeout := time.Duration(rt.cfg.Storage.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := storage.EnsureBucket(ctx, client, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
		return nil, err
	}

	return report.NewPublisher(client, rt.cfg.Storage, rt.logger), nil
}

// printRunSummary logs the per-outcome counts of a run.
func printRunSummary(l *zap.Logger, r *ordersreconcile.RunReport) {
	fields := []zap.Field{
		zap.String("run_id", r.RunID),
		zap.Bool("dry_run", r.DryRun),
		zap.Int("candidates", r.Candidates),
		zap.Int("dispatched", r.Dispatched),
		zap.Int("lease_skipped", r.LeaseSkipped),
		zap.Int("enqueue_failures", len(r.EnqueueFailures)),
		zap.Int("errors", r.Summary.Errors),
		zap.Duration("duration", r.FinishedAt.Sub(r.StartedAt)),
	}
	for _, o := range []reconcile.Outcome{
		reconcile.OutcomeUpdated,
		reconcile.OutcomeWouldUpdate,
		reconcile.OutcomeUnchanged,
		reconcile.OutcomeNotFound,
		reconcile.OutcomeRegressionIgnored,
		reconcile.OutcomeSkipped,
		reconcile.OutcomeFailed,
	} {
		if n := r.Summary.Count(o); n > 0 {
			fields = append(fields, zap.Int(string(o), n))
		}
	}
	l.Info("Run report", fields...)
}
