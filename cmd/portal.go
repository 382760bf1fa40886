package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"order-reconciler/core/clock"
	"order-reconciler/core/config"
	"order-reconciler/core/loader"
	"order-reconciler/core/logger"
	"order-reconciler/core/server"
	"order-reconciler/feature/portal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Order Provider Portal API
// @version 1.0
// @description Simulated order provider for local reconciliation runs.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// portalCmd groups the simulated provider portal commands.
var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Simulated provider portal",
}

var portalServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the provider API over an in-memory order book",
	Long: `Starts an HTTP server that speaks the provider contract: client
credential token exchange, order create, fetch, list and delete, plus a
PATCH endpoint to advance an order's status. Point provider.url at it and
enable the provider to run status checks end to end.`,
	Args: cobra.NoArgs,
	RunE: runPortal,
}

func init() {
	portalCmd.AddCommand(portalServeCmd)
	RootCmd.AddCommand(portalCmd)
}

func runPortal(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	app := server.New(cfg.Server, "order-portal", logg)

	mgr := loader.NewManager()
	mgr.Register(portal.NewFeature(cfg.Portal, clock.NewSystem(), logg))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		errCh <- app.Listen(cfg.Server.Address())
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	return app.Shutdown()
}
