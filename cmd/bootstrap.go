package cmd

import (
	"context"
	"fmt"

	"order-reconciler/core/clock"
	"order-reconciler/core/config"
	"order-reconciler/core/database"
	"order-reconciler/core/logger"
	"order-reconciler/feature/orders"
	"order-reconciler/feature/orders/store"
	"order-reconciler/feature/provider"

	"go.uber.org/zap"
)

// runtime bundles the dependencies shared by the order commands.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	clock    clock.Clock
	store    *store.Store
	provider provider.Client
	service  *orders.Service
}

// bootstrap loads configuration, connects to the database, prepares the
// orders schema and selects the provider variant.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	clk := clock.NewSystem()
	s := store.New(db, clk)
	if err := s.EnsureSchema(ctx, cfg.Database.AutoMigrate); err != nil {
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	p, err := provider.New(cfg.Provider, clk, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	return &runtime{
		cfg:      cfg,
		logger:   l,
		clock:    clk,
		store:    s,
		provider: p,
		service:  orders.NewService(s, p, l),
	}, nil
}
