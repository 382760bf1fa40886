package portal

import (
	"order-reconciler/core/clock"
	"order-reconciler/feature/provider"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	orders  *provider.SimulatedClient
}

// NewFeature creates the portal feature over a fresh simulated order book.
func NewFeature(cfg Config, clk clock.Clock, logger *zap.Logger) *Feature {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	orders := provider.NewSimulatedClient()
	h := newHandler(orders, newTokenIssuer(clk, cfg.TokenTTL()), cfg, logger)
	return &Feature{handler: h, orders: orders}
}

// Orders exposes the order book served by the portal.
func (f *Feature) Orders() *provider.SimulatedClient {
	return f.orders
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "portal"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
