package server

import (
	"order-reconciler/core/middleware/rayid"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "order-reconciler/docs/swagger"
)

// New creates a Fiber application with request ids, access logs and the
// swagger UI mounted at /swagger.
func New(cfg Config, appName string, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(cfg.FiberConfig(appName))

	// Ray id first so every later handler can log it.
	app.Use(rayid.New())
	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	return app
}
