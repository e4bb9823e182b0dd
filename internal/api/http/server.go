package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/observability"
)

// NewServer builds the fiber app with the global middleware chain and every route registered.
func NewServer(appName string, logger *zap.Logger, metrics *observability.Metrics, mw MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		// Params and body values outlive the handler once they reach a service.
		Immutable:             true,
		ErrorHandler:          ErrorHandler(logger, metrics),
	})
	RegisterMiddlewares(app, logger, metrics, mw)
	if routes.Metrics == nil {
		routes.Metrics = metrics
	}
	RegisterRoutes(app, routes)
	return app
}
