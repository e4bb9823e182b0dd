package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/insurance-service/internal/api/http/handlers"
	"github.com/spec-kit/insurance-service/internal/auth"
	"github.com/spec-kit/insurance-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Public           *handlers.PublicHandler
	AdminAuth        *handlers.AdminAuthHandler
	AdminInsurances  *handlers.AdminInsuranceHandler
	AdminApplication *handlers.AdminApplicationHandler
	AuthMiddleware   *auth.AuthMiddleware
	Metrics          *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	public := app.Group("/api/public")
	public.Get("/insurances", cfg.Public.ListInsurances)
	public.Post("/applications", cfg.Public.SubmitApplication)
	public.Get("/applications/:id", cfg.Public.GetApplication)

	admin := app.Group("/api/admin")
	admin.Post("/login", cfg.AdminAuth.Login)

	protected := admin.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	protected.Get("/profile", cfg.AdminAuth.Profile)

	protected.Get("/insurances", cfg.AdminInsurances.List)
	protected.Post("/insurances", cfg.AdminInsurances.Create)
	protected.Get("/insurances/:id", cfg.AdminInsurances.Get)
	protected.Put("/insurances/:id", cfg.AdminInsurances.Update)
	protected.Delete("/insurances/:id", cfg.AdminInsurances.Delete)
	protected.Patch("/insurances/:id/toggle", cfg.AdminInsurances.Toggle)
	protected.Get("/insurances/:id/applications", cfg.AdminInsurances.Applications)

	protected.Get("/applications", cfg.AdminApplication.List)
	protected.Get("/applications/:id", cfg.AdminApplication.Get)
	protected.Get("/dashboard", cfg.AdminApplication.Dashboard)
}
