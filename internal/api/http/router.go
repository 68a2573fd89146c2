package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolvehub/issue-desk/internal/api/http/handlers"
	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Issues   *handlers.IssuesHandler
	Stats    *handlers.StatsHandler
	Sessions *auth.SessionMiddleware
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	authGroup := app.Group("/auth", cfg.Sessions.Handle)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", auth.RequireSession(), cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	techLead := auth.RequireState(auth.StateTechLead)

	issues := app.Group("/issues", cfg.Sessions.Handle)
	issues.Post("/", auth.RequireState(auth.StateIntern), cfg.Issues.Submit)
	issues.Get("/", techLead, cfg.Issues.List)
	issues.Get("/export", techLead, cfg.Issues.Export)
	issues.Get("/:id", techLead, cfg.Issues.Get)
	issues.Post("/:id/resolve", techLead, cfg.Issues.Resolve)

	stats := app.Group("/stats", cfg.Sessions.Handle)
	stats.Get("/", auth.RequireSession(), cfg.Stats.Counters)
	stats.Get("/resolvers", techLead, cfg.Stats.Resolvers)
}
