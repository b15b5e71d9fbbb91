package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/uniadvisor/counsel-api/internal/config"
	"github.com/uniadvisor/counsel-api/internal/handler"
	"github.com/uniadvisor/counsel-api/internal/middleware"
	"github.com/uniadvisor/counsel-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	UniversityHandler *handler.UniversityHandler
	ExternalHandler   *handler.ExternalUniversityHandler
	ShortlistHandler  *handler.ShortlistHandler
	TaskHandler       *handler.TaskHandler
	GuidanceHandler   *handler.GuidanceHandler
	DashboardHandler  *handler.DashboardHandler
	ChatHandler       *handler.ChatHandler
	SeedHandler       *handler.SeedHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.ProfileHandler != nil {
		profile := api.Group("/profile", jwtMiddleware)
		deps.ProfileHandler.Register(profile)
	}

	if deps.UniversityHandler != nil {
		universities := api.Group("/universities", jwtMiddleware)
		deps.UniversityHandler.Register(universities)
	}

	if deps.ExternalHandler != nil {
		external := api.Group("/external-universities", jwtMiddleware)
		deps.ExternalHandler.Register(external)
	}

	if deps.ShortlistHandler != nil {
		shortlist := api.Group("/shortlist", jwtMiddleware)
		deps.ShortlistHandler.Register(shortlist)
	}

	if deps.TaskHandler != nil {
		tasks := api.Group("/tasks", jwtMiddleware)
		deps.TaskHandler.Register(tasks)
	}

	if deps.GuidanceHandler != nil {
		guidance := api.Group("/guidance", jwtMiddleware)
		deps.GuidanceHandler.Register(guidance)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.ChatHandler != nil {
		chat := api.Group("/chat", jwtMiddleware,
			middleware.RateLimit("chat", cfg.ChatRateLimit, cfg.ChatRateWindow))
		deps.ChatHandler.Register(chat)
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed")
		deps.SeedHandler.Register(seed)
	}
}
