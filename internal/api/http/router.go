package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-bridge/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Command     *handlers.CommandHandler
	Interaction *handlers.InteractionHandler
	Event       *handlers.EventHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	slackGroup := app.Group("/slack")
	slackGroup.Post("/command", cfg.Command.Handle)
	slackGroup.Post("/interaction", cfg.Interaction.Handle)
	slackGroup.Post("/events", cfg.Event.Handle)
}
