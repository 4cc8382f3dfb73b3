package web

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes mounts the API surface on the fiber app.
func RegisterRoutes(app *fiber.App, h *APIHandlers) {
	app.Get("/health", h.HealthCheck)

	app.Get("/tools", h.GetTools)

	app.Get("/graphs", h.GetGraphs)
	app.Get("/graphs/:id", h.GetGraph)
	app.Put("/graphs/:id", h.PutGraph)
	app.Delete("/graphs/:id", h.DeleteGraph)

	app.Post("/graphs/:id/validate", h.ValidateGraph)
	app.Post("/graphs/:id/run", h.RunGraph)

	app.Get("/runs/:id", h.GetRun)
}
