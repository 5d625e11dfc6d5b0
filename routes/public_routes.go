package routes

import (
	"github.com/anjiri1684/school_fees/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", h.Health)

	student := app.Group("/student")
	student.Post("/login", h.StudentLogin)
}
