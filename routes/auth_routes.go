package routes

import (
	"github.com/anjiri1684/school_fees/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.Handler) {
	app.Post("/admin/login", h.AdminLogin)
}
