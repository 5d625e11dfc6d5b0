package routes

import (
	"github.com/anjiri1684/school_fees/handlers"
	"github.com/gofiber/fiber/v2"
)

// Setup registers every route. Login routes come first so the admin group
// middleware never sees them.
func Setup(app *fiber.App, h *handlers.Handler, jwtSecret string) {
	PublicRoutes(app, h)
	AuthRoutes(app, h)
	PaymentRoutes(app, h)
	AdminRoutes(app, h, jwtSecret)
}
