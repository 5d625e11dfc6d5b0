package routes

import (
	"github.com/anjiri1684/school_fees/handlers"
	"github.com/anjiri1684/school_fees/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *handlers.Handler, jwtSecret string) {
	admin := app.Group("/admin", middleware.Protected(jwtSecret), middleware.AdminRequired())

	admin.Post("/students", h.CreateStudent)
	admin.Post("/discounts", h.ApplyDiscount)

	payments := admin.Group("/payments")
	payments.Post("/cash", h.RecordCashPayment)
}
