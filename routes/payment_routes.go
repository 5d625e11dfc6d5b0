package routes

import (
	"github.com/anjiri1684/school_fees/handlers"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App, h *handlers.Handler) {
	payments := app.Group("/payments")
	payments.Post("/create-order", h.CreateOrder)
	payments.Post("/verify", h.VerifyPayment)
	payments.Get("/:paymentId/receipt", h.GetReceipt)
}
