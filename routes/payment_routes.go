package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
	"github.com/skillmarkets/backend/middleware"
)

func PaymentRoutes(app *fiber.App) {
	app.Get("/pay/:bookingId", middleware.Protected(), handlers.PayBookingForm)
	app.Post("/pay/:bookingId", middleware.Protected(), handlers.PayBooking)

	app.Post("/webhooks/stripe", handlers.HandleStripeWebhook)
}
