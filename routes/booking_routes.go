package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
	"github.com/skillmarkets/backend/middleware"
)

func BookingRoutes(app *fiber.App) {
	app.Get("/book/:offerId", middleware.Protected(), handlers.BookOfferForm)
	app.Post("/book/:offerId", middleware.Protected(), handlers.CreateBooking)

	bookings := app.Group("/bookings", middleware.Protected())
	bookings.Get("/me", handlers.GetMyBookings)
	bookings.Post("/:bookingId/cancel", handlers.CancelBooking)
	bookings.Get("/:bookingId/receipt", handlers.GetBookingReceipt)

	app.Get("/review/:bookingId", middleware.Protected(), handlers.ReviewBookingForm)
	app.Post("/review/:bookingId", middleware.Protected(), handlers.CreateReview)
}
