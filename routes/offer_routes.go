package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
	"github.com/skillmarkets/backend/middleware"
)

// OfferRoutes must be registered before PublicRoutes so /offer/new is not
// swallowed by the /offer/:offerId parameter route. The auth middleware is
// attached per route, not on a group, to keep /offer/:offerId public.
func OfferRoutes(app *fiber.App) {
	app.Get("/offer/new", middleware.Protected(), middleware.TutorRequired(), handlers.NewOfferForm)
	app.Post("/offer/new", middleware.Protected(), middleware.TutorRequired(), handlers.CreateOffer)
}
