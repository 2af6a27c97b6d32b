package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/", handlers.ListTutors)
	app.Get("/search", handlers.SearchOffers)
	app.Get("/offer/:offerId", handlers.GetOffer)
}
