package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
	"github.com/skillmarkets/backend/middleware"
)

func ProfileRoutes(app *fiber.App) {
	profile := app.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Patch("", handlers.UpdateProfile)
}
