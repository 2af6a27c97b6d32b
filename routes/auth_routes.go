package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
)

func AuthRoutes(app *fiber.App) {
	app.Post("/register", handlers.RegisterUser)
	app.Post("/login", handlers.LoginUser)
	app.Get("/logout", handlers.LogoutUser)
}
