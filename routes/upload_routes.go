package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
	"github.com/skillmarkets/backend/middleware"
)

func UploadRoutes(app *fiber.App) {
	app.Get("/uploads/signature", middleware.Protected(), handlers.GenerateUploadSignature)
}
