package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/handlers"
	"github.com/skillmarkets/backend/middleware"
)

func MessagingRoutes(app *fiber.App) {
	app.Get("/chat/:userId", middleware.Protected(), handlers.GetChat)
	app.Post("/send_message/:userId", middleware.Protected(), handlers.SendMessage)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(handlers.ServeWs))
}
