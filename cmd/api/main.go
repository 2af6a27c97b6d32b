package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	config "github.com/skillmarkets/backend/configs"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/jobs"
	"github.com/skillmarkets/backend/notifications"
	"github.com/skillmarkets/backend/routes"
	"github.com/skillmarkets/backend/services"
	"github.com/skillmarkets/backend/websocket"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	database.Connect(cfg)
	database.Migrate()
	notifications.InitEmailService(cfg)
	services.InitCache(cfg)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.CompleteElapsedBookings)
	c.AddFunc("*/5 * * * *", jobs.SendSessionReminders)
	go c.Start()

	app := fiber.New(fiber.Config{
		AppName:       "SkillMarkets",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			logrus.Errorf("%v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.AuthRoutes(app)
	routes.OfferRoutes(app)
	routes.PublicRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.MessagingRoutes(app)
	routes.ProfileRoutes(app)
	routes.UploadRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	logrus.Infof("server listening on port %s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server failed to start: %v", err)
	}
}
