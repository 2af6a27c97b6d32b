package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the application reads from the environment. It is
// built once at startup and handed to the components that need it.
type Config struct {
	AppPort              string
	DatabaseURL          string
	JWTSecret            string
	StripeSecretKey      string
	StripePublishableKey string
	StripeAPIBase        string
	RedisAddr            string
	RedisPass            string
	RedisDB              int
	BrevoAPIKey          string
	EmailSender          string
	EmailSenderName      string
	CloudinaryURL        string
}

var app *Config

// Load reads the environment (and an optional .env file) into a Config.
// The loaded instance is kept for Get.
func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	app = &Config{
		AppPort:              envOr("APP_PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeAPIBase:        envOr("STRIPE_API_BASE_URL", "https://api.stripe.com"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPass:            os.Getenv("REDIS_PASS"),
		RedisDB:              redisDB,
		BrevoAPIKey:          os.Getenv("BREVO_API_KEY"),
		EmailSender:          os.Getenv("EMAIL_SENDER"),
		EmailSenderName:      os.Getenv("EMAIL_SENDER_NAME"),
		CloudinaryURL:        os.Getenv("CLOUDINARY_URL"),
	}
	return app
}

// Get returns the Config built by Load.
func Get() *Config {
	if app == nil {
		return Load()
	}
	return app
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
