package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/skillmarkets/backend/configs"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Get().JWTSecret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func TutorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentUserIsTutor(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only tutors can perform this action",
			})
		}
		return c.Next()
	}
}

func StudentRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUserIsTutor(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only students can perform this action",
			})
		}
		return c.Next()
	}
}

// CurrentUserID extracts the caller's id from the verified JWT.
func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	raw, _ := claims["user_id"].(string)
	id, _ := uuid.Parse(raw)
	return id
}

func CurrentUserIsTutor(c *fiber.Ctx) bool {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	isTutor, _ := claims["is_tutor"].(bool)
	return isTutor
}
