package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/middleware"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/services"
)

type UpdateProfileRequest struct {
	Subjects *string `json:"subjects"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

func GetProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := database.DB.Preload("Offers").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var bookings []models.Booking
	database.DB.Preload("Offer").
		Where("student_id = ? OR tutor_id = ?", userID, userID).
		Order("start_time desc").
		Find(&bookings)

	response := fiber.Map{
		"user":     user,
		"bookings": bookings,
	}
	if user.IsTutor {
		response["average_rating"] = services.TutorAverageRating(user.ID)
	}

	return c.JSON(response)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Subjects != nil {
		user.Subjects = req.Subjects
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	database.DB.Save(&user)

	return c.JSON(user)
}
