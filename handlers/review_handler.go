package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/middleware"
	"github.com/skillmarkets/backend/models"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewBookingForm backs the GET side of /review/:bookingId.
func ReviewBookingForm(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.Preload("Tutor").Preload("Offer").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	return c.JSON(fiber.Map{"booking": booking})
}

// CreateReview records a 1-5 rating for a completed booking. Submitting a
// second review for the same booking is answered with a warning, not an
// error, and leaves the original untouched.
func CreateReview(c *fiber.Ctx) error {
	reviewerID := middleware.CurrentUserID(c)
	bookingID := c.Params("bookingId")

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.StudentID != reviewerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the booking's student can leave a review"})
	}
	if booking.Status != models.BookingCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Reviews can only be left after the session is completed"})
	}

	var newReview models.Review
	alreadyReviewed := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		err := tx.Where("reviewer_id = ? AND booking_id = ?", reviewerID, booking.ID).First(&existing).Error
		if err == nil {
			alreadyReviewed = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newReview = models.Review{
			ReviewerID: reviewerID,
			TutorID:    booking.TutorID,
			BookingID:  booking.ID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		return tx.Create(&newReview).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save review"})
	}

	if alreadyReviewed {
		return c.JSON(fiber.Map{"warning": "You have already reviewed this booking"})
	}

	return c.Status(fiber.StatusCreated).JSON(newReview)
}
