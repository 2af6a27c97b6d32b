package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/middleware"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/notifications"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	StartTime     string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationHours float64 `json:"duration_hours" validate:"required,gte=0.5,lte=10"`
}

// BookOfferForm backs the GET side of /book/:offerId.
func BookOfferForm(c *fiber.Ctx) error {
	offerID := c.Params("offerId")

	var offer models.TutoringOffer
	if err := database.DB.Preload("Tutor").First(&offer, "id = ?", offerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	}

	return c.JSON(fiber.Map{
		"offer":              offer,
		"min_duration_hours": 0.5,
		"max_duration_hours": 10.0,
	})
}

func CreateBooking(c *fiber.Ctx) error {
	studentID := middleware.CurrentUserID(c)
	offerID := c.Params("offerId")

	var offer models.TutoringOffer
	if err := database.DB.Preload("Tutor").First(&offer, "id = ?", offerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	}

	if offer.UserID == studentID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You cannot book your own offer"})
	}
	if middleware.CurrentUserIsTutor(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only students can book sessions"})
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime := startTime.Add(time.Duration(req.DurationHours * float64(time.Hour)))

	booking := models.Booking{
		StudentID: studentID,
		TutorID:   offer.UserID,
		OfferID:   offer.ID,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    models.BookingPending,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	go notifications.SendEmail(offer.Tutor.Username, offer.Tutor.Email, "You Have a New Booking Request",
		fmt.Sprintf("<h1>New Booking</h1><p>A student requested a session for %q starting %s. It will be confirmed once paid.</p>",
			offer.Title, startTime.Format(time.RFC1123)))

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// CancelBooking lets the student call a session off at any point before it
// is completed.
func CancelBooking(c *fiber.Ctx) error {
	studentID := middleware.CurrentUserID(c)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			return errors.New("booking not found")
		}
		if booking.StudentID != studentID {
			return errors.New("this is not your booking")
		}
		if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
			return errors.New("only pending or confirmed bookings can be cancelled")
		}

		booking.Status = models.BookingCancelled
		return tx.Save(&booking).Error
	})

	if err != nil {
		switch err.Error() {
		case "booking not found":
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case "this is not your booking":
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var bookings []models.Booking
	database.DB.
		Preload("Offer").
		Preload("Tutor").
		Preload("Student").
		Where("student_id = ? OR tutor_id = ?", userID, userID).
		Order("start_time desc").
		Find(&bookings)

	return c.JSON(bookings)
}

// GetBookingReceipt returns the stored receipt URL for a paid, completed
// booking.
func GetBookingReceipt(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.StudentID != userID && booking.TutorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}

	var payment models.Payment
	if err := database.DB.
		Where("booking_id = ? AND status = ?", booking.ID, models.PaymentSucceeded).
		First(&payment).Error; err != nil || payment.ReceiptURL == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No receipt available for this booking"})
	}

	return c.JSON(fiber.Map{"receipt_url": *payment.ReceiptURL})
}
