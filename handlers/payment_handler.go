package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	config "github.com/skillmarkets/backend/configs"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/middleware"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/notifications"
	"github.com/skillmarkets/backend/payments"
	"gorm.io/gorm"
)

// loadPayableBooking runs the shared pay preconditions: the caller must be
// the booking's student and the booking must still be pending. On failure
// the error response has already been written.
func loadPayableBooking(c *fiber.Ctx) (*models.Booking, bool) {
	studentID := middleware.CurrentUserID(c)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.Preload("Offer").First(&booking, "id = ?", bookingID).Error; err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		return nil, false
	}
	if booking.StudentID != studentID {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You cannot pay for someone else's booking"})
		return nil, false
	}
	if booking.Status != models.BookingPending {
		_ = c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This booking has already been paid or cancelled"})
		return nil, false
	}
	return &booking, true
}

func chargeAmountCents(offer models.TutoringOffer) int64 {
	return int64(math.Round(offer.PricePerHour * 100))
}

// PayBookingForm backs the GET side of /pay/:bookingId, handing the client
// what it needs to render the payment form.
func PayBookingForm(c *fiber.Ctx) error {
	booking, ok := loadPayableBooking(c)
	if !ok {
		return nil
	}

	return c.JSON(fiber.Map{
		"booking_id":      booking.ID,
		"amount_cents":    chargeAmountCents(booking.Offer),
		"currency":        "usd",
		"publishable_key": config.Get().StripePublishableKey,
	})
}

// PayBooking creates the Stripe payment intent for a pending booking and
// returns the client secret. Collaborator failures surface to the caller as
// a 400 with the provider's message.
func PayBooking(c *fiber.Ctx) error {
	booking, ok := loadPayableBooking(c)
	if !ok {
		return nil
	}

	amount := chargeAmountCents(booking.Offer)
	payment := models.Payment{
		BookingID:   booking.ID,
		AmountCents: amount,
		Currency:    "usd",
		Provider:    "stripe",
		Status:      models.PaymentPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	intent, err := payments.CreatePaymentIntent(amount, payment.Currency, booking.ID.String())
	if err != nil {
		logrus.Warnf("payment intent for booking %s failed: %v", booking.ID, err)
		payment.Status = models.PaymentFailed
		database.DB.Save(&payment)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payment.ProviderIntentID = &intent.ID
	database.DB.Save(&payment)

	return c.JSON(fiber.Map{"client_secret": intent.ClientSecret})
}

type stripeWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				BookingID string `json:"booking_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleStripeWebhook confirms a pending booking once Stripe reports its
// payment intent succeeded.
func HandleStripeWebhook(c *fiber.Ctx) error {
	var event stripeWebhookEvent
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	if event.Type != "payment_intent.succeeded" {
		return c.JSON(fiber.Map{"message": "Event ignored"})
	}

	var payment models.Payment
	if err := database.DB.Where("provider_intent_id = ?", event.Data.Object.ID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}
	if payment.Status == models.PaymentSucceeded {
		return c.JSON(fiber.Map{"message": "Webhook already processed"})
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentSucceeded
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if err := tx.Preload("Student").Preload("Tutor").First(&booking, "id = ?", payment.BookingID).Error; err != nil {
			return err
		}
		if booking.Status == models.BookingPending {
			booking.Status = models.BookingConfirmed
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.Errorf("failed to process webhook for intent %s: %v", event.Data.Object.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process webhook"})
	}

	go func() {
		notifications.SendEmail(booking.Student.Username, booking.Student.Email, "Your Booking is Confirmed!",
			"<h1>Booking Confirmed</h1><p>Your payment was successful and your session is confirmed.</p>")
		notifications.SendEmail(booking.Tutor.Username, booking.Tutor.Email, "You Have a Confirmed Booking",
			"<h1>Session Confirmed</h1><p>A student has paid for a session with you.</p>")
	}()

	return c.JSON(fiber.Map{"message": "Webhook processed successfully"})
}
