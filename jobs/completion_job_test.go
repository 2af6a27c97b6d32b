package jobs

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	config "github.com/skillmarkets/backend/configs"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupJobsDB(t *testing.T) {
	t.Helper()

	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access database: %v", err)
	}
	// one connection, or every pooled conn gets its own empty :memory: db
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.TutoringOffer{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db
}

func seedBooking(t *testing.T, status string, start, end time.Time) models.Booking {
	t.Helper()

	booking := models.Booking{
		StudentID: uuid.New(),
		TutorID:   uuid.New(),
		OfferID:   "offer-" + uuid.NewString(),
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return booking
}

func bookingStatus(t *testing.T, id uuid.UUID) string {
	t.Helper()

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	return booking.Status
}

func TestCompleteElapsedBookings(t *testing.T) {
	setupJobsDB(t)

	now := time.Now()
	elapsed := seedBooking(t, models.BookingConfirmed, now.Add(-2*time.Hour), now.Add(-time.Hour))
	future := seedBooking(t, models.BookingConfirmed, now.Add(time.Hour), now.Add(2*time.Hour))
	elapsedPending := seedBooking(t, models.BookingPending, now.Add(-2*time.Hour), now.Add(-time.Hour))
	elapsedCancelled := seedBooking(t, models.BookingCancelled, now.Add(-2*time.Hour), now.Add(-time.Hour))

	CompleteElapsedBookings()

	if got := bookingStatus(t, elapsed.ID); got != models.BookingCompleted {
		t.Fatalf("expected elapsed confirmed booking to complete, got %q", got)
	}
	if got := bookingStatus(t, future.ID); got != models.BookingConfirmed {
		t.Fatalf("future booking must stay confirmed, got %q", got)
	}
	if got := bookingStatus(t, elapsedPending.ID); got != models.BookingPending {
		t.Fatalf("unpaid booking must not auto-complete, got %q", got)
	}
	if got := bookingStatus(t, elapsedCancelled.ID); got != models.BookingCancelled {
		t.Fatalf("cancelled booking must stay cancelled, got %q", got)
	}
}

func TestCompleteElapsedBookings_NoElapsed(t *testing.T) {
	setupJobsDB(t)

	now := time.Now()
	future := seedBooking(t, models.BookingConfirmed, now.Add(time.Hour), now.Add(2*time.Hour))

	CompleteElapsedBookings()

	if got := bookingStatus(t, future.ID); got != models.BookingConfirmed {
		t.Fatalf("expected no change, got %q", got)
	}
}
