package jobs

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/services"
)

// CompleteElapsedBookings moves confirmed bookings whose end time has passed
// into the completed state, which is what unlocks reviews. A receipt is
// generated for each newly completed booking.
func CompleteElapsedBookings() {
	var elapsed []models.Booking
	err := database.DB.
		Where("status = ? AND end_time < ?", models.BookingConfirmed, time.Now()).
		Find(&elapsed).Error
	if err != nil {
		logrus.Errorf("completion job: %v", err)
		return
	}

	if len(elapsed) == 0 {
		return
	}

	for _, booking := range elapsed {
		booking.Status = models.BookingCompleted
		if err := database.DB.Save(&booking).Error; err != nil {
			logrus.Errorf("completion job: failed to complete booking %s: %v", booking.ID, err)
			continue
		}
		go services.GenerateBookingReceipt(booking.ID)
	}

	logrus.Infof("completion job: marked %d booking(s) as completed", len(elapsed))
}
