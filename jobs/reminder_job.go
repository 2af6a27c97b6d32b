package jobs

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/notifications"
)

// SendSessionReminders emails both parties of confirmed bookings starting in
// roughly an hour. The window matches the 5-minute cron cadence so each
// booking is picked up once.
func SendSessionReminders() {
	upcoming, err := bookingsInReminderWindow(time.Now())
	if err != nil {
		logrus.Errorf("reminder job: %v", err)
		return
	}

	for _, booking := range upcoming {
		subject := "Reminder: Your Session Starts in 1 Hour"
		body := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Your %q session starts at %s.</p>",
			booking.Offer.Title,
			booking.StartTime.Format(time.Kitchen),
		)

		go notifications.SendEmail(booking.Student.Username, booking.Student.Email, subject, body)
		go notifications.SendEmail(booking.Tutor.Username, booking.Tutor.Email, subject, body)
	}

	if len(upcoming) > 0 {
		logrus.Infof("reminder job: sent reminders for %d booking(s)", len(upcoming))
	}
}

func bookingsInReminderWindow(now time.Time) ([]models.Booking, error) {
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Booking
	err := database.DB.
		Preload("Student").
		Preload("Tutor").
		Preload("Offer").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.BookingConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error
	return upcoming, err
}
