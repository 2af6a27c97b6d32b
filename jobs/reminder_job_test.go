package jobs

import (
	"testing"
	"time"

	"github.com/skillmarkets/backend/models"
)

func TestBookingsInReminderWindow(t *testing.T) {
	setupJobsDB(t)

	now := time.Now()
	inWindow := seedBooking(t, models.BookingConfirmed, now.Add(62*time.Minute), now.Add(122*time.Minute))
	seedBooking(t, models.BookingConfirmed, now.Add(30*time.Minute), now.Add(90*time.Minute))
	seedBooking(t, models.BookingConfirmed, now.Add(70*time.Minute), now.Add(130*time.Minute))
	seedBooking(t, models.BookingPending, now.Add(62*time.Minute), now.Add(122*time.Minute))

	upcoming, err := bookingsInReminderWindow(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 booking in the reminder window, got %d", len(upcoming))
	}
	if upcoming[0].ID != inWindow.ID {
		t.Fatalf("wrong booking picked up: %s", upcoming[0].ID)
	}
}

func TestSendSessionReminders_NoUpcoming(t *testing.T) {
	setupJobsDB(t)

	// Nothing scheduled; the job must be a quiet no-op.
	SendSessionReminders()
}
