package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)

// Payment records one charge attempt against a booking. Amounts are kept in
// minor currency units.
type Payment struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID        uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	AmountCents      int64     `gorm:"not null" json:"amount_cents"`
	Currency         string    `gorm:"size:3;not null;default:'usd'" json:"currency"`
	Provider         string    `gorm:"size:20;not null;default:'stripe'" json:"provider"`
	Status           string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	ProviderIntentID *string   `gorm:"size:255;index" json:"provider_intent_id"`
	ReceiptURL       *string   `gorm:"size:255" json:"receipt_url"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
