package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`
	OfferID   string    `gorm:"size:100;not null;index" json:"offer_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Student User          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Tutor   User          `gorm:"foreignKey:TutorID" json:"tutor,omitempty"`
	Offer   TutoringOffer `gorm:"foreignKey:OfferID" json:"offer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
