package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviewer_booking" json:"reviewer_id"`
	TutorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviewer_booking" json:"booking_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`

	Reviewer User    `gorm:"foreignKey:ReviewerID" json:"-"`
	Tutor    User    `gorm:"foreignKey:TutorID" json:"-"`
	Booking  Booking `gorm:"foreignKey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
