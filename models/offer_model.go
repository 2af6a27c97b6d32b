package models

import (
	"time"

	"github.com/google/uuid"
)

// TutoringOffer is keyed by an opaque random token rather than a sequential
// id, so offer URLs are not enumerable.
type TutoringOffer struct {
	ID           string    `gorm:"size:100;primaryKey" json:"id"`
	Title        string    `gorm:"size:150;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Subject      string    `gorm:"size:100;not null;index" json:"subject"`
	PricePerHour float64   `gorm:"not null" json:"price_per_hour"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Tutor User `gorm:"foreignKey:UserID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
