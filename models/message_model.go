package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`

	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
