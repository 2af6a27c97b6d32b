package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email    string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"size:200;not null" json:"-"`
	IsTutor  bool      `gorm:"not null;default:false" json:"is_tutor"`

	Subjects *string `gorm:"size:200" json:"subjects"`
	Bio      *string `gorm:"type:text" json:"bio"`
	Avatar   string  `gorm:"size:200;default:'default.jpg'" json:"avatar"`

	Offers []TutoringOffer `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"offers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IDs are generated in the application so the same models run on Postgres
// in production and sqlite in tests.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
