package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account identified by phone number. The synthesized email is
// derived from the phone and kept for compatibility with older exports.
type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Phone      string    `gorm:"size:32;not null;uniqueIndex" json:"phone"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	SecretHash string    `gorm:"size:255;not null" json:"-"` // bcrypt, never serialised
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was supplied.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
