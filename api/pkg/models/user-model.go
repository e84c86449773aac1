package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns trips. Without authentication every request acts as the demo
// user or the id given in the X-User-Id header.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(128)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`

	// Free form settings, {} for new users
	Preferences JSON `gorm:"type:json" json:"preferences"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Preferences == nil {
		u.Preferences = JSON{}
	}
	return nil
}
