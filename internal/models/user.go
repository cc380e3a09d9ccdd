package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local account record that posts, likes and comments point at.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username    string    `json:"username" gorm:"size:50;index"`
	Name        string    `json:"name" gorm:"size:100"`
	Image       string    `json:"image,omitempty"`
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"` // set when the account was resolved from a Firebase ID token
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when the caller did not pick one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserCompact is the author/actor summary embedded in feed and notification views.
type UserCompact struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
}

// ToCompact strips a user down to its public summary.
func (u User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Image:    u.Image,
	}
}
