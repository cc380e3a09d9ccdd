package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed entry. AuthorID never changes after creation.
// Likes, comments and notifications go away with the post.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);not null;index"`
	Content   string    `json:"content" gorm:"type:text"`
	ImageRef  *string   `json:"image_ref,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Author        User           `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Likes         []Like         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Comments      []Comment      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Notifications []Notification `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID when the caller did not pick one.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string  `json:"content" validate:"max=2000"`
	ImageRef *string `json:"image_ref,omitempty" validate:"omitempty,max=2048"`
}
