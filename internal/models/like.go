package models

import "time"

// Like represents "user U likes post P". The composite unique index is what
// keeps a pair from ever holding two rows.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_user_post"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_user_post;index"`
	CreatedAt time.Time `json:"created_at"`
}
