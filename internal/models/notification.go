package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationKind names the interaction that produced a notification.
type NotificationKind string

const (
	NotificationLike    NotificationKind = "LIKE"
	NotificationComment NotificationKind = "COMMENT"
	NotificationFollow  NotificationKind = "FOLLOW"
)

// Notification is an append-only side effect of a like, comment or follow.
// Read only ever moves from false to true.
type Notification struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Kind        NotificationKind `json:"kind" gorm:"size:20;not null;index"`
	RecipientID string           `json:"recipient_id" gorm:"type:varchar(36);not null;index"`
	ActorID     string           `json:"actor_id" gorm:"type:varchar(36);not null"`
	PostID      *string          `json:"post_id,omitempty" gorm:"type:varchar(36);index"`
	CommentID   *string          `json:"comment_id,omitempty" gorm:"type:varchar(36);index"`
	Read        bool             `json:"read" gorm:"column:is_read;not null;default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// BeforeCreate assigns a UUID when the caller did not pick one.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// MarkReadRequest defines the request body for acknowledging notifications
type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"dive,required,max=36"`
}
