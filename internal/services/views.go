package services

import (
	"time"

	"github.com/anonto42/nano-midea/interactions/internal/models"
)

// CommentView is a comment with its author summary.
type CommentView struct {
	ID        string             `json:"id"`
	Body      string             `json:"body"`
	CreatedAt time.Time          `json:"created_at"`
	Author    models.UserCompact `json:"author"`
}

// PostView is a post with everything the feed renders next to it.
type PostView struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	Comments     []CommentView      `json:"comments"`
	LikedBy      []string           `json:"liked_by"`
	LikeCount    int                `json:"like_count"`
	CommentCount int                `json:"comment_count"`
}

// PostSummary is the slice of a post shown inside a notification.
type PostSummary struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	ImageRef *string `json:"image_ref,omitempty"`
}

// CommentSummary is the slice of a comment shown inside a notification.
type CommentSummary struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationView is a notification enriched with what it points at.
type NotificationView struct {
	models.Notification
	Actor   models.UserCompact `json:"actor"`
	Post    *PostSummary       `json:"post,omitempty"`
	Comment *CommentSummary    `json:"comment,omitempty"`
}

// LikeResult is the state of the like after a toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
}

// FollowResult is the state of the follow after a toggle.
type FollowResult struct {
	Following bool `json:"following"`
}

// FollowStats describes the follow graph around one user.
type FollowStats struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

func newPostView(p models.Post) PostView {
	comments := make([]CommentView, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = CommentView{
			ID:        c.ID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
			Author:    c.Author.ToCompact(),
		}
	}
	likedBy := make([]string, len(p.Likes))
	for i, l := range p.Likes {
		likedBy[i] = l.UserID
	}

	view := PostView{
		Post:         p,
		Author:       p.Author.ToCompact(),
		Comments:     comments,
		LikedBy:      likedBy,
		LikeCount:    len(p.Likes),
		CommentCount: len(p.Comments),
	}
	view.Post.Author = models.User{}
	view.Post.Likes = nil
	view.Post.Comments = nil
	return view
}
