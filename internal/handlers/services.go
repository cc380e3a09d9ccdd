package handlers

import (
	"context"
	"iter"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/services"
)

// The handlers depend on these narrow views of the services so they can be
// tested without a store.

type PostService interface {
	CreatePost(ctx context.Context, authorID, content string, imageRef *string) (*models.Post, error)
	ListPosts(ctx context.Context) (iter.Seq[services.PostView], error)
	ListPostsByAuthor(ctx context.Context, authorID string) (iter.Seq[services.PostView], error)
	ListLikedPosts(ctx context.Context, userID string) (iter.Seq[services.PostView], error)
	DeletePost(ctx context.Context, actorID, postID string) error
}

type LikeService interface {
	ToggleLike(ctx context.Context, actorID, postID string) (services.LikeResult, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, actorID, postID, body string) (*models.Comment, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string) (iter.Seq[services.NotificationView], error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type FollowService interface {
	ToggleFollow(ctx context.Context, actorID, targetID string) (services.FollowResult, error)
	Stats(ctx context.Context, viewerID, targetID string) (services.FollowStats, error)
}

// ViewVersions reads the counters bumped by an Invalidator.
type ViewVersions interface {
	Version(ctx context.Context, key string) (int64, error)
}
