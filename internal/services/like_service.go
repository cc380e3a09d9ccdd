package services

import (
	"context"
	"errors"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
)

// LikeService flips a user's like on a post.
type LikeService struct {
	store repositories.Store
	cfg   Config
}

// NewLikeService creates a new LikeService
func NewLikeService(store repositories.Store, cfg Config) *LikeService {
	return &LikeService{store: store, cfg: cfg.withDefaults()}
}

// ToggleLike removes the actor's like if present, otherwise adds it and,
// unless the actor wrote the post, notifies the author in the same
// transaction.
func (s *LikeService) ToggleLike(ctx context.Context, actorID, postID string) (LikeResult, error) {
	const op = "ToggleLike"
	if actorID == "" {
		return LikeResult{}, newError(op, ErrUnauthenticated, nil)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	var result LikeResult
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return err
		}

		liked, err := tx.Likes().HasUserLikedPost(ctx, actorID, postID)
		if err != nil {
			return err
		}
		if liked {
			// A concurrent unlike may already have removed the row.
			if err := tx.Likes().DeleteLike(ctx, actorID, postID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			result.Liked = false
			return nil
		}

		now := s.cfg.Now()
		if err := tx.Likes().CreateLike(ctx, &models.Like{UserID: actorID, PostID: postID, CreatedAt: now}); err != nil {
			return err
		}
		if ShouldNotify(actorID, post.AuthorID) {
			notification := &models.Notification{
				Kind:        models.NotificationLike,
				RecipientID: post.AuthorID,
				ActorID:     actorID,
				PostID:      &post.ID,
				CreatedAt:   now,
			}
			if err := tx.Notifications().CreateNotification(ctx, notification); err != nil {
				return err
			}
		}
		result.Liked = true
		return nil
	})
	if errors.Is(err, repositories.ErrConflict) {
		// Lost the race against an identical like; the like exists.
		return LikeResult{Liked: true}, nil
	}
	if err != nil {
		return LikeResult{}, storeError(op, err)
	}
	return result, nil
}
