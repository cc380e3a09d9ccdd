package services

import (
	"context"
	"strings"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
)

// CommentService adds comments to posts.
type CommentService struct {
	store repositories.Store
	cfg   Config
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.Store, cfg Config) *CommentService {
	return &CommentService{store: store, cfg: cfg.withDefaults()}
}

// CreateComment stores a comment on postID and, unless the actor wrote the
// post, a COMMENT notification pointing at it. Both rows commit together.
func (s *CommentService) CreateComment(ctx context.Context, actorID, postID, body string) (*models.Comment, error) {
	const op = "CreateComment"
	if actorID == "" {
		return nil, newError(op, ErrUnauthenticated, nil)
	}
	if strings.TrimSpace(body) == "" {
		return nil, newError(op, ErrInvalidArgument, errEmptyComment)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	var comment *models.Comment
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return err
		}

		now := s.cfg.Now()
		c := &models.Comment{
			PostID:    postID,
			AuthorID:  actorID,
			Body:      body,
			CreatedAt: now,
		}
		if err := tx.Comments().CreateComment(ctx, c); err != nil {
			return err
		}

		if ShouldNotify(actorID, post.AuthorID) {
			notification := &models.Notification{
				Kind:        models.NotificationComment,
				RecipientID: post.AuthorID,
				ActorID:     actorID,
				PostID:      &post.ID,
				CommentID:   &c.ID,
				CreatedAt:   now,
			}
			if err := tx.Notifications().CreateNotification(ctx, notification); err != nil {
				return err
			}
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, storeError(op, err)
	}
	return comment, nil
}
