package services

import (
	"context"
	"iter"
	"slices"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
)

// NotificationService serves a user's notification feed.
type NotificationService struct {
	store repositories.Store
	cfg   Config
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store repositories.Store, cfg Config) *NotificationService {
	return &NotificationService{store: store, cfg: cfg.withDefaults()}
}

// ListNotifications returns userID's notifications, newest first, enriched
// with the actor and, where set, the post and comment they point at.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string) (iter.Seq[NotificationView], error) {
	const op = "ListNotifications"
	if userID == "" {
		return nil, newError(op, ErrUnauthenticated, nil)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	var views []NotificationView
	err := s.store.ReadTransaction(ctx, func(tx repositories.Store) error {
		notifications, err := tx.Notifications().GetByRecipientID(ctx, userID)
		if err != nil {
			return err
		}

		var actorIDs, postIDs, commentIDs []string
		for _, n := range notifications {
			actorIDs = append(actorIDs, n.ActorID)
			if n.PostID != nil {
				postIDs = append(postIDs, *n.PostID)
			}
			if n.CommentID != nil {
				commentIDs = append(commentIDs, *n.CommentID)
			}
		}

		users, err := tx.Users().GetUsersByIDs(ctx, dedupe(actorIDs))
		if err != nil {
			return err
		}
		posts, err := tx.Posts().GetPostsByIDs(ctx, dedupe(postIDs))
		if err != nil {
			return err
		}
		comments, err := tx.Comments().GetCommentsByIDs(ctx, dedupe(commentIDs))
		if err != nil {
			return err
		}

		views = make([]NotificationView, len(notifications))
		for i, n := range notifications {
			views[i] = newNotificationView(n, users, posts, comments)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(op, err)
	}
	return slices.Values(views), nil
}

func newNotificationView(n models.Notification, users map[string]models.User, posts map[string]models.Post, comments map[string]models.Comment) NotificationView {
	view := NotificationView{Notification: n}
	if u, ok := users[n.ActorID]; ok {
		view.Actor = u.ToCompact()
	} else {
		view.Actor = models.UserCompact{ID: n.ActorID}
	}
	if n.PostID != nil {
		if p, ok := posts[*n.PostID]; ok {
			view.Post = &PostSummary{ID: p.ID, Content: p.Content, ImageRef: p.ImageRef}
		}
	}
	if n.CommentID != nil {
		if c, ok := comments[*n.CommentID]; ok {
			view.Comment = &CommentSummary{ID: c.ID, Body: c.Body, CreatedAt: c.CreatedAt}
		}
	}
	return view
}

// MarkRead flags the listed notifications as read. IDs that are unknown,
// already read or owned by someone else are ignored, so repeating the call is
// harmless.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, ids []string) error {
	const op = "MarkRead"
	if userID == "" {
		return newError(op, ErrUnauthenticated, nil)
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		_, err := tx.Notifications().MarkAsRead(ctx, userID, ids)
		return err
	})
	if err != nil {
		return storeError(op, err)
	}
	return nil
}

// MarkAllRead flags every unread notification of userID as read and returns
// how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	const op = "MarkAllRead"
	if userID == "" {
		return 0, newError(op, ErrUnauthenticated, nil)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	var updated int64
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		n, err := tx.Notifications().MarkAllAsRead(ctx, userID)
		updated = n
		return err
	})
	if err != nil {
		return 0, storeError(op, err)
	}
	return updated, nil
}

// UnreadCount returns how many of userID's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	const op = "UnreadCount"
	if userID == "" {
		return 0, newError(op, ErrUnauthenticated, nil)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	count, err := s.store.Notifications().GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, storeError(op, err)
	}
	return count, nil
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
