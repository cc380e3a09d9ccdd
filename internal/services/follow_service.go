package services

import (
	"context"
	"errors"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
)

// FollowService maintains the follow graph.
type FollowService struct {
	store repositories.Store
	cfg   Config
}

// NewFollowService creates a new FollowService
func NewFollowService(store repositories.Store, cfg Config) *FollowService {
	return &FollowService{store: store, cfg: cfg.withDefaults()}
}

// ToggleFollow unfollows targetID if the actor follows them, otherwise follows
// and sends targetID a FOLLOW notification in the same transaction.
func (s *FollowService) ToggleFollow(ctx context.Context, actorID, targetID string) (FollowResult, error) {
	const op = "ToggleFollow"
	if actorID == "" {
		return FollowResult{}, newError(op, ErrUnauthenticated, nil)
	}
	if actorID == targetID {
		return FollowResult{}, newError(op, ErrInvalidArgument, errSelfFollow)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	var result FollowResult
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetUserByID(ctx, targetID); err != nil {
			return err
		}

		following, err := tx.Follows().IsFollowing(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if following {
			if err := tx.Follows().DeleteFollow(ctx, actorID, targetID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			result.Following = false
			return nil
		}

		now := s.cfg.Now()
		if err := tx.Follows().CreateFollow(ctx, &models.Follow{FollowerID: actorID, FollowingID: targetID, CreatedAt: now}); err != nil {
			return err
		}
		notification := &models.Notification{
			Kind:        models.NotificationFollow,
			RecipientID: targetID,
			ActorID:     actorID,
			CreatedAt:   now,
		}
		if err := tx.Notifications().CreateNotification(ctx, notification); err != nil {
			return err
		}
		result.Following = true
		return nil
	})
	if errors.Is(err, repositories.ErrConflict) {
		return FollowResult{Following: true}, nil
	}
	if err != nil {
		return FollowResult{}, storeError(op, err)
	}
	return result, nil
}

// IsFollowing reports whether actorID follows targetID.
func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetID string) (bool, error) {
	const op = "IsFollowing"
	if actorID == "" {
		return false, newError(op, ErrUnauthenticated, nil)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	following, err := s.store.Follows().IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, storeError(op, err)
	}
	return following, nil
}

// Stats returns the follower and following counts of targetID and whether
// viewerID follows them. An empty viewerID is allowed and never follows.
func (s *FollowService) Stats(ctx context.Context, viewerID, targetID string) (FollowStats, error) {
	const op = "FollowStats"

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	var stats FollowStats
	err := s.store.ReadTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetUserByID(ctx, targetID); err != nil {
			return err
		}
		var err error
		if viewerID != "" && viewerID != targetID {
			if stats.Following, err = tx.Follows().IsFollowing(ctx, viewerID, targetID); err != nil {
				return err
			}
		}
		if stats.FollowersCount, err = tx.Follows().GetFollowersCount(ctx, targetID); err != nil {
			return err
		}
		stats.FollowingCount, err = tx.Follows().GetFollowingCount(ctx, targetID)
		return err
	})
	if err != nil {
		return FollowStats{}, storeError(op, err)
	}
	return stats, nil
}
