package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Cached view keys bumped after successful mutations.
const (
	ViewFeed = "feed"
)

// ViewNotifications is the notification list view of one user.
func ViewNotifications(userID string) string { return "notifications:" + userID }

// ViewProfile is the profile page of one user.
func ViewProfile(userID string) string { return "profile:" + userID }

const invalidateTimeout = 5 * time.Second

// Invalidator tells the presentation layer that cached views are stale.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// invalidate bumps keys in the background. Failures are logged and never
// reach the client.
func invalidate(c echo.Context, inv Invalidator, keys ...string) {
	if inv == nil || len(keys) == 0 {
		return
	}
	ctx := context.WithoutCancel(c.Request().Context())
	go func() {
		ctx, cancel := context.WithTimeout(ctx, invalidateTimeout)
		defer cancel()
		if err := inv.Invalidate(ctx, keys...); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Strs("keys", keys).Msg("view invalidation failed")
		}
	}()
}
