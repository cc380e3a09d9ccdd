// Package services implements the interaction engine: posts, the like and
// follow toggles, comments and the notification feed. Every mutation commits
// as a single store transaction together with the notification it implies.
package services

import (
	"context"
	"time"
)

// DefaultStoreTimeout bounds every store round trip when Config leaves it unset.
const DefaultStoreTimeout = 5 * time.Second

// Config holds the knobs shared by all services.
type Config struct {
	StoreTimeout time.Duration
	Now          func() time.Time
}

func (c Config) withDefaults() Config {
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = DefaultStoreTimeout
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// storeContext detaches the operation from caller cancellation and bounds it
// by the store timeout instead.
func (c Config) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.StoreTimeout)
}
