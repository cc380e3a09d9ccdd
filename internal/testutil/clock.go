package testutil

import (
	"sync"
	"time"
)

// Clock hands out strictly increasing timestamps so ordering by created_at is
// deterministic in tests.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock starts at a fixed UTC instant and advances one second per call.
func NewClock() *Clock {
	return &Clock{
		now:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

// Now returns the next timestamp.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}
