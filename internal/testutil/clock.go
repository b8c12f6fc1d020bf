package testutil

import (
	"sync"
	"time"
)

// TestClock is a manually controlled clock for deterministic time-dependent
// tests.
type TestClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewTestClock creates a clock frozen at the given instant.
func NewTestClock(now time.Time) *TestClock {
	return &TestClock{now: now.UTC()}
}

// Now returns the clock's current instant.
func (c *TestClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *TestClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to the given instant.
func (c *TestClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}
