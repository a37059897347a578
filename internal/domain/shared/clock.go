package shared

import (
	"sync"
	"time"
)

// Clock abstracts wall time so backoff and cache expiry can be driven from tests
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the real system time
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// ManualClock only moves when told to. Sleep advances it instantly and
// records the requested duration.
type ManualClock struct {
	mu      sync.Mutex
	current time.Time
	slept   []time.Duration
}

// NewManualClock starts a ManualClock at start (or at the current time when start is zero)
func NewManualClock(start time.Time) *ManualClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &ManualClock{current: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
}

// Advance moves the clock forward without recording a sleep
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Sleeps returns every duration passed to Sleep, in call order
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}
