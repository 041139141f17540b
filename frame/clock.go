package frame

import "time"

// Clock provides current time to everything animated by Scheduler.
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to, used by headless runs and tests.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves clock forward and returns new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}
