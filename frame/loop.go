package frame

import (
	"context"
	"sync"
	"time"
)

// Loop serializes everything reader engine does onto a single goroutine:
// callbacks posted from other goroutines (resource loaders) are executed
// between frames, frames are ticked at fixed rate.
type Loop struct {
	sched    *Scheduler
	interval time.Duration

	mu     sync.Mutex
	posted []func()
	wake   chan struct{}
}

func NewLoop(sched *Scheduler, fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		sched:    sched,
		interval: time.Second / time.Duration(fps),
		wake:     make(chan struct{}, 1),
	}
}

// Interval returns duration of a single frame.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Post schedules fn to run on the loop goroutine. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns number of posted callbacks not yet executed.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.posted)
}

// Drain runs callbacks posted so far, including ones posted by them, and
// returns how many were executed. Must be called on the loop goroutine.
func (l *Loop) Drain() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.posted
		l.posted = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
		}
		n += len(batch)
	}
}

// Step drains posted callbacks and ticks a single frame.
func (l *Loop) Step() {
	l.Drain()
	l.sched.Tick()
}

// Wait blocks until something is posted or context is done, then drains.
// Returns false when context was cancelled.
func (l *Loop) Wait(ctx context.Context) bool {
	if l.Drain() > 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-l.wake:
		l.Drain()
		return true
	}
}

// Run executes loop until context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Drain()
			return ctx.Err()
		case <-l.wake:
			l.Drain()
		case <-ticker.C:
			l.Step()
		}
	}
}
