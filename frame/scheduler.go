// Package frame drives everything that changes from one animation frame to
// the next: layer transitions, camera auto-scroll, kinetic scroll and loading
// indicators. It also provides the loop which marshals asynchronous
// completions back onto the single goroutine the reader engine runs on.
package frame

import (
	"time"

	"go.uber.org/zap"
)

// Animation is called once per frame with the frame time. Returning false
// deregisters it.
type Animation func(now time.Time) bool

// Handle identifies registered animation, zero handle is never issued.
type Handle uint64

type animation struct {
	id      Handle
	name    string
	fn      Animation
	removed bool
}

// Scheduler is the explicit per-frame ticker owned by a reader. It is not
// safe for concurrent use, it is driven from the loop goroutine.
type Scheduler struct {
	clock   Clock
	log     *zap.Logger
	last    Handle
	entries []*animation
	closed  bool
}

func NewScheduler(clock Clock, log *zap.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{clock: clock, log: log.Named("frame")}
}

// Now returns current frame time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Add registers animation to be called starting with the next Tick. Name is
// used for diagnostics only.
func (s *Scheduler) Add(name string, fn Animation) Handle {
	if s.closed || fn == nil {
		return 0
	}
	s.last++
	s.entries = append(s.entries, &animation{id: s.last, name: name, fn: fn})
	return s.last
}

// Remove deregisters animation, unknown or zero handles are ignored.
func (s *Scheduler) Remove(h Handle) {
	if h == 0 {
		return
	}
	for _, a := range s.entries {
		if a.id == h {
			a.removed = true
			return
		}
	}
}

// Has reports whether animation is still registered.
func (s *Scheduler) Has(h Handle) bool {
	for _, a := range s.entries {
		if a.id == h && !a.removed {
			return true
		}
	}
	return false
}

// Active returns number of registered animations.
func (s *Scheduler) Active() int {
	n := 0
	for _, a := range s.entries {
		if !a.removed {
			n++
		}
	}
	return n
}

// Tick runs a single frame. Animations added while ticking are first called
// on the next frame.
func (s *Scheduler) Tick() {
	now := s.clock.Now()
	current := s.entries
	for _, a := range current {
		if a.removed {
			continue
		}
		if !a.fn(now) {
			a.removed = true
		}
	}
	s.compact()
}

func (s *Scheduler) compact() {
	kept := s.entries[:0]
	for _, a := range s.entries {
		if !a.removed {
			kept = append(kept, a)
		}
	}
	clear(s.entries[len(kept):])
	s.entries = kept
}

// Close drops all animations, scheduler does not accept new ones after that.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	for _, a := range s.entries {
		if !a.removed {
			s.log.Debug("Dropping animation on close", zap.String("name", a.name))
		}
	}
	s.entries = nil
	s.closed = true
}
