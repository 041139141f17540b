package frame

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLoop_PostFromGoroutines(t *testing.T) {
	l := NewLoop(NewScheduler(nil, nil), 60)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() {})
		}()
	}
	wg.Wait()

	if l.Pending() != 10 {
		t.Fatalf("Pending() = %d, want 10", l.Pending())
	}
	if n := l.Drain(); n != 10 {
		t.Errorf("Drain() = %d, want 10", n)
	}
}

func TestLoop_DrainRunsNestedPosts(t *testing.T) {
	l := NewLoop(NewScheduler(nil, nil), 60)

	order := []int{}
	l.Post(func() {
		order = append(order, 1)
		l.Post(func() { order = append(order, 2) })
	})

	if n := l.Drain(); n != 2 {
		t.Errorf("Drain() = %d, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestLoop_Wait(t *testing.T) {
	l := NewLoop(NewScheduler(nil, nil), 60)

	done := false
	go l.Post(func() { done = true })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if !l.Wait(ctx) {
		t.Fatal("Wait() = false, want true")
	}
	if !done {
		t.Error("posted callback did not run")
	}

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if l.Wait(ctx) {
		t.Error("Wait() on cancelled context = true, want false")
	}
}

func TestLoop_StepTicks(t *testing.T) {
	s := NewScheduler(NewManualClock(time.Unix(0, 0)), nil)
	l := NewLoop(s, 30)

	if l.Interval() != time.Second/30 {
		t.Errorf("Interval() = %v, want %v", l.Interval(), time.Second/30)
	}

	ticks := 0
	s.Add("count", func(now time.Time) bool {
		ticks++
		return true
	})
	l.Step()
	l.Step()
	if ticks != 2 {
		t.Errorf("ticks = %d, want 2", ticks)
	}
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	l := NewLoop(NewScheduler(nil, nil), 120)

	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{})
	l.Post(func() {
		close(ran)
		cancel()
	})

	if err := l.Run(ctx); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	select {
	case <-ran:
	default:
		t.Error("posted callback did not run")
	}
}
