package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap/zaptest"

	"divina/common"
)

// pending keeps futures of started tasks so tests decide when they complete.
type pending struct {
	started []string
	futures map[string]*Future
	ctxs    map[string]context.Context
}

func newPending() *pending {
	return &pending{futures: make(map[string]*Future), ctxs: make(map[string]context.Context)}
}

func (p *pending) task(id string, prio float64) *Task[float64] {
	return &Task[float64]{
		ID:   id,
		Data: prio,
		Run: func(ctx context.Context) *Future {
			p.started = append(p.started, id)
			f := NewFuture()
			p.futures[id] = f
			p.ctxs[id] = ctx
			return f
		},
	}
}

func (p *pending) finish(t *testing.T, id string, err error) {
	t.Helper()
	f, ok := p.futures[id]
	if !ok {
		t.Fatalf("task %q was never started", id)
	}
	f.Resolve(err)
}

func identity(d float64) float64 { return d }

func TestQueue_SerialDedup(t *testing.T) {
	p := newPending()
	q := NewQueue(common.QueueModeSerial, NoCeiling, identity, zaptest.NewLogger(t))

	var ended []string
	first := p.task("3", 1)
	first.OnEnd = func(error) { ended = append(ended, "first") }
	second := p.task("3", 0)
	second.OnEnd = func(error) { ended = append(ended, "second") }

	q.AddOrUpdateTask(first)
	q.AddOrUpdateTask(second)
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if got := q.TaskWithID("3").Priority(); got != 0 {
		t.Errorf("Priority() after update = %v, want 0", got)
	}

	q.Start(nil)
	if len(p.started) != 1 {
		t.Fatalf("started %v, want exactly one task", p.started)
	}
	p.finish(t, "3", nil)

	if fmt.Sprint(ended) != "[first second]" {
		t.Errorf("end callbacks = %v, want [first second]", ended)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after completion = %d, want 0", q.Len())
	}
}

func TestQueue_SerialPriorityOrder(t *testing.T) {
	p := newPending()
	q := NewQueue(common.QueueModeSerial, NoCeiling, identity, nil)

	q.AddOrUpdateTask(p.task("c", 3))
	q.AddOrUpdateTask(p.task("a", 1))
	q.AddOrUpdateTask(p.task("b", 2))
	q.AddOrUpdateTask(p.task("a2", 1))

	q.Start(nil)
	if q.Running() != 1 {
		t.Fatalf("Running() = %d, want 1", q.Running())
	}

	// more urgent task arriving while another runs goes next
	q.AddOrUpdateTask(p.task("z", 0))

	for len(p.started) < 5 {
		last := p.started[len(p.started)-1]
		p.finish(t, last, nil)
	}
	if got := fmt.Sprint(p.started); got != "[a z a2 b c]" {
		t.Errorf("start order = %s, want [a z a2 b c]", got)
	}
}

func TestQueue_ParallelRunsOnAdd(t *testing.T) {
	p := newPending()
	q := NewQueue(common.QueueModeParallel, 2, identity, nil)

	q.AddOrUpdateTask(p.task("a", 0))
	q.AddOrUpdateTask(p.task("b", 1))
	if len(p.started) != 0 {
		t.Fatalf("tasks started before Start(): %v", p.started)
	}
	q.Start(nil)
	q.AddOrUpdateTask(p.task("c", 2))

	if q.Running() != 3 {
		t.Errorf("Running() = %d, want 3", q.Running())
	}
	if q.AddOrUpdateTask(p.task("d", 3)) {
		t.Error("AddOrUpdateTask() accepted task above ceiling")
	}
}

func TestQueue_ParallelEviction(t *testing.T) {
	p := newPending()
	shift := 0.0
	q := NewQueue(common.QueueModeParallel, 1, func(d float64) float64 { return d - shift }, nil)

	var killed []string
	for i, id := range []string{"p0", "p1", "p2", "p3"} {
		task := p.task(id, float64(i))
		task.OnKill = func() { killed = append(killed, id) }
		q.AddOrUpdateTask(task)
	}
	// p2 and p3 were refused
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	q.Start(nil)

	shift = -1
	q.UpdatePriorities()
	for _, task := range q.tasks {
		if task.Priority() > 1 {
			t.Errorf("task %q with priority %v survived eviction", task.ID, task.Priority())
		}
	}
	if fmt.Sprint(killed) != "[p1]" {
		t.Errorf("killed = %v, want [p1]", killed)
	}
	if p.ctxs["p1"].Err() == nil {
		t.Error("evicted task context was not cancelled")
	}
}

func TestQueue_LateCompletionOfKilledTask(t *testing.T) {
	p := newPending()
	q := NewQueue(common.QueueModeSerial, NoCeiling, identity, nil)

	ended := 0
	task := p.task("x", 0)
	task.OnEnd = func(error) { ended++ }
	q.AddOrUpdateTask(task)
	q.Start(nil)

	if !q.Kill("x") {
		t.Fatal("Kill() = false, want true")
	}
	p.finish(t, "x", nil)
	if ended != 0 {
		t.Errorf("end callback called %d times for killed task", ended)
	}
	if q.Kill("x") {
		t.Error("Kill() of absent task = true, want false")
	}
}

func TestQueue_InitialProgress(t *testing.T) {
	p := newPending()
	q := NewQueue(common.QueueModeParallel, NoCeiling, identity, nil)

	q.AddOrUpdateTask(p.task("a", 0))
	q.AddOrUpdateTask(p.task("b", 0))
	q.AddOrUpdateTask(p.task("c", 0))

	var reports []string
	q.Start(func(done, total int) {
		reports = append(reports, fmt.Sprintf("%d/%d", done, total))
	})
	// non initial task does not count
	q.AddOrUpdateTask(p.task("d", 0))

	p.finish(t, "b", errors.New("decode failed"))
	p.finish(t, "d", nil)
	p.finish(t, "a", nil)
	q.Kill("c")

	if got := fmt.Sprint(reports); got != "[1/3 2/3 3/3]" {
		t.Errorf("progress reports = %s, want [1/3 2/3 3/3]", got)
	}
}

func TestQueue_Reset(t *testing.T) {
	p := newPending()
	q := NewQueue(common.QueueModeSerial, NoCeiling, identity, nil)

	killed := 0
	for _, id := range []string{"a", "b", "c"} {
		task := p.task(id, 0)
		task.OnKill = func() { killed++ }
		q.AddOrUpdateTask(task)
	}
	q.Start(nil)
	q.Reset()

	if q.Len() != 0 || killed != 3 {
		t.Errorf("after Reset() Len(), killed = %d, %d, want 0, 3", q.Len(), killed)
	}
	if len(p.started) != 1 {
		t.Errorf("Reset() started new tasks: %v", p.started)
	}
}

func TestQueue_SynchronousTask(t *testing.T) {
	q := NewQueue[int](common.QueueModeSerial, NoCeiling, nil, nil)
	q.Start(nil)

	var order []int
	for i := range 3 {
		q.AddOrUpdateTask(&Task[int]{
			ID:    fmt.Sprint(i),
			Run:   func(context.Context) *Future { return nil },
			OnEnd: func(error) { order = append(order, i) },
		})
	}
	if fmt.Sprint(order) != "[0 1 2]" {
		t.Errorf("completion order = %v, want [0 1 2]", order)
	}
}
