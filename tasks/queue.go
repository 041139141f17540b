// Package tasks schedules asynchronous work - resource loads - either all at
// once or one at a time by priority, with cancellation of in-flight work and
// live re-prioritization as reading position moves.
package tasks

import (
	"context"
	"math"

	"go.uber.org/zap"

	"divina/common"
)

// NoCeiling disables eviction by priority in parallel mode.
var NoCeiling = math.Inf(1)

// Task is a unit of asynchronous work. Tasks with the same ID coalesce: adding
// a task with known ID updates the queued one instead of starting new work.
type Task[D any] struct {
	ID   string
	Data D
	// when set, used instead of computed priority
	ForcedPriority *float64
	// Run starts the work, it must not block. Returned future is settled when
	// work is done, context is cancelled when task is killed.
	Run    func(ctx context.Context) *Future
	OnEnd  func(err error)
	OnKill func()

	priority float64
	seq      uint64
	running  bool
	initial  bool
	cancel   context.CancelFunc
	onEnd    []func(error)
	onKill   []func()
}

func (t *Task[D]) Priority() float64 {
	return t.priority
}

func (t *Task[D]) IsRunning() bool {
	return t.running
}

// Queue holds pending and running tasks. It is not safe for concurrent use.
type Queue[D any] struct {
	mode       common.QueueMode
	ceiling    float64
	priorityOf func(D) float64
	log        *zap.Logger

	tasks   []*Task[D]
	seq     uint64
	started bool

	initialTotal int
	initialDone  int
	onInitial    func(done, total int)
}

// NewQueue creates queue. In parallel mode tasks with priority above ceiling
// are refused and evicted by UpdatePriorities, in serial mode ceiling is not
// used. Nil priorityOf gives every task priority 0.
func NewQueue[D any](mode common.QueueMode, ceiling float64, priorityOf func(D) float64, log *zap.Logger) *Queue[D] {
	if priorityOf == nil {
		priorityOf = func(D) float64 { return 0 }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Queue[D]{
		mode:       mode,
		ceiling:    ceiling,
		priorityOf: priorityOf,
		log:        log,
	}
}

func (q *Queue[D]) Mode() common.QueueMode {
	return q.mode
}

// Len returns number of pending and running tasks.
func (q *Queue[D]) Len() int {
	return len(q.tasks)
}

// Running returns number of tasks in flight.
func (q *Queue[D]) Running() int {
	n := 0
	for _, t := range q.tasks {
		if t.running {
			n++
		}
	}
	return n
}

// TaskWithID returns queued task or nil.
func (q *Queue[D]) TaskWithID(id string) *Task[D] {
	if i := q.indexOf(id); i >= 0 {
		return q.tasks[i]
	}
	return nil
}

func (q *Queue[D]) indexOf(id string) int {
	for i, t := range q.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue[D]) priorityFor(t *Task[D]) float64 {
	if t.ForcedPriority != nil {
		return *t.ForcedPriority
	}
	return q.priorityOf(t.Data)
}

// AddOrUpdateTask queues new task or updates data, priority and callbacks of
// the queued task with the same ID. It returns false when task was refused.
func (q *Queue[D]) AddOrUpdateTask(task *Task[D]) bool {
	if existing := q.TaskWithID(task.ID); existing != nil {
		existing.Data = task.Data
		existing.ForcedPriority = task.ForcedPriority
		existing.priority = q.priorityFor(existing)
		if task.OnEnd != nil {
			existing.onEnd = append(existing.onEnd, task.OnEnd)
		}
		if task.OnKill != nil {
			existing.onKill = append(existing.onKill, task.OnKill)
		}
		q.log.Debug("Task updated", zap.String("id", task.ID), zap.Float64("priority", existing.priority))
		return true
	}

	prio := q.priorityFor(task)
	if q.mode == common.QueueModeParallel && prio > q.ceiling {
		q.log.Debug("Task refused", zap.String("id", task.ID), zap.Float64("priority", prio), zap.Float64("ceiling", q.ceiling))
		return false
	}

	q.seq++
	task.priority, task.seq = prio, q.seq
	task.onEnd, task.onKill = nil, nil
	if task.OnEnd != nil {
		task.onEnd = append(task.onEnd, task.OnEnd)
	}
	if task.OnKill != nil {
		task.onKill = append(task.onKill, task.OnKill)
	}
	q.tasks = append(q.tasks, task)
	q.log.Debug("Task added", zap.String("id", task.ID), zap.Float64("priority", prio))

	if !q.started {
		return true
	}
	if q.mode == common.QueueModeParallel {
		q.run(task)
	} else {
		q.runNext()
	}
	return true
}

// Start runs tasks accumulated so far. Tasks present at start are "initial",
// onEachInitialTaskDone (may be nil) is called every time one of them ends.
func (q *Queue[D]) Start(onEachInitialTaskDone func(done, total int)) {
	if q.started {
		return
	}
	q.started = true
	q.onInitial = onEachInitialTaskDone
	q.initialTotal = len(q.tasks)
	for _, t := range q.tasks {
		t.initial = true
	}

	if q.mode == common.QueueModeParallel {
		for _, t := range append([]*Task[D](nil), q.tasks...) {
			if q.indexOf(t.ID) >= 0 && !t.running {
				q.run(t)
			}
		}
		return
	}
	q.runNext()
}

// InitialProgress returns how many of the initial tasks are done.
func (q *Queue[D]) InitialProgress() (done, total int) {
	return q.initialDone, q.initialTotal
}

func (q *Queue[D]) run(t *Task[D]) {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel, t.running = cancel, true

	var fut *Future
	if t.Run != nil {
		fut = t.Run(ctx)
	}
	if fut == nil {
		fut = Resolved(nil)
	}
	fut.Then(func(err error) {
		q.complete(t, err)
	})
}

// runNext starts pending task with the lowest priority when nothing runs,
// ties go to the task added first.
func (q *Queue[D]) runNext() {
	var next *Task[D]
	for _, t := range q.tasks {
		if t.running {
			return
		}
		if next == nil || t.priority < next.priority || (t.priority == next.priority && t.seq < next.seq) {
			next = t
		}
	}
	if next != nil {
		q.run(next)
	}
}

func (q *Queue[D]) remove(t *Task[D]) bool {
	for i, c := range q.tasks {
		if c == t {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue[D]) complete(t *Task[D], err error) {
	if !q.remove(t) {
		// killed while in flight
		return
	}
	t.running = false
	t.cancel()

	if err != nil {
		q.log.Debug("Task ended with error", zap.String("id", t.ID), zap.Error(err))
	}
	for _, fn := range t.onEnd {
		fn(err)
	}
	q.countInitial(t)

	if q.mode == common.QueueModeSerial {
		q.runNext()
	}
}

func (q *Queue[D]) countInitial(t *Task[D]) {
	if !t.initial {
		return
	}
	t.initial = false
	q.initialDone++
	if q.onInitial != nil {
		q.onInitial(q.initialDone, q.initialTotal)
	}
}

func (q *Queue[D]) kill(t *Task[D]) {
	if !q.remove(t) {
		return
	}
	if t.running {
		t.running = false
		t.cancel()
	}
	q.log.Debug("Task killed", zap.String("id", t.ID))
	for _, fn := range t.onKill {
		fn()
	}
	// killed initial task will never complete, do not stall progress
	q.countInitial(t)
}

// Kill cancels task with given ID, returns false if it is not queued.
func (q *Queue[D]) Kill(id string) bool {
	t := q.TaskWithID(id)
	if t == nil {
		return false
	}
	q.kill(t)
	if q.started && q.mode == common.QueueModeSerial {
		q.runNext()
	}
	return true
}

// Reset kills all running and pending tasks.
func (q *Queue[D]) Reset() {
	for _, t := range append([]*Task[D](nil), q.tasks...) {
		q.kill(t)
	}
	q.tasks = nil
}

// UpdatePriorities recomputes priorities of queued tasks. In parallel mode
// tasks whose priority is above ceiling are killed.
func (q *Queue[D]) UpdatePriorities() {
	for _, t := range append([]*Task[D](nil), q.tasks...) {
		t.priority = q.priorityFor(t)
		if q.mode == common.QueueModeParallel && t.priority > q.ceiling {
			q.kill(t)
		}
	}
}
