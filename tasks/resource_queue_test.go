package tasks

import (
	"context"
	"fmt"
	"testing"

	"divina/common"
)

func TestResourceQueue_Priority(t *testing.T) {
	rq := NewResourceQueue(common.QueueModeSerial, NoCeiling, 3, nil)
	rq.UpdatePriorities(5)

	tests := []struct {
		page int
		want float64
	}{
		{5, 0},
		{6, 1},
		{8, 3},
		{4, 3},
		{3, 6},
		{NoPage, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.page), func(t *testing.T) {
			if got := rq.priority(LoadContext{PageIndex: tt.page}); got != tt.want {
				t.Errorf("priority(%d) = %v, want %v", tt.page, got, tt.want)
			}
		})
	}
}

func TestResourceQueue_ReRanksWithoutRestart(t *testing.T) {
	rq := NewResourceQueue(common.QueueModeSerial, NoCeiling, 1, nil)
	rq.UpdatePriorities(0)

	var started []string
	futures := make(map[string]*Future)
	add := func(id string, page int) {
		rq.AddOrUpdateTask(&Task[LoadContext]{
			ID:   id,
			Data: LoadContext{PageIndex: page},
			Run: func(context.Context) *Future {
				started = append(started, id)
				f := NewFuture()
				futures[id] = f
				return f
			},
		})
	}
	add("p0", 0)
	add("p2", 2)
	add("p4", 4)
	rq.Start(nil)

	rq.UpdatePriorities(4)
	if rq.Target() != 4 {
		t.Fatalf("Target() = %d, want 4", rq.Target())
	}
	futures["p0"].Resolve(nil)
	futures["p4"].Resolve(nil)
	futures["p2"].Resolve(nil)

	if got := fmt.Sprint(started); got != "[p0 p4 p2]" {
		t.Errorf("start order = %s, want [p0 p4 p2]", got)
	}
}

func TestResourceQueue_ParallelWindow(t *testing.T) {
	// one page after, one before: ceiling 1, factor 1
	rq := NewResourceQueue(common.QueueModeParallel, 1, 1, nil)
	rq.UpdatePriorities(2)
	rq.Start(nil)

	for page := range 5 {
		rq.AddOrUpdateTask(&Task[LoadContext]{
			ID:   fmt.Sprint(page),
			Data: LoadContext{PageIndex: page},
			Run:  func(context.Context) *Future { return NewFuture() },
		})
	}
	if rq.Len() != 3 || rq.TaskWithID("0") != nil || rq.TaskWithID("4") != nil {
		t.Errorf("queued %d tasks, want pages 1..3 only", rq.Len())
	}

	rq.UpdatePriorities(3)
	if rq.TaskWithID("1") != nil {
		t.Error("task for page 1 survived moving target to 3")
	}
	if rq.TaskWithID("2") == nil || rq.TaskWithID("3") == nil {
		t.Error("tasks for pages 2 and 3 must stay")
	}
}
