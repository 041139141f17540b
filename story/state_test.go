package story

import (
	"testing"
	"time"

	"divina/common"
)

func fade(d time.Duration) *TransitionSpec {
	return &TransitionSpec{Type: common.TransitionTypeFade, Duration: d}
}

func newPagePile(r *testRig, second *TransitionSpec) *LayerPile {
	s0 := NewSlice(r.env, "s0", NoResource, square, common.FitContain)
	s1 := NewSlice(r.env, "s1", NoResource, square, common.FitContain)
	p := NewLayerPile(r.env, "pile", []*Layer{
		NewLayer(s0, nil, nil, r.env.TransitionDuration),
		NewLayer(s1, second, nil, r.env.TransitionDuration),
	}, RegimePage)
	p.Resize(square)
	return p
}

func TestStateHandler_FirstEntryIsCut(t *testing.T) {
	r := newTestRig(t, common.ReadingDirectionLtr)
	h := newPagePile(r, fade(300*time.Millisecond)).StateHandler()

	if h.Current() != -1 {
		t.Fatalf("Current() before entry = %d, want -1", h.Current())
	}
	if !h.GoToState(0, true, false, false, nil) {
		t.Fatal("GoToState(0) = false")
	}
	if h.IsUndergoingChanges() || h.Current() != 0 {
		t.Errorf("first entry should complete immediately, current = %d", h.Current())
	}
	if !r.props("s0").Visible || r.props("s1").Visible {
		t.Error("only first layer should be visible")
	}
	if h.GoToState(0, true, false, false, nil) {
		t.Error("GoToState to current state should do nothing")
	}
	if h.GoToState(2, true, false, false, nil) || h.GoToState(-1, false, false, false, nil) {
		t.Error("GoToState out of range should be refused")
	}
}

func TestStateHandler_ForceChangesToEndIsIdempotent(t *testing.T) {
	r := newTestRig(t, common.ReadingDirectionLtr)
	h := newPagePile(r, fade(300*time.Millisecond)).StateHandler()
	h.GoToState(0, true, true, false, nil)

	var ends []bool
	h.GoToState(1, true, false, false, func(committed bool) { ends = append(ends, committed) })
	r.tick(150 * time.Millisecond)

	if !h.IsUndergoingChanges() {
		t.Fatal("fade should still run")
	}
	if a := r.props("s1").Alpha; a != 0.5 {
		t.Errorf("entering alpha mid fade = %v, want 0.5", a)
	}
	if !r.props("s0").Visible {
		t.Error("exiting layer should stay until fade ends")
	}

	h.ForceChangesToEnd()
	h.ForceChangesToEnd()

	if len(ends) != 1 || !ends[0] {
		t.Errorf("end callbacks = %v, want single commit", ends)
	}
	if h.Current() != 1 || h.IsUndergoingChanges() {
		t.Errorf("current = %d, undergoing = %v", h.Current(), h.IsUndergoingChanges())
	}
	if p := r.props("s1"); !p.Visible || p.Alpha != 1 {
		t.Errorf("entering layer = %+v, want visible and opaque", p)
	}
	if r.props("s0").Visible {
		t.Error("exiting layer should be hidden")
	}
	if r.env.Sched.Active() != 0 {
		t.Errorf("active animations = %d, want 0", r.env.Sched.Active())
	}
}

func TestStateHandler_RunsToCompletion(t *testing.T) {
	r := newTestRig(t, common.ReadingDirectionLtr)
	h := newPagePile(r, fade(0)).StateHandler()
	h.GoToState(0, true, true, false, nil)

	h.GoToState(1, true, false, false, nil)
	// zero duration falls back to default
	r.tick(60 * time.Millisecond)
	if !h.IsUndergoingChanges() {
		t.Fatal("change finished before default duration")
	}
	r.tick(60 * time.Millisecond)
	if h.IsUndergoingChanges() || h.Current() != 1 {
		t.Errorf("change should be committed, current = %d", h.Current())
	}
}

func TestStateHandler_NewRequestForcesPrevious(t *testing.T) {
	r := newTestRig(t, common.ReadingDirectionLtr)
	h := newPagePile(r, fade(300*time.Millisecond)).StateHandler()
	h.GoToState(0, true, true, false, nil)

	committed := false
	h.GoToState(1, true, false, false, func(c bool) { committed = c })
	r.tick(100 * time.Millisecond)

	if !h.GoToState(0, false, false, false, nil) {
		t.Fatal("GoToState(0) = false")
	}
	if !committed {
		t.Error("change in flight should be committed first")
	}
	// backward fade is reversed: layer going away fades out over the one returning
	if !r.props("s0").Visible {
		t.Error("returning layer should appear at once")
	}
	r.tick(150 * time.Millisecond)
	if a := r.props("s1").Alpha; a != 0.5 {
		t.Errorf("exiting alpha = %v, want 0.5", a)
	}
	r.tick(150 * time.Millisecond)
	if h.Current() != 0 || r.props("s1").Visible {
		t.Error("backward change should complete and hide second layer")
	}
}

func TestStateHandler_Controlled(t *testing.T) {
	r := newTestRig(t, common.ReadingDirectionLtr)
	h := newPagePile(r, fade(300*time.Millisecond)).StateHandler()
	h.GoToState(0, true, true, false, nil)

	var ends []bool
	onEnd := func(c bool) { ends = append(ends, c) }

	h.GoToState(1, true, false, true, onEnd)
	if !h.IsControlled() {
		t.Fatal("change should be controlled")
	}
	h.GoToIntermediateState(0.3)
	r.tick(time.Second)
	if a := r.props("s1").Alpha; a != 0.3 {
		t.Errorf("alpha = %v, want 0.3 regardless of time", a)
	}
	h.EndControlled()
	if h.Current() != 0 || r.props("s1").Visible || !r.props("s0").Visible {
		t.Error("change below half way should be cancelled")
	}

	h.GoToState(1, true, false, true, onEnd)
	h.GoToIntermediateState(0.7)
	h.EndControlled()
	if h.Current() != 1 {
		t.Errorf("current = %d, want 1", h.Current())
	}
	if len(ends) != 2 || ends[0] || !ends[1] {
		t.Errorf("end callbacks = %v, want [false true]", ends)
	}
}

func TestStateHandler_Push(t *testing.T) {
	r := newTestRig(t, common.ReadingDirectionLtr)
	spec := &TransitionSpec{Type: common.TransitionTypePush, Direction: common.ReadingDirectionLtr, Duration: 100 * time.Millisecond}
	h := newPagePile(r, spec).StateHandler()
	h.GoToState(0, true, true, false, nil)

	h.GoToState(1, true, false, false, nil)
	r.tick(50 * time.Millisecond)
	if pos := r.props("s1").Position; pos != (common.Point{X: -50}) {
		t.Errorf("entering position = %v, want {-50 0}", pos)
	}
	if pos := r.props("s0").Position; pos != (common.Point{X: 50}) {
		t.Errorf("exiting position = %v, want {50 0}", pos)
	}
	r.tick(50 * time.Millisecond)
	if pos := r.props("s1").Position; pos != (common.Point{}) {
		t.Errorf("entering position after push = %v, want origin", pos)
	}
	if r.props("s0").Visible {
		t.Error("exiting layer should be hidden")
	}
}

func TestStateHandler_LayerLike(t *testing.T) {
	r := newTestRig(t, common.ReadingDirectionLtr)
	var layers []*Layer
	for i, spec := range []*TransitionSpec{
		nil,
		nil,
		{Type: common.TransitionTypeFade, Duration: 200 * time.Millisecond, Discontinuous: true},
	} {
		s := NewSlice(r.env, "s"+string(rune('0'+i)), NoResource, square, common.FitContain)
		layers = append(layers, NewLayer(s, spec, nil, r.env.TransitionDuration))
	}
	seg := NewSegment(r.env, "seg", layers)
	seg.Resize(square)
	h := seg.StateHandler()
	if h == nil || h.Len() != 2 {
		t.Fatalf("states = %v, want two groups", h)
	}

	seg.SetupForEntry(true)
	if h.Current() != 0 || !r.props("s0").Visible || !r.props("s1").Visible || r.props("s2").Visible {
		t.Fatal("first group should be shown on forward entry")
	}

	if !seg.GoForward() {
		t.Fatal("GoForward() = false")
	}
	r.tick(100 * time.Millisecond)
	if a := r.props("s2").Alpha; a != 0.5 {
		t.Errorf("revealed layer alpha = %v, want 0.5", a)
	}
	r.tick(100 * time.Millisecond)
	if h.Current() != 1 || !r.props("s1").Visible {
		t.Error("states should accumulate")
	}
	if seg.GoForward() {
		t.Error("GoForward() past last state = true")
	}

	if !seg.GoBackward() {
		t.Fatal("GoBackward() = false")
	}
	r.tick(100 * time.Millisecond)
	if a := r.props("s2").Alpha; a != 0.5 {
		t.Errorf("hidden layer alpha = %v, want 0.5", a)
	}
	r.tick(100 * time.Millisecond)
	if h.Current() != 0 || r.props("s2").Visible {
		t.Error("last group should be hidden")
	}
	if seg.GoBackward() {
		t.Error("GoBackward() before first state = true")
	}

	seg.SetupForEntry(false)
	if h.Current() != 1 || !r.props("s2").Visible {
		t.Error("backward entry should show every group")
	}
}
