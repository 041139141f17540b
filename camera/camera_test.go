package camera

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"divina/common"
	"divina/config"
	"divina/frame"
)

const tolerance = 1e-6

func testConfig(dir common.ReadingDirection) Config {
	return Config{
		Direction:              dir,
		AllowsZoom:             true,
		MaxZoom:                3,
		ZoomSensitivity:        0.01,
		SnapSpeed:              2,
		KineticTimeConstant:    325 * time.Millisecond,
		KineticAmplitude:       200,
		KineticMinDisplacement: 0.5,
		StickyThreshold:        0.5,
	}
}

type rig struct {
	clock *frame.ManualClock
	sched *frame.Scheduler
	cam   *Camera
}

func newRig(t *testing.T, cfg Config, viewport, content common.Size, snaps ...SnapTarget) *rig {
	t.Helper()
	clock := frame.NewManualClock(time.Unix(0, 0))
	sched := frame.NewScheduler(clock, zaptest.NewLogger(t))
	cam := New(cfg, sched, nil, zaptest.NewLogger(t))
	cam.SetBounds(viewport, content, snaps)
	return &rig{clock: clock, sched: sched, cam: cam}
}

// settle ticks frames until camera stops or time limit is reached.
func (r *rig) settle(limit time.Duration) {
	for elapsed := time.Duration(0); elapsed < limit && r.cam.IsAnimating(); elapsed += 16 * time.Millisecond {
		r.clock.Advance(16 * time.Millisecond)
		r.sched.Tick()
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

var (
	square = common.Size{Width: 100, Height: 100}
	tall   = common.Size{Width: 100, Height: 400}
	wide   = common.Size{Width: 300, Height: 100}
)

func TestCamera_ProgressRoundTrip(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall)

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		r.cam.SetProgress(p)
		got, ok := r.cam.Progress()
		if !ok || !near(got, p) {
			t.Errorf("Progress() after SetProgress(%v) = %v, %v", p, got, ok)
		}
	}
}

func TestCamera_ContentFits(t *testing.T) {
	tests := []struct {
		name    string
		content common.Size
	}{
		{"smaller", common.Size{Width: 100, Height: 80}},
		{"exact", square},
		{"empty", common.Size{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tt.content)
			if _, ok := r.cam.Progress(); ok {
				t.Error("Progress() reported for content which fits")
			}
			if r.cam.MoveToNextSnapPoint() {
				t.Error("MoveToNextSnapPoint() moved content which fits")
			}
			if r.cam.PaginationStep() != 0 {
				t.Errorf("PaginationStep() = %v, want 0", r.cam.PaginationStep())
			}
		})
	}

	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, common.Size{Width: 100, Height: 80})
	if off := r.cam.Offset(); !near(off.Y, 10) || !near(off.X, 0) {
		t.Errorf("Offset() = %+v, want centered {0 10}", off)
	}
}

func TestCamera_SnapMonotonicity(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall,
		SnapTarget{Pos: 0, Anchor: common.ViewportAnchorStart},
		SnapTarget{Pos: 100, Anchor: common.ViewportAnchorStart},
		SnapTarget{Pos: 120, Anchor: common.ViewportAnchorCenter},
		SnapTarget{Pos: 150, Anchor: common.ViewportAnchorCenter},
		SnapTarget{Pos: 400, Anchor: common.ViewportAnchorEnd},
	)

	got := r.cam.SnapPoints()
	want := []float64{0, 1.0 / 3, 1}
	if len(got) != len(want) {
		t.Fatalf("SnapPoints() = %v, want %v", got, want)
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("SnapPoints()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("SnapPoints() not increasing at %d: %v", i, got)
		}
	}
}

func TestCamera_NextSnapPoint(t *testing.T) {
	// snap at progress 0.2 is closer than one pagination step (1/3)
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall,
		SnapTarget{Pos: 110, Anchor: common.ViewportAnchorCenter})

	if !r.cam.MoveToNextSnapPoint() {
		t.Fatal("MoveToNextSnapPoint() = false at page start")
	}
	r.settle(5 * time.Second)
	if p, _ := r.cam.Progress(); !near(p, 0.2) {
		t.Errorf("Progress() = %v, want 0.2", p)
	}

	// no snap points left: one viewport at a time
	r.cam.MoveToNextSnapPoint()
	r.settle(5 * time.Second)
	if p, _ := r.cam.Progress(); !near(p, 0.2+1.0/3) {
		t.Errorf("Progress() = %v, want %v", p, 0.2+1.0/3)
	}

	r.cam.SetProgress(1)
	if r.cam.MoveToNextSnapPoint() {
		t.Error("MoveToNextSnapPoint() = true at page end")
	}
	if !r.cam.MoveToPreviousSnapPoint() {
		t.Error("MoveToPreviousSnapPoint() = false at page end")
	}
}

func TestCamera_RepeatCompletes(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall)

	r.cam.MoveToNextSnapPoint()
	r.clock.Advance(50 * time.Millisecond)
	r.sched.Tick()
	if !r.cam.IsAnimating() {
		t.Fatal("camera stopped too early")
	}

	r.cam.MoveToNextSnapPoint()
	if r.cam.IsAnimating() {
		t.Error("repeated call did not complete movement")
	}
	if p, _ := r.cam.Progress(); !near(p, 1.0/3) {
		t.Errorf("Progress() = %v, want 1/3", p)
	}
	if r.sched.Active() != 0 {
		t.Errorf("scheduler has %d animations, want 0", r.sched.Active())
	}
}

func TestCamera_OppositeRedirects(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall)
	r.cam.SetProgress(0.5)

	r.cam.MoveToNextSnapPoint()
	r.clock.Advance(50 * time.Millisecond)
	r.sched.Tick()
	mid, _ := r.cam.Progress()
	if mid <= 0.5 {
		t.Fatalf("Progress() = %v, want moved forward", mid)
	}

	r.cam.MoveToPreviousSnapPoint()
	r.settle(5 * time.Second)
	if p, _ := r.cam.Progress(); !near(p, mid-1.0/3) {
		t.Errorf("Progress() = %v, want %v", p, mid-1.0/3)
	}
}

func TestCamera_KineticStops(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, common.Size{Width: 100, Height: 2000})

	start := r.cam.Position()
	r.cam.Release(1)
	if !r.cam.IsAnimating() {
		t.Fatal("Release() did not start kinetic scroll")
	}
	r.settle(10 * time.Second)

	if r.cam.IsAnimating() {
		t.Fatal("kinetic scroll did not stop")
	}
	if got := r.cam.Position(); !near(got, start+200) {
		t.Errorf("Position() = %v, want %v", got, start+200)
	}
	if got := r.cam.Position() * subpixel; got != math.Round(got) {
		t.Errorf("Position() = %v is off sub-pixel grid", r.cam.Position())
	}
}

func TestCamera_KineticClampedAtEnd(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall)
	r.cam.SetProgress(0.9)
	r.cam.Release(2)
	r.settle(10 * time.Second)
	if !r.cam.AtEnd() {
		t.Errorf("Position() = %v, want end bound", r.cam.Position())
	}
}

func TestCamera_StickyPagination(t *testing.T) {
	cfg := testConfig(common.ReadingDirectionTtb)
	cfg.Sticky = true
	r := newRig(t, cfg, square, tall)

	// 40% of viewport reverts
	r.cam.StartDrag()
	r.cam.MoveBy(40, 0)
	r.cam.Release(0)
	r.settle(5 * time.Second)
	if p, _ := r.cam.Progress(); !near(p, 0) {
		t.Errorf("Progress() after short drag = %v, want 0", p)
	}

	// 60% of viewport moves one step
	r.cam.StartDrag()
	r.cam.MoveBy(60, 0)
	if !r.cam.AttemptStickyStep() {
		t.Fatal("AttemptStickyStep() = false after drag")
	}
	r.settle(5 * time.Second)
	if p, _ := r.cam.Progress(); !near(p, 1.0/3) {
		t.Errorf("Progress() after long drag = %v, want 1/3", p)
	}

	if r.cam.AttemptStickyStep() {
		t.Error("AttemptStickyStep() = true without drag")
	}
}

func TestCamera_StickyRevertFromBetweenSnaps(t *testing.T) {
	cfg := testConfig(common.ReadingDirectionTtb)
	cfg.Sticky = true
	snaps := []SnapTarget{
		{Pos: 0, Anchor: common.ViewportAnchorStart},
		{Pos: 100, Anchor: common.ViewportAnchorStart},
		{Pos: 200, Anchor: common.ViewportAnchorStart},
		{Pos: 300, Anchor: common.ViewportAnchorStart},
	}

	tests := []struct {
		name  string
		start float64
		drag  float64
		want  float64
	}{
		{"short drag reverts to nearest snap", 0.1, 40, 0},
		{"short drag back reverts to nearest snap", 0.3, -40, 1.0 / 3},
		{"long drag steps from nearest snap", 0.3, 60, 2.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, cfg, square, tall, snaps...)
			r.cam.SetProgress(tt.start)
			r.cam.StartDrag()
			r.cam.MoveBy(tt.drag, 0)
			r.cam.Release(0)
			r.settle(5 * time.Second)
			if p, _ := r.cam.Progress(); !near(p, tt.want) {
				t.Errorf("Progress() = %v, want %v", p, tt.want)
			}
		})
	}
}

func TestCamera_StickyRevertWithoutSnaps(t *testing.T) {
	cfg := testConfig(common.ReadingDirectionTtb)
	cfg.Sticky = true
	r := newRig(t, cfg, square, tall)

	r.cam.SetProgress(0.6)
	r.cam.StartDrag()
	r.cam.MoveBy(-30, 0)
	r.cam.Release(0)
	r.settle(5 * time.Second)
	if p, _ := r.cam.Progress(); !near(p, 2.0/3) {
		t.Errorf("Progress() = %v, want pagination point 2/3", p)
	}
}

func TestCamera_MoveByLeftover(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall)

	if rest := r.cam.MoveBy(-30, 0); !near(rest, -30) {
		t.Errorf("MoveBy(-30) at start = %v, want -30", rest)
	}
	if rest := r.cam.MoveBy(250, 0); !near(rest, 0) {
		t.Errorf("MoveBy(250) = %v, want 0", rest)
	}
	if rest := r.cam.MoveBy(100, 0); !near(rest, 50) {
		t.Errorf("MoveBy(100) near end = %v, want 50", rest)
	}
	if !r.cam.AtEnd() || r.cam.AtStart() {
		t.Error("camera should be at end")
	}
}

func TestCamera_ZoomKeepsTouchPoint(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionLtr), square, wide)
	touch := common.Point{X: 80, Y: 50}

	// content point under touch before zoom
	before := r.cam.Offset()
	cx, cy := touch.X-before.X, touch.Y-before.Y

	r.cam.ZoomAt(touch, 2)
	after := r.cam.Offset()
	if !near(after.X+cx*2, touch.X) || !near(after.Y+cy*2, touch.Y) {
		t.Errorf("touch point moved: offset %+v, content point (%v, %v)", after, cx, cy)
	}
	if r.cam.Zoom() != 2 {
		t.Errorf("Zoom() = %v, want 2", r.cam.Zoom())
	}

	r.cam.ToggleZoom(touch)
	if r.cam.Zoom() != 1 {
		t.Errorf("ToggleZoom() from 2 = %v, want 1", r.cam.Zoom())
	}
	r.cam.ToggleZoom(touch)
	if r.cam.Zoom() != 3 {
		t.Errorf("ToggleZoom() from 1 = %v, want 3", r.cam.Zoom())
	}
}

func TestCamera_ZoomLimits(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionLtr), square, wide)
	center := common.Point{X: 50, Y: 50}

	r.cam.ZoomBy(center, 10, 0)
	if r.cam.Zoom() != 3 {
		t.Errorf("Zoom() = %v, want clamped 3", r.cam.Zoom())
	}
	r.cam.ZoomBy(center, 0, 1000)
	if r.cam.Zoom() != 1 {
		t.Errorf("Zoom() = %v, want clamped 1", r.cam.Zoom())
	}

	cfg := testConfig(common.ReadingDirectionLtr)
	cfg.AllowsZoom = false
	r = newRig(t, cfg, square, wide)
	r.cam.ToggleZoom(center)
	if r.cam.Zoom() != 1 {
		t.Error("zoom changed while not allowed")
	}
}

func TestCamera_ZoomAtCenterKeepsProgress(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionLtr), square, wide)
	r.cam.SetProgress(0.5)

	r.cam.ZoomAt(common.Point{X: 50, Y: 50}, 2)
	if p, _ := r.cam.Progress(); !near(p, 0.5) {
		t.Errorf("Progress() after zoom at center = %v, want 0.5", p)
	}
}

func TestCamera_ReversedOffset(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionRtl), square, wide)

	// reading starts at the right edge of content
	if off := r.cam.Offset(); !near(off.X, -200) {
		t.Errorf("Offset().X at start = %v, want -200", off.X)
	}
	r.cam.SetProgress(1)
	if off := r.cam.Offset(); !near(off.X, 0) {
		t.Errorf("Offset().X at end = %v, want 0", off.X)
	}
}

func TestCamera_ResizeKeepsProgress(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall)
	r.cam.SetProgress(0.75)

	r.cam.SetBounds(common.Size{Width: 200, Height: 200}, common.Size{Width: 200, Height: 800}, nil)
	if p, _ := r.cam.Progress(); !near(p, 0.75) {
		t.Errorf("Progress() after resize = %v, want 0.75", p)
	}
}

func TestCamera_ZoomKeepsProgress(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, tall)
	r.cam.SetProgress(0.5)
	before := r.cam.Offset()

	r.cam.ZoomAt(common.Point{X: 50, Y: 10}, 2)
	if p, _ := r.cam.Progress(); !near(p, 0.5) {
		t.Errorf("Progress() after zoom at edge = %v, want 0.5", p)
	}
	if !near(r.cam.Center(), 200) {
		t.Errorf("Center() after zoom = %v, want 200", r.cam.Center())
	}

	r.cam.ZoomAt(common.Point{X: 50, Y: 10}, 1)
	if p, _ := r.cam.Progress(); !near(p, 0.5) {
		t.Errorf("Progress() after zoom out = %v, want 0.5", p)
	}
	if after := r.cam.Offset(); !near(after.X, before.X) || !near(after.Y, before.Y) {
		t.Errorf("Offset() after zoom out = %+v, want %+v", after, before)
	}
}

func TestCamera_ProgressSetBeforeOverflow(t *testing.T) {
	r := newRig(t, testConfig(common.ReadingDirectionTtb), square, common.Size{})
	r.cam.SetProgress(1)
	if _, ok := r.cam.Progress(); ok {
		t.Fatal("Progress() should not apply while content is unknown")
	}

	r.cam.SetBounds(square, tall, nil)
	if p, ok := r.cam.Progress(); !ok || !near(p, 1) {
		t.Errorf("Progress() once content overflows = %v, %v, want 1", p, ok)
	}
}

func TestNewConfig(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Reader.Navigation.Overflow = common.OverflowPaginated

	c := NewConfig(&cfg.Reader.Navigation, &cfg.Reader.Camera)
	if !c.Sticky {
		t.Error("Sticky = false for paginated sticky overflow")
	}
	if c.MaxZoom != cfg.Reader.Camera.MaxZoom || c.Direction != cfg.Reader.Navigation.Direction {
		t.Errorf("NewConfig() = %+v", c)
	}
}
