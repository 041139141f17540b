package story

import (
	"math"
	"time"

	"divina/common"
	"divina/frame"
	"divina/render"
	"divina/resource"
)

// NoResource is used for slices without content.
const NoResource = -1

// Slice is the smallest positionable visual unit: one resource shown on one
// surface.
type Slice struct {
	env     *Env
	name    string
	surface render.Surface
	id      int
	natural common.Size
	fit     common.Fit
	size    common.Size
	status  common.LoadStatus
	failed  bool
	parent  *LayerPile
	spin    *spinner
}

func NewSlice(env *Env, name string, id int, natural common.Size, fit common.Fit) *Slice {
	return &Slice{
		env:     env,
		name:    name,
		surface: env.Factory.NewSurface(name),
		id:      id,
		natural: natural,
		fit:     fit,
	}
}

func (s *Slice) Name() string { return s.name }
func (s *Slice) Surface() render.Surface { return s.surface }
func (s *Slice) Size() common.Size { return s.size }
func (s *Slice) LoadStatus() common.LoadStatus { return s.status }
func (s *Slice) setParent(p *LayerPile) { s.parent = p }

// ResourceID returns id of the resource shown by slice.
func (s *Slice) ResourceID() int {
	return s.id
}

// Failed reports whether slice shows its empty state after load failure.
func (s *Slice) Failed() bool {
	return s.failed
}

func (s *Slice) Resize(box common.Size) {
	if s.natural.IsEmpty() {
		s.size = box
	} else {
		s.size = s.natural.Scale(common.FitScale(s.natural, box, s.fit))
	}
	s.surface.Resize(s.size)
	if s.spin != nil {
		s.spin.center(s.size)
	}
}

func (s *Slice) SetupForEntry(bool) {}
func (s *Slice) FinalizeEntry() {}
func (s *Slice) FinalizeExit() {}

func (s *Slice) ResourceRequests() []resource.Request {
	if s.id == NoResource {
		return nil
	}
	return []resource.Request{{Consumer: s, IDs: []int{s.id}}}
}

// DestroyResourcesIfPossible drops texture and lets manager release the
// resource unless other slices still use it.
func (s *Slice) DestroyResourcesIfPossible() {
	if s.id == NoResource || !s.status.IsActive() {
		return
	}
	s.stopSpinner()
	s.surface.SetTexture(nil)
	s.setStatus(common.LoadStatusUnloaded)
	s.env.Resources.DestroyIfPossible(s.id)
}

func (s *Slice) setStatus(status common.LoadStatus) {
	if s.status == status {
		return
	}
	s.status = status
	if s.parent != nil {
		s.parent.UpdateLoadStatus()
	}
}

// TextureLoading implements resource.Consumer.
func (s *Slice) TextureLoading(int) {
	s.startSpinner()
	s.setStatus(common.LoadStatusLoading)
}

// SetTexture implements resource.Consumer.
func (s *Slice) SetTexture(_ int, tex resource.Texture, status common.LoadStatus) {
	s.stopSpinner()
	s.failed = false
	s.surface.SetTexture(tex)
	if s.natural.IsEmpty() && tex != nil {
		if b := tex.Bounds(); !b.Empty() {
			s.natural = common.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
			if s.parent != nil {
				s.parent.layoutChanged()
			}
		}
	}
	s.setStatus(status)
}

// TextureFailed implements resource.Consumer.
func (s *Slice) TextureFailed(int) {
	s.stopSpinner()
	s.failed = true
	s.surface.SetTexture(nil)
	s.setStatus(common.LoadStatusUnloaded)
}

// CancelTexture implements resource.Consumer.
func (s *Slice) CancelTexture(int) {
	s.stopSpinner()
	s.surface.SetTexture(nil)
	s.setStatus(common.LoadStatusUnloaded)
}

// ResourceStatus implements resource.Consumer.
func (s *Slice) ResourceStatus(int) common.LoadStatus {
	return s.status
}

func (s *Slice) startSpinner() {
	if s.env.Sched == nil {
		return
	}
	if s.spin == nil {
		s.spin = &spinner{surface: s.env.Factory.NewSurface(s.name + "/spinner")}
		s.spin.surface.Resize(common.Size{Width: spinnerSize, Height: spinnerSize})
		s.surface.AddChildAtIndex(s.spin.surface, math.MaxInt)
		s.spin.center(s.size)
	}
	s.spin.start(s.env.Sched, s.name)
}

func (s *Slice) stopSpinner() {
	if s.spin != nil {
		s.spin.stop(s.env.Sched)
	}
}

const (
	spinnerSize  = 48
	// radians per second
	spinnerSpeed = 2 * math.Pi
)

// spinner is the loading indicator rotating while slice waits for texture.
type spinner struct {
	surface render.Surface
	handle  frame.Handle
	angle   float64
	last    time.Time
}

func (sp *spinner) center(size common.Size) {
	sp.surface.SetPosition(common.Point{X: (size.Width - spinnerSize) / 2, Y: (size.Height - spinnerSize) / 2})
}

func (sp *spinner) start(sched *frame.Scheduler, name string) {
	if sp.handle != 0 {
		return
	}
	sp.surface.SetVisibility(true)
	sp.last = sched.Now()
	sp.handle = sched.Add("spinner "+name, func(now time.Time) bool {
		sp.angle = math.Mod(sp.angle+spinnerSpeed*now.Sub(sp.last).Seconds(), 2*math.Pi)
		sp.last = now
		sp.surface.SetRotation(sp.angle)
		return true
	})
}

func (sp *spinner) stop(sched *frame.Scheduler) {
	if sp.handle == 0 {
		return
	}
	sched.Remove(sp.handle)
	sp.handle = 0
	sp.surface.SetVisibility(false)
}
