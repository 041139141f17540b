package story

import (
	"fmt"
	"time"

	"divina/common"
)

// Transition is a half transition applied to one layer: either to the one
// appearing or to the one going away. Implemented by Cut, FadeIn, FadeOut,
// SlideIn, SlideOut, Remove and Animation.
type Transition interface {
	fmt.Stringer
	isTransition()
}

// Cut shows or hides layer immediately.
type Cut struct{}

// FadeIn raises layer opacity from 0 to 1.
type FadeIn struct{}

// FadeOut lowers layer opacity from 1 to 0.
type FadeOut struct{}

// SlideIn moves layer into place travelling in Direction.
type SlideIn struct{ Direction common.ReadingDirection }

// SlideOut moves layer away travelling in Direction.
type SlideOut struct{ Direction common.ReadingDirection }

// Remove keeps layer untouched until the whole change completes.
type Remove struct{}

// Animation plays Slice in place of the layer, layer appears when it ends.
type Animation struct {
	Slice    *Slice
	Duration time.Duration
}

func (Cut) isTransition()       {}
func (FadeIn) isTransition()    {}
func (FadeOut) isTransition()   {}
func (SlideIn) isTransition()   {}
func (SlideOut) isTransition()  {}
func (Remove) isTransition()    {}
func (Animation) isTransition() {}

func (Cut) String() string        { return "cut" }
func (FadeIn) String() string     { return "fade-in" }
func (FadeOut) String() string    { return "fade-out" }
func (t SlideIn) String() string  { return "slide-in " + t.Direction.String() }
func (t SlideOut) String() string { return "slide-out " + t.Direction.String() }
func (Remove) String() string     { return "remove" }
func (t Animation) String() string {
	if t.Slice == nil {
		return "animation"
	}
	return "animation " + t.Slice.Name()
}

// Half is a transition with its duration.
type Half struct {
	Kind     Transition
	Duration time.Duration
}

var cut = &Half{Kind: Cut{}}

// instant reports whether half completes without animation.
func (h *Half) instant() bool {
	switch h.Kind.(type) {
	case Cut, Remove:
		return true
	}
	return h.Duration <= 0
}

func opposite(d common.ReadingDirection) common.ReadingDirection {
	switch d {
	case common.ReadingDirectionLtr:
		return common.ReadingDirectionRtl
	case common.ReadingDirectionRtl:
		return common.ReadingDirectionLtr
	case common.ReadingDirectionTtb:
		return common.ReadingDirectionBtt
	default:
		return common.ReadingDirectionTtb
	}
}

// unit returns screen vector of travel in direction d.
func unit(d common.ReadingDirection) common.Point {
	switch d {
	case common.ReadingDirectionLtr:
		return common.Point{X: 1}
	case common.ReadingDirectionRtl:
		return common.Point{X: -1}
	case common.ReadingDirectionTtb:
		return common.Point{Y: 1}
	default:
		return common.Point{Y: -1}
	}
}

// LayerTransition runs one half transition on one layer.
type LayerTransition struct {
	layer    *Layer
	half     *Half
	entering bool
	percent  float64
}

func newLayerTransition(l *Layer, h *Half, entering bool) *LayerTransition {
	if h == nil {
		h = cut
	}
	return &LayerTransition{layer: l, half: h, entering: entering}
}

func (lt *LayerTransition) Layer() *Layer    { return lt.layer }
func (lt *LayerTransition) Kind() Transition { return lt.half.Kind }
func (lt *LayerTransition) Entering() bool   { return lt.entering }
func (lt *LayerTransition) Percent() float64 { return lt.percent }

func (lt *LayerTransition) duration() time.Duration {
	if lt.half.instant() {
		return 0
	}
	return lt.half.Duration
}

// progress converts time elapsed since change start into percent.
func (lt *LayerTransition) progress(elapsed time.Duration) float64 {
	d := lt.duration()
	if d <= 0 || elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(d)
}

func (lt *LayerTransition) begin() {
	if anim, ok := lt.half.Kind.(Animation); ok && anim.Slice != nil {
		anim.Slice.Surface().SetVisibility(true)
	}
	lt.apply(0)
}

func (lt *LayerTransition) apply(p float64) {
	lt.percent = p
	l := lt.layer
	switch k := lt.half.Kind.(type) {
	case Cut:
		l.setVisible(lt.entering)
	case FadeIn:
		l.setVisible(true)
		l.setAlpha(p)
	case FadeOut:
		l.setAlpha(1 - p)
	case SlideIn:
		l.setVisible(true)
		length, u := l.pile.box.Along(k.Direction), unit(k.Direction)
		l.setOffset(common.Point{X: -(1 - p) * length * u.X, Y: -(1 - p) * length * u.Y})
	case SlideOut:
		length, u := l.pile.box.Along(k.Direction), unit(k.Direction)
		l.setOffset(common.Point{X: p * length * u.X, Y: p * length * u.Y})
	case Animation:
		l.setVisible(!lt.entering)
	case Remove:
	}
}

func (lt *LayerTransition) finish() {
	lt.percent = 1
	lt.cleanup()
	l := lt.layer
	l.setVisible(lt.entering)
	if lt.entering {
		l.Content.FinalizeEntry()
	} else {
		l.Content.FinalizeExit()
	}
}

// revert puts layer back into the state it had before change started.
func (lt *LayerTransition) revert() {
	lt.percent = 0
	lt.cleanup()
	l := lt.layer
	l.setVisible(!lt.entering)
	if lt.entering {
		l.Content.FinalizeExit()
	}
}

func (lt *LayerTransition) cleanup() {
	if anim, ok := lt.half.Kind.(Animation); ok && anim.Slice != nil {
		anim.Slice.Surface().SetVisibility(false)
	}
	lt.layer.setAlpha(1)
	lt.layer.setOffset(common.Point{})
}
