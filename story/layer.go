package story

import (
	"math"
	"time"

	"divina/common"
)

// TransitionSpec is a transition as declared for a layer.
type TransitionSpec struct {
	Type common.TransitionType
	// Direction of travel for slides and pushes.
	Direction common.ReadingDirection
	Duration  time.Duration
	// Discontinuous layer starts a new state of its pile.
	Discontinuous bool
	Animation     *Slice
}

// Layer wraps one child of a pile with the half transitions used when
// navigation crosses it. EntryForward and ExitForward are applied when moving
// forward onto the layer: the first to the layer itself, the second to the
// layer being left. EntryBackward and ExitBackward are applied when moving
// backward away from the layer: the first to the layer being returned to, the
// second to the layer itself.
type Layer struct {
	Content Node

	EntryForward  *Half
	ExitForward   *Half
	EntryBackward *Half
	ExitBackward  *Half

	discontinuous bool
	animations    []*Slice
	index         int
	pile          *LayerPile
	base          common.Point
	offset        common.Point
}

// NewLayer builds layer from declared transitions. Missing backward
// transition is derived by reversing the forward one. Zero durations are
// replaced by def.
func NewLayer(content Node, forward, backward *TransitionSpec, def time.Duration) *Layer {
	l := &Layer{Content: content}
	if forward != nil {
		l.discontinuous = forward.Discontinuous
		l.EntryForward, l.ExitForward = halves(forward, def, false)
		if forward.Animation != nil {
			l.animations = append(l.animations, forward.Animation)
		}
	}
	switch {
	case backward != nil:
		l.EntryBackward, l.ExitBackward = halves(backward, def, false)
		if backward.Animation != nil {
			l.animations = append(l.animations, backward.Animation)
		}
	case forward != nil:
		l.EntryBackward, l.ExitBackward = halves(forward, def, true)
	}
	return l
}

func halves(s *TransitionSpec, def time.Duration, reversed bool) (entry, exit *Half) {
	d := s.Duration
	if d <= 0 {
		d = def
	}
	mk := func(k Transition) *Half { return &Half{Kind: k, Duration: d} }

	dir := s.Direction
	if reversed {
		dir = opposite(dir)
	}
	switch s.Type {
	case common.TransitionTypeFade:
		if reversed {
			return cut, mk(FadeOut{})
		}
		return mk(FadeIn{}), mk(Remove{})
	case common.TransitionTypeSlideIn:
		if reversed {
			return cut, mk(SlideOut{Direction: dir})
		}
		return mk(SlideIn{Direction: dir}), mk(Remove{})
	case common.TransitionTypeSlideOut:
		if reversed {
			return mk(SlideIn{Direction: dir}), mk(Remove{})
		}
		return cut, mk(SlideOut{Direction: dir})
	case common.TransitionTypePush:
		return mk(SlideIn{Direction: dir}), mk(SlideOut{Direction: dir})
	case common.TransitionTypeAnimation:
		if reversed || s.Animation == nil {
			return cut, cut
		}
		return mk(Animation{Slice: s.Animation, Duration: d}), mk(Remove{})
	}
	return cut, cut
}

func (l *Layer) Index() int { return l.index }

// Discontinuous reports whether layer starts a new state group.
func (l *Layer) Discontinuous() bool { return l.discontinuous }

// Position returns layout position of layer content inside its pile.
func (l *Layer) Position() common.Point { return l.base }

func (l *Layer) place(base common.Point) {
	l.base = base
	l.updatePosition()
}

func (l *Layer) setOffset(off common.Point) {
	if l.offset == off {
		return
	}
	l.offset = off
	l.updatePosition()
}

func (l *Layer) updatePosition() {
	l.Content.Surface().SetPosition(common.Point{X: l.base.X + l.offset.X, Y: l.base.Y + l.offset.Y})
	for _, a := range l.animations {
		a.Surface().SetPosition(l.base)
	}
}

func (l *Layer) setVisible(v bool) {
	l.Content.Surface().SetVisibility(v)
}

func (l *Layer) setAlpha(a float64) {
	l.Content.Surface().SetAlpha(math.Max(0, math.Min(1, a)))
}
