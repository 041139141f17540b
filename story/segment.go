package story

// Segment is a part of a page made of layers sharing one coordinate space.
// Several discontinuous layers make segment stateful.
type Segment struct {
	LayerPile
}

func NewSegment(env *Env, name string, layers []*Layer) *Segment {
	s := &Segment{}
	s.init(env, name)
	regime := RegimeNone
	for _, l := range layers {
		if l.discontinuous {
			regime = RegimeLayer
			break
		}
	}
	s.setLayers(layers, regime)
	return s
}

// GoForward reveals the next layer group, false when there is none.
func (s *Segment) GoForward() bool {
	if s.state == nil {
		return false
	}
	return s.state.GoForward(nil)
}

// GoBackward hides the last revealed layer group, false when there is none.
func (s *Segment) GoBackward() bool {
	if s.state == nil {
		return false
	}
	return s.state.GoBackward(nil)
}
