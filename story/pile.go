package story

import (
	"math"

	"go.uber.org/zap"

	"divina/common"
	"divina/render"
	"divina/resource"
)

// Regime selects how a pile moves between its states.
type Regime int

const (
	// RegimeNone shows every layer at once.
	RegimeNone Regime = iota
	// RegimePage shows exactly one layer per state.
	RegimePage
	// RegimeLayer accumulates groups of layers, state s shows groups 0..s.
	RegimeLayer
)

// LayerPile is an ordered stack of layers sharing one coordinate space.
type LayerPile struct {
	env       *Env
	log       *zap.Logger
	name      string
	surface   render.Surface
	container render.Surface
	layers    []*Layer
	state     *StateHandler
	parent    *LayerPile

	status common.LoadStatus
	box    common.Size
	size   common.Size

	onStatus func(common.LoadStatus)
	onLayout func()
	onState  func(from, to int)
}

func (p *LayerPile) init(env *Env, name string) {
	p.env = env
	p.log = env.logger().With(zap.String("node", name))
	p.name = name
	p.surface = env.Factory.NewSurface(name)
	p.container = p.surface
}

// NewLayerPile creates pile over layers using regime for discrete navigation.
func NewLayerPile(env *Env, name string, layers []*Layer, regime Regime) *LayerPile {
	p := &LayerPile{}
	p.init(env, name)
	p.setLayers(layers, regime)
	return p
}

func (p *LayerPile) setLayers(layers []*Layer, regime Regime) {
	for i, l := range layers {
		l.index, l.pile = i, p
		l.Content.setParent(p)
		p.container.AddChildAtIndex(l.Content.Surface(), math.MaxInt)
		for _, a := range l.animations {
			a.Surface().SetVisibility(false)
			p.container.AddChildAtIndex(a.Surface(), math.MaxInt)
		}
		// stateful piles reveal layers as states are entered
		l.setVisible(regime == RegimeNone)
	}
	p.layers = layers
	if regime != RegimeNone && len(layers) > 0 {
		p.state = newStateHandler(p, regime)
	}
}

func (p *LayerPile) Name() string            { return p.name }
func (p *LayerPile) Surface() render.Surface { return p.surface }
func (p *LayerPile) Size() common.Size       { return p.size }
func (p *LayerPile) setParent(l *LayerPile)  { p.parent = l }

func (p *LayerPile) Layers() []*Layer { return p.layers }

// StateHandler returns nil for piles showing all layers at once.
func (p *LayerPile) StateHandler() *StateHandler { return p.state }

// OnStateChange sets callback invoked after every committed state change.
func (p *LayerPile) OnStateChange(fn func(from, to int)) { p.onState = fn }

// OnStatusChange sets callback invoked when aggregated load status changes.
func (p *LayerPile) OnStatusChange(fn func(common.LoadStatus)) { p.onStatus = fn }

func (p *LayerPile) activeIndices() []int {
	if p.state != nil {
		return p.state.activeIndices()
	}
	idx := make([]int, len(p.layers))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// ActiveLayers returns layers shown in current state and, during a change,
// in its target state.
func (p *LayerPile) ActiveLayers() []*Layer {
	idx := p.activeIndices()
	res := make([]*Layer, 0, len(idx))
	for _, i := range idx {
		res = append(res, p.layers[i])
	}
	return res
}

// Resize lays out every layer, not just active ones, so that entering layers
// are already in place. Layers are centered in pile.
func (p *LayerPile) Resize(box common.Size) {
	p.box = box
	var size common.Size
	for _, l := range p.layers {
		l.Content.Resize(box)
		for _, a := range l.animations {
			a.Resize(box)
		}
		s := l.Content.Size()
		size.Width = math.Max(size.Width, s.Width)
		size.Height = math.Max(size.Height, s.Height)
	}
	p.size = size
	p.surface.Resize(size)
	for _, l := range p.layers {
		s := l.Content.Size()
		l.place(common.Point{X: (size.Width - s.Width) / 2, Y: (size.Height - s.Height) / 2})
	}
}

func (p *LayerPile) SetupForEntry(forward bool) {
	if p.state != nil {
		p.state.setupForEntry(forward)
	}
	for _, l := range p.ActiveLayers() {
		l.Content.SetupForEntry(forward)
	}
}

func (p *LayerPile) FinalizeEntry() {
	for _, l := range p.ActiveLayers() {
		l.Content.FinalizeEntry()
	}
}

func (p *LayerPile) FinalizeExit() {
	if p.state != nil {
		p.state.ForceChangesToEnd()
	}
	for _, l := range p.ActiveLayers() {
		l.Content.FinalizeExit()
	}
}

// ResourceRequests covers active layers. Stateful layer piles also ask for
// the group revealed next, so that it is ready when revealed.
func (p *LayerPile) ResourceRequests() []resource.Request {
	idx := p.activeIndices()
	if p.state != nil {
		idx = append(idx, p.state.upcoming()...)
	}
	var reqs []resource.Request
	for _, i := range idx {
		l := p.layers[i]
		reqs = append(reqs, l.Content.ResourceRequests()...)
		for _, a := range l.animations {
			reqs = append(reqs, a.ResourceRequests()...)
		}
	}
	return reqs
}

// DestroyResourcesIfPossible goes through every layer: layers revealed earlier
// may still hold textures after state was reset.
func (p *LayerPile) DestroyResourcesIfPossible() {
	for _, l := range p.layers {
		l.Content.DestroyResourcesIfPossible()
		for _, a := range l.animations {
			a.DestroyResourcesIfPossible()
		}
	}
}

func (p *LayerPile) LoadStatus() common.LoadStatus { return p.status }

// UpdateLoadStatus recomputes aggregated status of active layers and
// propagates change upwards.
func (p *LayerPile) UpdateLoadStatus() {
	statuses := make([]common.LoadStatus, 0, len(p.layers))
	for _, l := range p.ActiveLayers() {
		statuses = append(statuses, l.Content.LoadStatus())
	}
	status := Aggregate(statuses)
	if status == p.status {
		return
	}
	p.status = status
	if p.onStatus != nil {
		p.onStatus(status)
	}
	if p.parent != nil {
		p.parent.UpdateLoadStatus()
	}
}

// Aggregate combines children statuses: partial wins over loading, loaded
// requires every child to be loaded.
func Aggregate(statuses []common.LoadStatus) common.LoadStatus {
	if len(statuses) == 0 {
		return common.LoadStatusUnloaded
	}
	var loaded, loading, partial int
	for _, s := range statuses {
		switch s {
		case common.LoadStatusLoaded:
			loaded++
		case common.LoadStatusLoading:
			loading++
		case common.LoadStatusPartial:
			partial++
		}
	}
	switch {
	case partial > 0 || (loaded > 0 && loaded < len(statuses)):
		return common.LoadStatusPartial
	case loading > 0:
		return common.LoadStatusLoading
	case loaded == len(statuses):
		return common.LoadStatusLoaded
	}
	return common.LoadStatusUnloaded
}

// layoutChanged is called when natural size of some descendant became known.
func (p *LayerPile) layoutChanged() {
	switch {
	case p.onLayout != nil:
		p.onLayout()
	case p.parent != nil:
		p.parent.layoutChanged()
	case !p.box.IsEmpty():
		p.Resize(p.box)
	}
}

func (p *LayerPile) stateChanged(from, to int) {
	p.log.Debug("State changed", zap.Int("from", from), zap.Int("to", to))
	p.UpdateLoadStatus()
	if p.onState != nil {
		p.onState(from, to)
	}
}
