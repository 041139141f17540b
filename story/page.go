package story

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"divina/camera"
	"divina/common"
	"divina/render"
)

// SnapPoint is a snap point declared in natural pixels of a segment.
type SnapPoint struct {
	Segment int
	Anchor  common.ViewportAnchor
	X, Y    float64
}

// Page is the unit of page navigation: segments laid out one after another
// along reading axis and viewed through OverflowHandler.
type Page struct {
	LayerPile

	index    int
	spread   int
	viewport common.Size
	snaps    []SnapPoint
	natural  []common.Size
	starts   []float64
	content  common.Size
	overflow *OverflowHandler
}

// NewPage creates page. Spread is the number of segments sharing viewport
// along reading axis: 1 for single pages, 2 for double pages and 0 when
// segments are stitched and scroll freely. Natural sizes of segments are used
// to resolve snap points.
func NewPage(env *Env, index int, segments []*Segment, natural []common.Size, spread int, snaps []SnapPoint) *Page {
	p := &Page{index: index, spread: spread, snaps: snaps, natural: natural}
	p.init(env, pageName(index))
	p.container = env.Factory.NewSurface(p.name + "/content")
	p.surface.AddChildAtIndex(p.container, 0)

	layers := make([]*Layer, len(segments))
	for i, s := range segments {
		layers[i] = NewLayer(s, nil, nil, 0)
	}
	p.setLayers(layers, RegimeNone)
	p.onLayout = func() { p.Resize(p.viewport) }
	p.overflow = newOverflowHandler(p, env)
	return p
}

func pageName(index int) string {
	return "page " + strconv.Itoa(index)
}

func (p *Page) Index() int { return p.index }

// Size of page is the viewport.
func (p *Page) Size() common.Size { return p.viewport }

// ContentSize returns size of laid out segments at zoom 1.
func (p *Page) ContentSize() common.Size { return p.content }

func (p *Page) Overflow() *OverflowHandler { return p.overflow }

// Camera is a shortcut for Overflow().Camera().
func (p *Page) Camera() *camera.Camera { return p.overflow.cam }

// Segments returns page segments in reading order.
func (p *Page) Segments() []*Segment {
	res := make([]*Segment, len(p.layers))
	for i, l := range p.layers {
		res[i] = l.Content.(*Segment)
	}
	return res
}

func (p *Page) segmentBox(viewport common.Size) common.Size {
	dir := p.env.Direction
	switch {
	case p.spread > 1 && dir.IsHorizontal():
		return common.Size{Width: viewport.Width / float64(p.spread), Height: viewport.Height}
	case p.spread > 1:
		return common.Size{Width: viewport.Width, Height: viewport.Height / float64(p.spread)}
	}
	return viewport
}

// Resize lays segments out along reading axis and updates camera bounds.
func (p *Page) Resize(viewport common.Size) {
	p.viewport, p.box = viewport, viewport
	p.surface.Resize(viewport)

	dir := p.env.Direction
	box := p.segmentBox(viewport)
	var along, across float64
	p.starts = p.starts[:0]
	for _, l := range p.layers {
		l.Content.Resize(box)
		s := l.Content.Size()
		p.starts = append(p.starts, along)
		along += s.Along(dir)
		across = math.Max(across, s.Across(dir))
	}
	if dir.IsHorizontal() {
		p.content = common.Size{Width: along, Height: across}
	} else {
		p.content = common.Size{Width: across, Height: along}
	}
	p.size = p.content
	p.container.Resize(p.content)

	for i, l := range p.layers {
		s := l.Content.Size()
		a := p.starts[i]
		if dir.IsReversed() {
			a = along - a - s.Along(dir)
		}
		c := (across - s.Across(dir)) / 2
		if dir.IsHorizontal() {
			l.place(common.Point{X: a, Y: c})
		} else {
			l.place(common.Point{X: c, Y: a})
		}
	}
	p.overflow.cam.SetBounds(viewport, p.content, p.snapTargets())
}

// snapTargets converts declared snap points into reading coordinates.
func (p *Page) snapTargets() []camera.SnapTarget {
	dir := p.env.Direction
	var res []camera.SnapTarget
	for _, sp := range p.snaps {
		if sp.Segment < 0 || sp.Segment >= len(p.layers) {
			p.log.Debug("Ignoring snap point for missing segment", zap.Int("segment", sp.Segment))
			continue
		}
		size := p.layers[sp.Segment].Content.Size()
		scale := 1.0
		if sp.Segment < len(p.natural) && !p.natural[sp.Segment].IsEmpty() {
			scale = size.Along(dir) / p.natural[sp.Segment].Along(dir)
		}
		local := sp.Y * scale
		if dir.IsHorizontal() {
			local = sp.X * scale
		}
		if dir.IsReversed() {
			local = size.Along(dir) - local
		}
		res = append(res, camera.SnapTarget{Pos: p.starts[sp.Segment] + local, Anchor: sp.Anchor})
	}
	return res
}

// CurrentSegment returns index of segment under viewport center.
func (p *Page) CurrentSegment() int {
	if len(p.starts) == 0 {
		return 0
	}
	center := p.overflow.cam.Center()
	for i := len(p.starts) - 1; i > 0; i-- {
		if center >= p.starts[i] {
			return i
		}
	}
	return 0
}

// SegmentProgress returns unzoomed camera progress placing start of segment i
// at the reading start edge of viewport, 0 when content fits.
func (p *Page) SegmentProgress(i int) float64 {
	if i <= 0 || i >= len(p.starts) {
		return 0
	}
	dir := p.env.Direction
	scroll := p.content.Along(dir) - p.viewport.Along(dir)
	if scroll <= 0 {
		return 0
	}
	return math.Min(1, p.starts[i]/scroll)
}

// SetupForEntry resets zoom, moves camera to the start (forward) or the end
// and resets stateful segments accordingly.
func (p *Page) SetupForEntry(forward bool) {
	p.LayerPile.SetupForEntry(forward)
	cam := p.overflow.cam
	cam.Stop()
	if cam.Zoom() != 1 {
		cam.ZoomAt(common.Point{X: p.viewport.Width / 2, Y: p.viewport.Height / 2}, 1)
	}
	if forward {
		cam.SetProgress(0)
	} else {
		cam.SetProgress(1)
	}
	p.overflow.apply()
}

func (p *Page) FinalizeExit() {
	p.overflow.cam.Stop()
	p.LayerPile.FinalizeExit()
}

// GoForward performs discrete forward step inside page: reveals next layer
// group of current segment or scrolls to the next snap point. False means
// page end was reached.
func (p *Page) GoForward() bool {
	if seg := p.currentSegment(); seg != nil && seg.GoForward() {
		return true
	}
	return p.overflow.cam.MoveToNextSnapPoint()
}

// GoBackward is the reverse of GoForward.
func (p *Page) GoBackward() bool {
	if seg := p.currentSegment(); seg != nil && seg.GoBackward() {
		return true
	}
	return p.overflow.cam.MoveToPreviousSnapPoint()
}

// IsUndergoingChanges reports whether layer group change of current segment
// is in flight.
func (p *Page) IsUndergoingChanges() bool {
	seg := p.currentSegment()
	return seg != nil && seg.state != nil && seg.state.IsUndergoingChanges()
}

// ForceChangesToEnd commits layer group change of current segment.
func (p *Page) ForceChangesToEnd() {
	if seg := p.currentSegment(); seg != nil && seg.state != nil {
		seg.state.ForceChangesToEnd()
	}
}

func (p *Page) currentSegment() *Segment {
	if len(p.layers) == 0 {
		return nil
	}
	return p.layers[p.CurrentSegment()].Content.(*Segment)
}

// OverflowHandler moves page content according to its camera.
type OverflowHandler struct {
	page     *Page
	cam      *camera.Camera
	policy   common.Overflow
	onScroll func()
}

func newOverflowHandler(p *Page, env *Env) *OverflowHandler {
	o := &OverflowHandler{page: p, policy: env.Overflow}
	o.cam = camera.New(env.Camera, env.Sched, o.apply, env.logger().With(zap.String("node", p.name)))
	return o
}

func (o *OverflowHandler) Camera() *camera.Camera  { return o.cam }
func (o *OverflowHandler) Policy() common.Overflow { return o.policy }

// Content returns surface moved by camera.
func (o *OverflowHandler) Content() render.Surface { return o.page.container }

// OnScroll sets callback invoked after every camera move.
func (o *OverflowHandler) OnScroll(fn func()) { o.onScroll = fn }

func (o *OverflowHandler) apply() {
	o.page.container.SetScale(o.cam.Zoom())
	o.page.container.SetPosition(o.cam.Offset())
	if o.onScroll != nil {
		o.onScroll()
	}
}
