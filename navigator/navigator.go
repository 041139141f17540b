// Package navigator drives a story composition tree: page changes, the
// window of pages kept loaded around reading position, gestures and zoom.
// The Reader ties navigator to configuration, resource loading and reading
// mode changes.
package navigator

import (
	"errors"
	"maps"
	"math"
	"slices"

	"go.uber.org/zap"

	"divina/common"
	"divina/config"
	"divina/manifest"
	"divina/render"
	"divina/story"
)

// NoProgress leaves camera where page entry puts it.
const NoProgress = -1.0

var ErrEmptyStory = errors.New("story has no pages")

// Way is a navigation intent: discrete forward or backward, or a direction
// resolved against reading direction.
type Way = common.Way

const (
	WayForward  = common.WayForward
	WayBackward = common.WayBackward
	WayLeft     = common.WayLeft
	WayRight    = common.WayRight
	WayUp       = common.WayUp
	WayDown     = common.WayDown
)

// ScrollRequest is a drag or wheel step. Deltas are in screen pixels, positive
// values move view toward right and bottom of content. ViewportPercent is
// gesture distance relative to viewport length, it scrubs page transitions
// started by dragging past page edge.
type ScrollRequest struct {
	DeltaX, DeltaY  float64
	ViewportPercent float64
}

// ZoomRequest is either a discrete toggle or a continuous pinch or wheel zoom
// around touch point.
type ZoomRequest struct {
	Continuous bool
	TouchPoint common.Point
	Delta      float64
	Multiplier float64
}

// Navigator is not safe for concurrent use, everything runs on engine loop.
type Navigator struct {
	*layout

	log      *zap.Logger
	env      *story.Env
	loading  config.LoadingConfig
	cancel   bool
	mode     common.ReadingMode
	listener Listener
	states   *story.StateHandler

	viewport  common.Size
	window    map[int]bool
	segment   int
	updating  bool
	dragging  bool
	destroyed bool
	released  bool
}

// New builds composition tree of story for reading mode. Navigator shows
// nothing until the first GoToPageWithIndex.
func New(st *manifest.Story, mode common.ReadingMode, env *story.Env, cfg *config.ReaderConfig, listener Listener) (*Navigator, error) {
	if len(st.Links) == 0 {
		return nil, ErrEmptyStory
	}
	if listener == nil {
		listener = func(Event) {}
	}
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}

	n := &Navigator{
		log:      log.Named("navigator").With(zap.Stringer("mode", mode)),
		env:      env,
		loading:  cfg.Loading,
		cancel:   cfg.Navigation.ShouldCancelTransition,
		mode:     mode,
		listener: listener,
		window:   make(map[int]bool),
		segment:  -1,
	}
	n.layout = build(env, st, mode)
	n.states = n.root.StateHandler()
	n.root.OnStateChange(n.pageChanged)
	for i, p := range n.pages {
		p.OnStatusChange(func(s common.LoadStatus) {
			n.emit(PageLoadStatusUpdate{PageIndex: i, Status: s})
		})
		p.Overflow().OnScroll(n.updateSegmentWindow)
	}
	n.log.Debug("Navigator created", zap.Int("pages", len(n.pages)), zap.Int("links", len(st.Links)))
	return n, nil
}

func (n *Navigator) Mode() common.ReadingMode { return n.mode }

func (n *Navigator) NbOfPages() int { return len(n.pages) }

func (n *Navigator) Pages() []*story.Page { return n.pages }

// Root returns pile holding pages.
func (n *Navigator) Root() *story.LayerPile { return n.root }

// Surface returns root surface to be attached to the scene.
func (n *Navigator) Surface() render.Surface { return n.root.Surface() }

// CurrentIndex returns index of current page, -1 before the first entry.
func (n *Navigator) CurrentIndex() int { return n.states.Current() }

// CurrentPage returns current page, nil before the first entry.
func (n *Navigator) CurrentPage() *story.Page {
	if cur := n.states.Current(); cur >= 0 {
		return n.pages[cur]
	}
	return nil
}

// IsTransitioning reports whether page change is in flight.
func (n *Navigator) IsTransitioning() bool { return n.states.IsUndergoingChanges() }

// CurrentLink returns index of story link at reading position.
func (n *Navigator) CurrentLink() int {
	cur := max(n.states.Current(), 0)
	links := n.pageLinks[cur]
	if n.mode == common.ReadingModeScroll {
		if seg := n.pages[cur].CurrentSegment(); seg < len(links) {
			return links[seg]
		}
	}
	return links[0]
}

// Window returns sorted indices of pages (segments when loading unit is
// segment) currently kept loaded.
func (n *Navigator) Window() []int {
	return slices.Sorted(maps.Keys(n.window))
}

func (n *Navigator) ready() bool {
	return !n.destroyed && n.states.Current() >= 0
}

func (n *Navigator) emit(e Event) {
	if n.destroyed {
		return
	}
	n.log.Debug("Event", zap.String("name", e.Name()), zap.String("details", e.Details()))
	n.listener(e)
}

// settle ends page change or layer reveal in flight when allowed to, it
// returns false when change should be left alone.
func (n *Navigator) settle(forceful bool) bool {
	page := n.CurrentPage()
	inPage := page != nil && page.IsUndergoingChanges()
	if !n.states.IsUndergoingChanges() && !inPage {
		return true
	}
	if !forceful && !n.cancel {
		return false
	}
	n.states.ForceChangesToEnd()
	if inPage {
		page.ForceChangesToEnd()
	}
	return true
}

// GoToPageWithIndex shows page. Index is clamped to the story, progress other
// than NoProgress positions camera inside page. Unless forceful, request made
// during page transition is ignored (see cancel_transition). Forceful and
// non adjacent changes are instant.
func (n *Navigator) GoToPageWithIndex(index int, progress float64, forceful bool) bool {
	if len(n.pages) == 0 {
		panic("navigator: page requested on empty navigator")
	}
	if n.destroyed || !n.settle(forceful) {
		return false
	}
	index = min(max(index, 0), len(n.pages)-1)

	cur := n.states.Current()
	if index == cur {
		if progress >= 0 {
			n.pages[index].Camera().SetProgress(progress)
		}
		return true
	}

	forward := cur < 0 || index > cur
	skip := forceful || cur < 0 || abs(index-cur) > 1
	if !skip {
		// instant changes request the whole window once queue is re-targeted
		n.prefetch(index)
	}
	if !n.states.GoToState(index, forward, skip, false, nil) {
		return false
	}
	if progress >= 0 {
		n.pages[index].Camera().SetProgress(progress)
	}
	return true
}

// GoToLink shows page holding story link, in scroll mode camera is moved to
// the link segment.
func (n *Navigator) GoToLink(li int) bool {
	if li < 0 || li >= len(n.linkPage) {
		return false
	}
	pi := n.linkPage[li]
	progress := NoProgress
	if n.mode == common.ReadingModeScroll {
		progress = n.pages[pi].SegmentProgress(slices.Index(n.pageLinks[pi], li))
	}
	return n.GoToPageWithIndex(pi, progress, true)
}

// GoToHref shows page with resource href, false when story has no such resource.
func (n *Navigator) GoToHref(href string) bool {
	li, ok := n.hrefs[href]
	if !ok {
		n.log.Debug("Unknown href", zap.String("href", href))
		return false
	}
	return n.GoToLink(li)
}

// Go performs discrete step. Steps inside page (layer reveals, snap points)
// come first, page is changed when page end is reached. With toMax set story
// start or end is shown instead.
func (n *Navigator) Go(way Way, toMax bool) bool {
	if !n.ready() || !n.settle(false) {
		return false
	}
	forward, ok := way.Resolve(n.env.Direction)
	if !ok {
		n.log.Debug("Ignoring step across reading axis", zap.Stringer("way", way))
		return false
	}

	if toMax {
		if forward {
			return n.GoToPageWithIndex(len(n.pages)-1, 1, false)
		}
		return n.GoToPageWithIndex(0, 0, false)
	}

	cur := n.states.Current()
	page := n.pages[cur]
	if forward && page.GoForward() || !forward && page.GoBackward() {
		// revealed layers need the next group
		n.refresh(cur)
		return true
	}

	target := cur - 1
	if forward {
		target = cur + 1
	}
	if target < 0 || target >= len(n.pages) {
		return false
	}
	n.prefetch(target)
	return n.states.GoToState(target, forward, false, false, nil)
}

// split converts screen deltas into reading coordinates.
func (n *Navigator) split(dx, dy float64) (along, across float64) {
	dir := n.env.Direction
	along, across = dy, dx
	if dir.IsHorizontal() {
		along, across = dx, dy
	}
	if dir.IsReversed() {
		along = -along
	}
	return along, across
}

// HandleScroll moves camera of current page. Dragging past page edge starts
// controlled page transition scrubbed by subsequent requests, wheel steps
// past the edge are dropped.
func (n *Navigator) HandleScroll(req ScrollRequest, isWheel bool) bool {
	if !n.ready() {
		return false
	}
	if n.states.IsControlled() {
		n.states.GoToIntermediateState(math.Abs(req.ViewportPercent))
		return true
	}
	if !n.settle(false) {
		return false
	}

	cur := n.states.Current()
	cam := n.pages[cur].Camera()
	if !isWheel && !n.dragging {
		n.dragging = true
		cam.StartDrag()
	}
	along, across := n.split(req.DeltaX, req.DeltaY)
	rest := cam.MoveBy(along, across)
	if math.Abs(rest) < 1e-9 || isWheel {
		return true
	}

	forward := rest > 0
	target := cur - 1
	if forward {
		target = cur + 1
	}
	if target < 0 || target >= len(n.pages) {
		return true
	}
	n.prefetch(target)
	if n.states.GoToState(target, forward, false, true, nil) {
		n.states.GoToIntermediateState(math.Abs(req.ViewportPercent))
	}
	return true
}

// EndScroll finishes drag: controlled page transition is committed or
// cancelled, otherwise camera is released with velocity (pixels per
// millisecond, same orientation as scroll deltas).
func (n *Navigator) EndScroll(velocityX, velocityY float64) {
	dragging := n.dragging
	n.dragging = false
	if !n.ready() {
		return
	}
	if n.states.IsControlled() {
		n.states.EndControlled()
		return
	}
	if !dragging {
		return
	}
	along, _ := n.split(velocityX, velocityY)
	n.pages[n.states.Current()].Camera().Release(along)
}

// EndControlledTransition commits or cancels drag driven page transition,
// false when there is none.
func (n *Navigator) EndControlledTransition() bool {
	if !n.states.IsControlled() {
		return false
	}
	n.dragging = false
	n.states.EndControlled()
	return true
}

// AttemptStickyStep settles current page camera after drag, see
// camera.AttemptStickyStep.
func (n *Navigator) AttemptStickyStep() bool {
	n.dragging = false
	if !n.ready() {
		return false
	}
	return n.pages[n.states.Current()].Camera().AttemptStickyStep()
}

// SetPercentInCurrentPage moves camera of current page to progress.
func (n *Navigator) SetPercentInCurrentPage(p float64) {
	if !n.ready() {
		return
	}
	n.pages[n.states.Current()].Camera().SetProgress(p)
}

// Zoom applies zoom request to current page, ignored during page transition.
func (n *Navigator) Zoom(req ZoomRequest) {
	if !n.ready() || n.states.IsUndergoingChanges() {
		return
	}
	cam := n.pages[n.states.Current()].Camera()
	if req.Continuous {
		cam.ZoomBy(req.TouchPoint, req.Multiplier, req.Delta)
		return
	}
	cam.ToggleZoom(req.TouchPoint)
}

// Resize lays every page out for viewport keeping camera progress.
func (n *Navigator) Resize(viewport common.Size) {
	if n.destroyed {
		return
	}
	n.viewport = viewport
	n.root.Resize(viewport)
}

func (n *Navigator) Viewport() common.Size { return n.viewport }

// Reload requests resources of the load window again, used after textures
// were released behind navigator back.
func (n *Navigator) Reload() {
	if !n.ready() {
		return
	}
	n.segment = -1
	n.updateWindow(n.states.Current())
}

// Detach stops navigator without releasing textures: transitions are ended,
// cameras stopped, surface hidden and no more events are emitted.
func (n *Navigator) Detach() {
	if n.destroyed {
		return
	}
	n.destroyed = true
	n.states.ForceChangesToEnd()
	for _, p := range n.pages {
		p.Camera().Stop()
	}
	n.root.Surface().SetVisibility(false)
}

// Destroy detaches navigator and releases every texture it holds, textures
// also shown by another navigator survive.
func (n *Navigator) Destroy() {
	if n.released {
		return
	}
	n.Detach()
	n.released = true
	for _, p := range n.pages {
		p.DestroyResourcesIfPossible()
	}
	n.window = make(map[int]bool)
	n.log.Debug("Navigator destroyed")
}

func (n *Navigator) pageChanged(from, to int) {
	if n.destroyed {
		return
	}
	n.log.Debug("Page changed", zap.Int("from", from), zap.Int("to", to))
	n.segment = -1
	n.updateWindow(to)
	n.emit(PageChange{PageIndex: to, NbOfPages: len(n.pages)})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
