package navigator

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"divina/common"
	"divina/resource"
)

// bounds returns load window around index: PagesBefore units before it and
// MaxPagesAfter units after, clamped to count.
func (n *Navigator) bounds(index, count int) (lo, hi int) {
	lo = max(0, index-n.loading.PagesBefore())
	hi = min(count-1, index+n.loading.MaxPagesAfter)
	return lo, hi
}

// segmentUnit reports whether window is measured in segments of the single
// stitched page.
func (n *Navigator) segmentUnit() bool {
	return n.loading.Unit == common.LoadingUnitSegment && n.mode == common.ReadingModeScroll
}

// onScreen reports whether page takes part in transition in flight.
func (n *Navigator) onScreen(p int) bool {
	return n.states.IsUndergoingChanges() && (p == n.states.Current() || p == n.states.Target())
}

// loadOrder lists window in order loads are requested: index first, then
// the rest after it, then the rest before it nearest first.
func loadOrder(index, lo, hi int) []int {
	order := make([]int, 0, hi-lo+1)
	for i := index; i <= hi; i++ {
		order = append(order, i)
	}
	for i := index - 1; i >= lo; i-- {
		order = append(order, i)
	}
	return order
}

type loadable interface {
	LoadStatus() common.LoadStatus
	ResourceRequests() []resource.Request
	DestroyResourcesIfPossible()
}

// updateWindow re-ranks pending loads around page index, releases pages which
// left the window and requests pages which entered it.
func (n *Navigator) updateWindow(index int) {
	if n.segmentUnit() {
		n.updateSegmentWindow()
		return
	}
	n.env.Resources.Queue().UpdatePriorities(index)

	lo, hi := n.bounds(index, len(n.pages))
	for _, p := range slices.Sorted(maps.Keys(n.window)) {
		if (p >= lo && p <= hi) || n.onScreen(p) {
			continue
		}
		n.log.Debug("Page left load window", zap.Int("page", p))
		n.pages[p].DestroyResourcesIfPossible()
		delete(n.window, p)
	}
	for _, p := range loadOrder(index, lo, hi) {
		n.load(n.pages[p], p, false)
	}
}

// updateSegmentWindow is updateWindow for segment loading unit, it follows
// segment under viewport center of the current page.
func (n *Navigator) updateSegmentWindow() {
	if !n.segmentUnit() || n.updating || n.destroyed {
		return
	}
	cur := n.states.Current()
	if cur < 0 {
		return
	}
	n.updating = true
	defer func() { n.updating = false }()

	page := n.pages[cur]
	segs := page.Segments()
	// loads may change layout and so current segment
	for seg := page.CurrentSegment(); seg != n.segment; seg = page.CurrentSegment() {
		n.segment = seg
		n.env.Resources.Queue().UpdatePriorities(seg)

		lo, hi := n.bounds(seg, len(segs))
		for _, s := range slices.Sorted(maps.Keys(n.window)) {
			if s >= lo && s <= hi {
				continue
			}
			segs[s].DestroyResourcesIfPossible()
			delete(n.window, s)
		}
		for _, s := range loadOrder(seg, lo, hi) {
			n.load(segs[s], s, false)
		}
	}
}

// WindowResourceIDs returns ids of resources requested for the load window.
func (n *Navigator) WindowResourceIDs() map[int]bool {
	ids := make(map[int]bool)
	for _, u := range n.Window() {
		var node loadable
		if n.segmentUnit() {
			node = n.pages[max(n.states.Current(), 0)].Segments()[u]
		} else {
			node = n.pages[u]
		}
		for _, req := range node.ResourceRequests() {
			for _, id := range req.IDs {
				ids[id] = true
			}
		}
	}
	return ids
}

// prefetch requests page about to be entered.
func (n *Navigator) prefetch(p int) {
	if n.segmentUnit() {
		return
	}
	n.load(n.pages[p], p, false)
}

// refresh requests page again, stateful segments ask for their next group
// only after previous one was revealed.
func (n *Navigator) refresh(p int) {
	if n.segmentUnit() {
		segs := n.pages[p].Segments()
		for _, s := range n.Window() {
			n.load(segs[s], s, true)
		}
		return
	}
	n.load(n.pages[p], p, true)
}

func (n *Navigator) load(node loadable, unit int, force bool) {
	n.window[unit] = true
	if !force && node.LoadStatus() == common.LoadStatusLoaded {
		return
	}
	n.env.Resources.LoadResources(node.ResourceRequests(), unit)
}
