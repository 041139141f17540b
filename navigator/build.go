package navigator

import (
	"slices"
	"strconv"

	"divina/common"
	"divina/manifest"
	"divina/story"
)

// AvailableModes returns reading modes declared by story or, when there are
// none, modes which make sense for reading direction.
func AvailableModes(st *manifest.Story, dir common.ReadingDirection) []common.ReadingMode {
	if len(st.Modes) > 0 {
		return slices.Clone(st.Modes)
	}
	modes := []common.ReadingMode{common.ReadingModeSingle}
	if dir.IsHorizontal() {
		modes = append(modes, common.ReadingModeDouble)
	}
	return append(modes, common.ReadingModeScroll)
}

// groupLinks splits story links into pages.
func groupLinks(n int, mode common.ReadingMode) [][]int {
	var groups [][]int
	switch mode {
	case common.ReadingModeScroll:
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		groups = append(groups, all)
	case common.ReadingModeDouble:
		for i := 0; i < n; i += 2 {
			g := []int{i}
			if i+1 < n {
				g = append(g, i+1)
			}
			groups = append(groups, g)
		}
	default:
		for i := range n {
			groups = append(groups, []int{i})
		}
	}
	return groups
}

func spreadFor(mode common.ReadingMode) int {
	switch mode {
	case common.ReadingModeScroll:
		return 0
	case common.ReadingModeDouble:
		return 2
	}
	return 1
}

// layout is composition tree of a story for one reading mode.
type layout struct {
	root      *story.LayerPile
	pages     []*story.Page
	pageLinks [][]int
	linkPage  []int
	hrefs     map[string]int
}

type builder struct {
	env  *story.Env
	mode common.ReadingMode
}

func build(env *story.Env, st *manifest.Story, mode common.ReadingMode) *layout {
	b := &builder{env: env, mode: mode}
	lt := &layout{
		pageLinks: groupLinks(len(st.Links), mode),
		linkPage:  make([]int, len(st.Links)),
		hrefs:     make(map[string]int),
	}

	layers := make([]*story.Layer, 0, len(lt.pageLinks))
	for pi, group := range lt.pageLinks {
		var (
			segs    []*story.Segment
			natural []common.Size
			snaps   []story.SnapPoint
		)
		for si, li := range group {
			link := &st.Links[li]
			lt.linkPage[li] = pi
			lt.index(link, li)

			segs = append(segs, b.segment(link, "link "+strconv.Itoa(li)))
			natural = append(natural, naturalSize(link))
			for _, sp := range link.SnapPoints {
				snaps = append(snaps, story.SnapPoint{Segment: si, Anchor: sp.Anchor, X: sp.X, Y: sp.Y})
			}
		}
		page := story.NewPage(env, pi, segs, natural, spreadFor(mode), snaps)
		lt.pages = append(lt.pages, page)

		// page transitions come from the first link of the page
		first := &st.Links[group[0]]
		name := page.Name()
		layers = append(layers, story.NewLayer(page,
			b.transition(first.Forward, name+"/forward"),
			b.transition(first.Backward, name+"/backward"),
			env.TransitionDuration))
	}
	lt.root = story.NewLayerPile(env, "pages", layers, story.RegimePage)
	return lt
}

// index makes link and everything stacked on it reachable by href.
func (lt *layout) index(link *manifest.Link, li int) {
	if link.Href != "" {
		if _, ok := lt.hrefs[link.Href]; !ok {
			lt.hrefs[link.Href] = li
		}
	}
	for i := range link.Layers {
		lt.index(&link.Layers[i], li)
	}
}

// naturalSize of a layered link without own resource is the size of its
// first layer.
func naturalSize(link *manifest.Link) common.Size {
	if s := link.Size(); !s.IsEmpty() || link.Href != "" || len(link.Layers) == 0 {
		return s
	}
	return naturalSize(&link.Layers[0])
}

func (b *builder) fit(link *manifest.Link) common.Fit {
	if b.mode != common.ReadingModeScroll {
		return link.Fit
	}
	// stitched segments fill viewport across reading axis
	if b.env.Direction.IsHorizontal() {
		return common.FitHeight
	}
	return common.FitWidth
}

func (b *builder) slice(link *manifest.Link, name string) *story.Slice {
	id := b.env.Resources.SlotResourceID(name, link.Descriptor())
	return story.NewSlice(b.env, name, id, link.Size(), b.fit(link))
}

func (b *builder) segment(link *manifest.Link, name string) *story.Segment {
	var layers []*story.Layer
	if link.Href != "" {
		layers = append(layers, story.NewLayer(b.slice(link, name+"/image"), nil, nil, b.env.TransitionDuration))
	}
	for i := range link.Layers {
		child := &link.Layers[i]
		lname := name + "/layer " + strconv.Itoa(i)

		var content story.Node
		if len(child.Layers) > 0 {
			content = b.segment(child, lname)
		} else {
			content = b.slice(child, lname)
		}
		layers = append(layers, story.NewLayer(content,
			b.transition(child.Forward, lname+"/forward"),
			b.transition(child.Backward, lname+"/backward"),
			b.env.TransitionDuration))
	}
	return story.NewSegment(b.env, name, layers)
}

func (b *builder) transition(t *manifest.Transition, name string) *story.TransitionSpec {
	if t == nil {
		return nil
	}
	spec := &story.TransitionSpec{
		Type:          t.Type,
		Direction:     b.env.Direction,
		Duration:      t.Duration,
		Discontinuous: t.Discontinuous,
	}
	if t.Direction != nil {
		spec.Direction = *t.Direction
	}
	if t.Animation != nil && t.Animation.Href != "" {
		spec.Animation = b.slice(t.Animation, name+"/animation")
	}
	return spec
}
