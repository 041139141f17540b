package story

import (
	"math"

	"divina/utils/debug"
)

// Dump writes composition tree rooted at n, one node per line.
func Dump(tw *debug.TreeWriter, n Node, depth int) {
	size := n.Size()
	attrs := []any{"status", n.LoadStatus(), "w", round(size.Width), "h", round(size.Height)}
	switch v := n.(type) {
	case *Slice:
		attrs = append(attrs, "resource", v.id)
		if v.failed {
			attrs = append(attrs, "failed")
		}
		tw.Node(depth, "slice", v.name, attrs...)
	case *Page:
		if p, ok := v.Camera().Progress(); ok {
			attrs = append(attrs, "progress", round(p))
		}
		attrs = append(attrs, "zoom", round(v.Camera().Zoom()))
		tw.Node(depth, "page", v.name, attrs...)
		dumpLayers(tw, &v.LayerPile, depth)
	case *Segment:
		tw.Node(depth, "segment", v.name, append(attrs, stateAttrs(v.state)...)...)
		dumpLayers(tw, &v.LayerPile, depth)
	case *LayerPile:
		tw.Node(depth, "pile", v.name, append(attrs, stateAttrs(v.state)...)...)
		dumpLayers(tw, v, depth)
	}
}

func stateAttrs(h *StateHandler) []any {
	if h == nil {
		return nil
	}
	attrs := []any{"state", h.Current(), "states", h.Len()}
	if h.IsUndergoingChanges() {
		attrs = append(attrs, "target", h.Target())
	}
	return attrs
}

func dumpLayers(tw *debug.TreeWriter, p *LayerPile, depth int) {
	for _, l := range p.layers {
		attrs := []any{"index", l.index}
		if l.discontinuous {
			attrs = append(attrs, "discontinuous")
		}
		if l.EntryForward != nil {
			attrs = append(attrs, "entry", l.EntryForward.Kind)
		}
		tw.Node(depth+1, "layer", "", attrs...)
		Dump(tw, l.Content, depth+2)
	}
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
