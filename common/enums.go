// Package common keeps enums and small value types shared by the reader
// engine packages, configuration and the command line front end.
package common

//go:generate go tool go-enum --marshal --names

// Aggregated load state of a resource, slice or composition node.
// ENUM(unloaded, loading, partial, loaded)
type LoadStatus int

// Kind of the media behind a resource.
// ENUM(image, video, audio, text)
type ResourceKind int

// Direction content is read in, defines dominant scroll axis.
// ENUM(ltr, rtl, ttb, btt)
type ReadingDirection int

// How page content exceeding the viewport is handled.
// ENUM(scrolled, paginated)
type Overflow int

// Viewport edge a snap point is aligned to.
// ENUM(start, center, end)
type ViewportAnchor int

// Page or layer transition as declared in story manifest.
// ENUM(cut, fade, slide-in, slide-out, push, animation)
type TransitionType int

// How a slice is fitted into the viewport.
// ENUM(contain, cover, width, height)
type Fit int

// Scheduling mode of a task queue.
// ENUM(parallel, serial)
type QueueMode int

// Reading mode - defines how story links are grouped into pages.
// ENUM(single, double, scroll)
type ReadingMode int

// Unit the load window is measured in.
// ENUM(page, segment)
type LoadingUnit int

// Classified navigation intent.
// ENUM(forward, backward, left, right, up, down)
type Way int

// IsHorizontal reports whether reading direction scrolls along x axis.
func (d ReadingDirection) IsHorizontal() bool {
	return d == ReadingDirectionLtr || d == ReadingDirectionRtl
}

// IsReversed reports whether reading start is at the right or bottom edge.
func (d ReadingDirection) IsReversed() bool {
	return d == ReadingDirectionRtl || d == ReadingDirectionBtt
}

// IsActive reports whether status indicates active or pending use of a texture.
func (s LoadStatus) IsActive() bool {
	return s != LoadStatusUnloaded
}

// IsDiscrete reports whether way is one of forward or backward.
func (w Way) IsDiscrete() bool {
	return w == WayForward || w == WayBackward
}

// Resolve maps a directional gesture onto forward or backward for the given
// reading direction. The second value is false when gesture runs across the
// reading axis.
func (w Way) Resolve(dir ReadingDirection) (forward, ok bool) {
	switch w {
	case WayForward:
		return true, true
	case WayBackward:
		return false, true
	}
	switch dir {
	case ReadingDirectionLtr:
		switch w {
		case WayRight:
			return true, true
		case WayLeft:
			return false, true
		}
	case ReadingDirectionRtl:
		switch w {
		case WayLeft:
			return true, true
		case WayRight:
			return false, true
		}
	case ReadingDirectionTtb:
		switch w {
		case WayDown:
			return true, true
		case WayUp:
			return false, true
		}
	case ReadingDirectionBtt:
		switch w {
		case WayUp:
			return true, true
		case WayDown:
			return false, true
		}
	}
	return false, false
}
