package camera

import (
	"math"
	"time"

	"go.uber.org/zap"

	"divina/common"
)

// subpixel grid kinetic targets are rounded to
const subpixel = 4

func easeOutCubic(t float64) float64 {
	t = 1 - t
	return 1 - t*t*t
}

// nextTarget returns progress of the nearest snap point beyond current one in
// the requested direction or one pagination step, whichever is closer.
func (c *Camera) nextTarget(from float64, forward bool) float64 {
	if forward {
		target := math.Min(1, from+c.step)
		for _, s := range c.snaps {
			if s > from+epsilon {
				target = math.Min(target, s)
				break
			}
		}
		return target
	}
	target := math.Max(0, from-c.step)
	for i := len(c.snaps) - 1; i >= 0; i-- {
		if s := c.snaps[i]; s < from-epsilon {
			target = math.Max(target, s)
			break
		}
	}
	return target
}

// MoveToNextSnapPoint starts auto-scroll toward the next snap point. It
// returns false when there is nowhere to go and navigation should leave the
// page. Repeated call while moving forward completes the movement at once,
// call while moving backward redirects it.
func (c *Camera) MoveToNextSnapPoint() bool {
	return c.moveToSnap(true)
}

// MoveToPreviousSnapPoint is the backward counterpart of MoveToNextSnapPoint.
func (c *Camera) MoveToPreviousSnapPoint() bool {
	return c.moveToSnap(false)
}

func (c *Camera) moveToSnap(forward bool) bool {
	if c.auto != nil && c.auto.forward == forward {
		c.finishAuto()
		return true
	}

	from, ok := c.Progress()
	if !ok {
		return false
	}
	if c.kin != nil {
		c.stopAnimation()
	}
	if (forward && from >= 1-epsilon) || (!forward && from <= epsilon) {
		c.stopAnimation()
		return false
	}
	c.scrollTo(from, c.nextTarget(from, forward), forward)
	return true
}

// ScrollToProgress animates camera to progress.
func (c *Camera) ScrollToProgress(p float64) {
	from, ok := c.Progress()
	if !ok {
		return
	}
	c.scrollTo(from, clamp(p, 0, 1), p >= from)
}

func (c *Camera) scrollTo(from, to float64, forward bool) {
	c.stopAnimation()

	lo, hi := c.bounds(1)
	distance := math.Abs(to-from) * (hi - lo)
	speed := c.along(c.viewport) * c.cfg.SnapSpeed
	if distance <= epsilon || speed <= 0 {
		c.setProgress(to)
		c.onChange()
		return
	}
	c.auto = &autoScroll{
		from:     from,
		to:       to,
		start:    c.now(),
		duration: time.Duration(distance / speed * float64(time.Second)),
		forward:  forward,
	}
	c.animate()
}

func (c *Camera) finishAuto() {
	to := c.auto.to
	c.stopAnimation()
	c.setProgress(to)
	c.onChange()
}

func (c *Camera) stepAuto(now time.Time) {
	a := c.auto
	t := 1.0
	if a.duration > 0 {
		t = math.Min(1, float64(now.Sub(a.start))/float64(a.duration))
	}
	c.setProgress(a.from + (a.to-a.from)*easeOutCubic(t))
	if t >= 1 {
		c.auto = nil
	}
}

// Release starts kinetic scroll after drag with velocity along reading axis
// in pixels per millisecond. With sticky pagination release snaps instead.
func (c *Camera) Release(velocity float64) {
	if c.cfg.Sticky && c.AttemptStickyStep() {
		return
	}
	c.dragStart = nil

	amplitude := velocity * c.cfg.KineticAmplitude
	if math.Abs(amplitude) < c.cfg.KineticMinDisplacement || c.cfg.KineticTimeConstant <= 0 {
		return
	}
	target := c.clampPos(math.Round((c.pos+amplitude)*subpixel) / subpixel)
	c.stopAnimation()
	c.kin = &kinetic{target: target, amplitude: target - c.pos, start: c.now()}
	c.animate()
}

func (c *Camera) stepKinetic(now time.Time) {
	k := c.kin
	elapsed := now.Sub(k.start)
	delta := -k.amplitude * math.Exp(-float64(elapsed)/float64(c.cfg.KineticTimeConstant))
	if math.Abs(delta) < c.cfg.KineticMinDisplacement {
		c.pos = k.target
		c.kin = nil
		return
	}
	c.pos = c.clampPos(k.target + delta)
}

// restingPoint returns the point nearest to progress among snap points and
// content ends, or among multiples of pagination step when there are no snap
// points.
func (c *Camera) restingPoint(p float64) float64 {
	points := []float64{0, 1}
	if len(c.snaps) > 0 {
		points = append(points, c.snaps...)
	} else if c.step > epsilon {
		for q := c.step; q < 1-epsilon; q += c.step {
			points = append(points, q)
		}
	}
	best := points[0]
	for _, q := range points[1:] {
		if math.Abs(q-p) < math.Abs(best-p) {
			best = q
		}
	}
	return best
}

// AttemptStickyStep settles camera after drag: if drag moved at least sticky
// threshold of viewport length camera goes one snap step in drag direction
// from the resting point nearest to drag start, otherwise it returns to that
// resting point. Returns false when there was no drag or content fits.
func (c *Camera) AttemptStickyStep() bool {
	if c.dragStart == nil {
		return false
	}
	start := *c.dragStart
	c.dragStart = nil

	current, ok := c.Progress()
	if !ok {
		return false
	}
	lo, hi := c.bounds(1)
	anchor := c.restingPoint(clamp((start/c.zoom-lo)/(hi-lo), 0, 1))
	moved := c.pos - start

	if math.Abs(moved) >= c.cfg.StickyThreshold*c.along(c.viewport) {
		forward := moved > 0
		target := c.nextTarget(anchor, forward)
		c.log.Debug("Sticky step", zap.Float64("from", anchor), zap.Float64("to", target))
		c.scrollTo(current, target, forward)
		return true
	}
	c.log.Debug("Sticky revert", zap.Float64("to", anchor))
	c.scrollTo(current, anchor, anchor >= current)
	return true
}

// touchOffsets converts touch point in viewport coordinates to offsets from
// viewport center in reading coordinates.
func (c *Camera) touchOffsets(touch common.Point) (along, across float64) {
	ta, tc := touch.X, touch.Y
	if !c.cfg.Direction.IsHorizontal() {
		ta, tc = touch.Y, touch.X
	}
	along = ta - c.along(c.viewport)/2
	if c.cfg.Direction.IsReversed() {
		along = -along
	}
	return along, tc - c.across(c.viewport)/2
}

// ZoomAt changes zoom keeping content point under touch in place.
func (c *Camera) ZoomAt(touch common.Point, zoom float64) {
	if !c.cfg.AllowsZoom || c.content.IsEmpty() {
		return
	}
	zoom = clamp(zoom, 1, c.cfg.MaxZoom)
	if math.Abs(zoom-c.zoom) < epsilon {
		return
	}
	c.stopAnimation()

	da, dc := c.touchOffsets(touch)
	// content point under touch at zoom 1
	pa, pc := (c.pos+da)/c.zoom, (c.cross+dc)/c.zoom
	c.zoom = zoom
	c.pos = c.clampPos(pa*zoom - da)
	if math.Abs(zoom-1) < epsilon {
		// back at zoom 1 camera shows its position as is
		c.syncProgress()
	}
	c.cross = pc*zoom - dc
	c.clampCross()
	c.onChange()
}

// ToggleZoom switches between no zoom and maximum zoom.
func (c *Camera) ToggleZoom(touch common.Point) {
	if c.zoom > 1+epsilon {
		c.ZoomAt(touch, 1)
		return
	}
	c.ZoomAt(touch, c.cfg.MaxZoom)
}

// ZoomBy applies continuous zoom: pinch multiplier when positive, otherwise
// wheel delta scaled by sensitivity (positive delta zooms out).
func (c *Camera) ZoomBy(touch common.Point, multiplier, delta float64) {
	if multiplier > 0 {
		c.ZoomAt(touch, c.zoom*multiplier)
		return
	}
	c.ZoomAt(touch, c.zoom*math.Exp(-delta*c.cfg.ZoomSensitivity))
}
