// Package camera implements continuous navigation inside content exceeding
// the viewport: scroll bounds, normalized progress, snap points, pagination,
// auto-scroll, kinetic release and zoom around a fixed point.
//
// Camera works in reading coordinates: position 0 is the edge reading starts
// from, so right-to-left and bottom-to-top content is mirrored on screen only
// when offsets are produced.
package camera

import (
	"math"
	"time"

	"go.uber.org/zap"

	"divina/common"
	"divina/config"
	"divina/frame"
)

const epsilon = 1e-6

// Config holds camera behavior settings.
type Config struct {
	Direction              common.ReadingDirection
	AllowsZoom             bool
	MaxZoom                float64
	ZoomSensitivity        float64
	SnapSpeed              float64
	KineticTimeConstant    time.Duration
	KineticAmplitude       float64
	KineticMinDisplacement float64
	Sticky                 bool
	StickyThreshold        float64
}

// NewConfig combines navigation and camera sections of configuration.
func NewConfig(nav *config.NavigationConfig, cam *config.CameraConfig) Config {
	return Config{
		Direction:              nav.Direction,
		AllowsZoom:             cam.AllowsZoom,
		MaxZoom:                cam.MaxZoom,
		ZoomSensitivity:        cam.ZoomSensitivity,
		SnapSpeed:              cam.SnapSpeed,
		KineticTimeConstant:    cam.KineticTimeConstant,
		KineticAmplitude:       cam.KineticAmplitude,
		KineticMinDisplacement: cam.KineticMinDisplacement,
		Sticky:                 nav.PaginationSticky && nav.Overflow == common.OverflowPaginated,
		StickyThreshold:        nav.StickyThreshold,
	}
}

// SnapTarget is a snap point with its position already converted to reading
// coordinates of unzoomed content.
type SnapTarget struct {
	Pos    float64
	Anchor common.ViewportAnchor
}

type autoScroll struct {
	from, to float64
	start    time.Time
	duration time.Duration
	forward  bool
}

type kinetic struct {
	target    float64
	amplitude float64
	start     time.Time
}

// Camera state. Not safe for concurrent use.
type Camera struct {
	cfg      Config
	log      *zap.Logger
	sched    *frame.Scheduler
	onChange func()

	viewport common.Size
	content  common.Size
	snaps    []float64
	step     float64

	zoom  float64
	pos   float64
	cross float64
	// reading position at zoom 1, zooming pans around it without changing it
	progress float64
	// progress applied once content starts to overflow
	pending float64

	auto      *autoScroll
	kin       *kinetic
	anim      frame.Handle
	dragStart *float64
}

// New creates camera. onChange (may be nil) is called every time position or
// zoom changes.
func New(cfg Config, sched *frame.Scheduler, onChange func(), log *zap.Logger) *Camera {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxZoom < 1 {
		cfg.MaxZoom = 1
	}
	if onChange == nil {
		onChange = func() {}
	}
	return &Camera{cfg: cfg, log: log.Named("camera"), sched: sched, onChange: onChange, zoom: 1}
}

func (c *Camera) Config() Config {
	return c.cfg
}

func (c *Camera) along(s common.Size) float64 {
	return s.Along(c.cfg.Direction)
}

func (c *Camera) across(s common.Size) float64 {
	return s.Across(c.cfg.Direction)
}

// fits reports whether unzoomed content does not overflow viewport.
func (c *Camera) fits() bool {
	return c.content.IsEmpty() || c.along(c.content) <= c.along(c.viewport)+epsilon
}

// bounds returns range of camera center at the given zoom.
func (c *Camera) bounds(zoom float64) (lo, hi float64) {
	l, v := c.along(c.content)*zoom, c.along(c.viewport)
	if l <= v+epsilon {
		return l / 2, l / 2
	}
	return v / 2, l - v/2
}

func (c *Camera) crossBounds() (lo, hi float64) {
	l, v := c.across(c.content)*c.zoom, c.across(c.viewport)
	if l <= v+epsilon {
		return l / 2, l / 2
	}
	return v / 2, l - v/2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SetBounds applies new geometry keeping current progress. Snap targets are
// resolved into strictly increasing progress values, regressions and
// duplicates are dropped.
func (c *Camera) SetBounds(viewport, content common.Size, snaps []SnapTarget) {
	progress, had := c.Progress()
	if had {
		c.pending = progress
	}
	c.stopAnimation()

	c.viewport, c.content = viewport, content
	if c.content.IsEmpty() {
		c.zoom = 1
	}

	c.snaps, c.step = nil, 0
	if !c.fits() {
		lo, hi := c.bounds(1)
		c.step = c.along(c.viewport) / (hi - lo)
		v := c.along(c.viewport)
		last := -1.0
		for _, s := range snaps {
			center := s.Pos
			switch s.Anchor {
			case common.ViewportAnchorStart:
				center += v / 2
			case common.ViewportAnchorEnd:
				center -= v / 2
			}
			p := clamp((center-lo)/(hi-lo), 0, 1)
			if p <= last+epsilon {
				c.log.Debug("Dropping snap point", zap.Float64("progress", p), zap.Float64("previous", last))
				continue
			}
			c.snaps = append(c.snaps, p)
			last = p
		}
	}

	switch {
	case had && !c.fits():
		c.setProgress(progress)
	case !c.fits():
		c.setProgress(c.pending)
	default:
		lo, _ := c.bounds(c.zoom)
		c.pos = lo
	}
	c.clampCross()
	c.onChange()
}

// SnapPoints returns resolved snap point progress values.
func (c *Camera) SnapPoints() []float64 {
	return append([]float64(nil), c.snaps...)
}

// PaginationStep returns progress distance of one viewport length, 0 when
// content fits.
func (c *Camera) PaginationStep() float64 {
	return c.step
}

// Progress returns position normalized to [0,1] on unzoomed content, false
// when content fits viewport and progress does not apply. Zoom does not
// change it, only movements do.
func (c *Camera) Progress() (float64, bool) {
	if c.fits() {
		return 0, false
	}
	return c.progress, true
}

// Center returns camera center along reading axis in unzoomed content
// coordinates as given by progress.
func (c *Camera) Center() float64 {
	lo, hi := c.bounds(1)
	if c.fits() {
		return lo
	}
	return lo + c.progress*(hi-lo)
}

// positionProgress converts camera position into progress.
func (c *Camera) positionProgress() float64 {
	lo, hi := c.bounds(1)
	return clamp((c.pos/c.zoom-lo)/(hi-lo), 0, 1)
}

// syncProgress stores progress after camera was moved.
func (c *Camera) syncProgress() {
	if !c.fits() {
		c.progress = c.positionProgress()
	}
}

// SetProgress moves camera, animations in flight are stopped. When content
// fits, progress is remembered and applied once content overflows (natural
// size is often known only after texture arrives).
func (c *Camera) SetProgress(p float64) {
	c.pending = clamp(p, 0, 1)
	if c.fits() {
		return
	}
	c.stopAnimation()
	c.setProgress(p)
	c.onChange()
}

func (c *Camera) setProgress(p float64) {
	lo, hi := c.bounds(1)
	c.progress = clamp(p, 0, 1)
	c.pos = c.clampPos((lo + c.progress*(hi-lo)) * c.zoom)
}

func (c *Camera) clampPos(pos float64) float64 {
	lo, hi := c.bounds(c.zoom)
	return clamp(pos, lo, hi)
}

func (c *Camera) clampCross() {
	lo, hi := c.crossBounds()
	c.cross = clamp(c.cross, lo, hi)
	if lo == hi {
		c.cross = lo
	}
}

// Position returns camera center along reading axis in zoomed content coordinates.
func (c *Camera) Position() float64 {
	return c.pos
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// AtStart reports whether camera could not move backward.
func (c *Camera) AtStart() bool {
	lo, _ := c.bounds(c.zoom)
	return c.pos <= lo+epsilon
}

// AtEnd reports whether camera could not move forward.
func (c *Camera) AtEnd() bool {
	_, hi := c.bounds(c.zoom)
	return c.pos >= hi-epsilon
}

// Offset returns screen position of content top-left corner.
func (c *Camera) Offset() common.Point {
	v, l := c.along(c.viewport), c.along(c.content)*c.zoom
	along := v/2 - c.pos
	if c.cfg.Direction.IsReversed() {
		along = v/2 - (l - c.pos)
	}
	across := c.across(c.viewport)/2 - c.cross
	if c.cfg.Direction.IsHorizontal() {
		return common.Point{X: along, Y: across}
	}
	return common.Point{X: across, Y: along}
}

// MoveBy shifts camera by delta along reading axis and across it, both in
// screen pixels. It returns part of along delta which could not be applied
// because a bound was hit.
func (c *Camera) MoveBy(along, across float64) float64 {
	c.stopAnimation()
	target := c.pos + along
	c.pos = c.clampPos(target)
	c.syncProgress()
	c.cross += across
	c.clampCross()
	c.onChange()
	return target - c.pos
}

// StartDrag remembers drag start for sticky pagination and stops animations.
func (c *Camera) StartDrag() {
	c.stopAnimation()
	start := c.pos
	c.dragStart = &start
}

// IsAnimating reports whether auto-scroll or kinetic scroll is in progress.
func (c *Camera) IsAnimating() bool {
	return c.auto != nil || c.kin != nil
}

// Stop ends animations leaving camera where it is.
func (c *Camera) Stop() {
	c.stopAnimation()
}

func (c *Camera) stopAnimation() {
	if c.anim != 0 && c.sched != nil {
		c.sched.Remove(c.anim)
	}
	c.anim, c.auto, c.kin = 0, nil, nil
}

func (c *Camera) now() time.Time {
	if c.sched != nil {
		return c.sched.Now()
	}
	return time.Now()
}

func (c *Camera) animate() {
	if c.anim != 0 || c.sched == nil {
		return
	}
	c.anim = c.sched.Add("camera", c.tick)
}

func (c *Camera) tick(now time.Time) bool {
	switch {
	case c.auto != nil:
		c.stepAuto(now)
	case c.kin != nil:
		c.stepKinetic(now)
		c.syncProgress()
	}
	c.onChange()
	if c.auto == nil && c.kin == nil {
		c.anim = 0
		return false
	}
	return true
}
