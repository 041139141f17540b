// Package story models a story as a composition tree: pages made of segments,
// segments made of layers of slices. Discrete navigation between children of
// a pile is driven by StateHandler, continuous navigation inside a page by
// OverflowHandler.
//
// Everything here runs on the engine loop goroutine.
package story

import (
	"time"

	"go.uber.org/zap"

	"divina/camera"
	"divina/common"
	"divina/frame"
	"divina/render"
	"divina/resource"
)

// Env is shared by all nodes of one composition tree.
type Env struct {
	Log                *zap.Logger
	Sched              *frame.Scheduler
	Factory            render.Factory
	Resources          *resource.Manager
	Direction          common.ReadingDirection
	Overflow           common.Overflow
	TransitionDuration time.Duration
	Camera             camera.Config
}

func (e *Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Env) now() time.Time {
	if e.Sched == nil {
		return time.Now()
	}
	return e.Sched.Now()
}

// Node is implemented by *Slice, *Segment, *Page and *LayerPile only.
type Node interface {
	Name() string
	Surface() render.Surface
	Size() common.Size
	// Resize lays node out inside box.
	Resize(box common.Size)
	SetupForEntry(forward bool)
	FinalizeEntry()
	FinalizeExit()
	// ResourceRequests returns resources active part of the node needs.
	ResourceRequests() []resource.Request
	DestroyResourcesIfPossible()
	LoadStatus() common.LoadStatus

	setParent(p *LayerPile)
}
