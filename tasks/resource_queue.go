package tasks

import (
	"go.uber.org/zap"

	"divina/common"
)

// NoPage marks load context without page, such tasks get priority 0.
const NoPage = -1

// LoadContext is the data of a resource load task.
type LoadContext struct {
	PageIndex int
}

// ResourceQueue prefers loads nearest to the target page. Distance to pages
// preceding target is multiplied by before factor, so more pages are kept
// resident after reading position than before it.
type ResourceQueue struct {
	*Queue[LoadContext]

	target       int
	beforeFactor float64
}

func NewResourceQueue(mode common.QueueMode, ceiling, beforeFactor float64, log *zap.Logger) *ResourceQueue {
	if beforeFactor <= 0 {
		beforeFactor = 1
	}
	rq := &ResourceQueue{target: NoPage, beforeFactor: beforeFactor}
	rq.Queue = NewQueue(mode, ceiling, rq.priority, log)
	return rq
}

func (rq *ResourceQueue) priority(lc LoadContext) float64 {
	if rq.target == NoPage || lc.PageIndex == NoPage {
		return 0
	}
	d := float64(lc.PageIndex - rq.target)
	if d < 0 {
		return -d * rq.beforeFactor
	}
	return d
}

// Target returns page index priorities are computed against.
func (rq *ResourceQueue) Target() int {
	return rq.target
}

// UpdatePriorities moves target and re-ranks queued tasks without restarting them.
func (rq *ResourceQueue) UpdatePriorities(target int) {
	rq.target = target
	rq.Queue.UpdatePriorities()
}

// PriorityFor returns priority a load for page would get now.
func (rq *ResourceQueue) PriorityFor(page int) float64 {
	return rq.priority(LoadContext{PageIndex: page})
}
