package story

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"divina/frame"
)

type changeStatus int

const (
	statusNone changeStatus = iota
	statusInitiated
	statusLooping
	statusControlled
)

// stateChange is a state change in flight.
type stateChange struct {
	from, to    int
	forward     bool
	status      changeStatus
	transitions []*LayerTransition
	start       time.Time
	duration    time.Duration
	percent     float64
	handle      frame.Handle
	onEnd       func(committed bool)
}

// StateHandler drives discrete navigation between states of a pile. At most
// one change is in flight, a new request first forces it to its end.
type StateHandler struct {
	pile    *LayerPile
	log     *zap.Logger
	regime  Regime
	states  [][]int
	current int
	change  *stateChange
}

func newStateHandler(p *LayerPile, regime Regime) *StateHandler {
	h := &StateHandler{pile: p, log: p.log, regime: regime, current: -1}
	switch regime {
	case RegimeLayer:
		// a discontinuous layer starts new group, first layer always does
		for i, l := range p.layers {
			if i == 0 || l.discontinuous {
				h.states = append(h.states, []int{i})
				continue
			}
			last := len(h.states) - 1
			h.states[last] = append(h.states[last], i)
		}
	default:
		for i := range p.layers {
			h.states = append(h.states, []int{i})
		}
	}
	return h
}

func (h *StateHandler) Regime() Regime { return h.regime }

// Len returns number of states.
func (h *StateHandler) Len() int { return len(h.states) }

// Current returns index of current state, -1 before first entry.
func (h *StateHandler) Current() int { return h.current }

// Target returns index of state being entered, or current one when idle.
func (h *StateHandler) Target() int {
	if h.change != nil {
		return h.change.to
	}
	return h.current
}

// IsUndergoingChanges reports whether a change is in flight.
func (h *StateHandler) IsUndergoingChanges() bool { return h.change != nil }

// IsControlled reports whether change in flight is driven by gesture.
func (h *StateHandler) IsControlled() bool {
	return h.change != nil && h.change.status == statusControlled
}

// Transitions returns layer transitions of the change in flight.
func (h *StateHandler) Transitions() []*LayerTransition {
	if h.change == nil {
		return nil
	}
	return h.change.transitions
}

// stateLayers returns indices of layers shown in state s.
func (h *StateHandler) stateLayers(s int) []int {
	if s < 0 {
		return nil
	}
	if h.regime != RegimeLayer {
		return h.states[s]
	}
	var idx []int
	for _, g := range h.states[:s+1] {
		idx = append(idx, g...)
	}
	return idx
}

func (h *StateHandler) activeIndices() []int {
	cur := h.current
	if cur < 0 {
		cur = 0
	}
	idx := h.stateLayers(cur)
	if h.change != nil {
		for _, i := range h.stateLayers(h.change.to) {
			if !slices.Contains(idx, i) {
				idx = append(idx, i)
			}
		}
		slices.Sort(idx)
	}
	return idx
}

// upcoming returns layers of the group following target state, layer regime
// only.
func (h *StateHandler) upcoming() []int {
	if h.regime != RegimeLayer {
		return nil
	}
	next := max(h.Target(), 0) + 1
	if next >= len(h.states) {
		return nil
	}
	return h.states[next]
}

// GoToState starts change to state index. With skip set every layer is cut
// in or out, controlled change waits for GoToIntermediateState and
// EndControlled instead of running on scheduler. onEnd (may be nil) is called
// once change is committed or cancelled. It returns false when nothing was
// started.
func (h *StateHandler) GoToState(index int, forward, skip, controlled bool, onEnd func(committed bool)) bool {
	if index < 0 || index >= len(h.states) {
		h.log.Debug("Ignoring state change out of range", zap.Int("index", index), zap.Int("states", len(h.states)))
		return false
	}
	if h.change != nil {
		h.ForceChangesToEnd()
	}
	if index == h.current {
		return false
	}

	from := h.current
	ch := &stateChange{from: from, to: index, forward: forward, onEnd: onEnd, start: h.pile.env.now()}

	before, after := h.stateLayers(from), h.stateLayers(index)
	for _, i := range before {
		if !slices.Contains(after, i) {
			ch.transitions = append(ch.transitions, newLayerTransition(h.pile.layers[i], h.exitHalf(i, ch, skip), false))
		}
	}
	for _, i := range after {
		if !slices.Contains(before, i) {
			l := h.pile.layers[i]
			l.Content.SetupForEntry(forward)
			ch.transitions = append(ch.transitions, newLayerTransition(l, h.entryHalf(i, ch, skip), true))
		}
	}
	for _, lt := range ch.transitions {
		ch.duration = max(ch.duration, lt.duration())
	}

	h.change = ch
	for _, lt := range ch.transitions {
		lt.begin()
	}
	h.pile.UpdateLoadStatus()

	switch {
	case controlled:
		ch.status = statusControlled
	case ch.duration <= 0:
		h.end()
	default:
		ch.status = statusInitiated
		ch.handle = h.pile.env.Sched.Add(h.pile.name+" state", h.tick)
	}
	return true
}

// group returns state group layer i belongs to.
func (h *StateHandler) group(i int) int {
	for g, idx := range h.states {
		if slices.Contains(idx, i) {
			return g
		}
	}
	return -1
}

func (h *StateHandler) entryHalf(i int, ch *stateChange, skip bool) *Half {
	if skip || ch.from < 0 {
		return cut
	}
	if h.regime == RegimeLayer {
		// intermediate groups are fast-forwarded
		if h.group(i) != ch.to || !ch.forward {
			return cut
		}
		return h.pile.layers[i].EntryForward
	}
	if ch.forward {
		return h.pile.layers[ch.to].EntryForward
	}
	return h.pile.layers[ch.from].EntryBackward
}

func (h *StateHandler) exitHalf(i int, ch *stateChange, skip bool) *Half {
	if skip {
		return cut
	}
	if h.regime == RegimeLayer {
		if h.group(i) != ch.from || ch.forward {
			return cut
		}
		return h.pile.layers[i].ExitBackward
	}
	if ch.forward {
		return h.pile.layers[ch.to].ExitForward
	}
	return h.pile.layers[ch.from].ExitBackward
}

func (h *StateHandler) tick(now time.Time) bool {
	ch := h.change
	if ch == nil || ch.status == statusControlled {
		return false
	}
	ch.status = statusLooping
	elapsed := now.Sub(ch.start)
	for _, lt := range ch.transitions {
		lt.apply(lt.progress(elapsed))
	}
	if elapsed >= ch.duration {
		h.end()
		return false
	}
	return true
}

// GoToIntermediateState moves controlled change to percent.
func (h *StateHandler) GoToIntermediateState(percent float64) {
	ch := h.change
	if ch == nil || ch.status != statusControlled {
		return
	}
	ch.percent = min(1, max(0, percent))
	for _, lt := range ch.transitions {
		lt.apply(ch.percent)
	}
}

// EndControlled commits controlled change when it went at least half way and
// cancels it otherwise.
func (h *StateHandler) EndControlled() {
	ch := h.change
	if ch == nil || ch.status != statusControlled {
		return
	}
	if ch.percent >= 0.5 {
		h.end()
	} else {
		h.Cancel()
	}
}

// ForceChangesToEnd commits change in flight immediately. Calling it with no
// change in flight does nothing.
func (h *StateHandler) ForceChangesToEnd() {
	if h.change != nil {
		h.end()
	}
}

func (h *StateHandler) end() {
	ch := h.change
	h.change = nil
	if ch.handle != 0 {
		h.pile.env.Sched.Remove(ch.handle)
	}
	for _, lt := range ch.transitions {
		lt.finish()
	}
	h.current = ch.to
	h.pile.stateChanged(ch.from, ch.to)
	if ch.onEnd != nil {
		ch.onEnd(true)
	}
}

// Cancel reverts change in flight leaving current state as it was.
func (h *StateHandler) Cancel() {
	ch := h.change
	if ch == nil {
		return
	}
	h.change = nil
	if ch.handle != 0 {
		h.pile.env.Sched.Remove(ch.handle)
	}
	for _, lt := range ch.transitions {
		lt.revert()
	}
	h.pile.UpdateLoadStatus()
	if ch.onEnd != nil {
		ch.onEnd(false)
	}
}

// GoForward moves to the next state.
func (h *StateHandler) GoForward(onEnd func(committed bool)) bool {
	h.ForceChangesToEnd()
	return h.GoToState(h.current+1, true, false, false, onEnd)
}

// GoBackward moves to the previous state.
func (h *StateHandler) GoBackward(onEnd func(committed bool)) bool {
	h.ForceChangesToEnd()
	if h.current <= 0 {
		return false
	}
	return h.GoToState(h.current-1, false, false, false, onEnd)
}

// setupForEntry silently moves to the first state when entering forward and
// to the last one otherwise.
func (h *StateHandler) setupForEntry(forward bool) {
	h.ForceChangesToEnd()
	target := 0
	if !forward {
		target = len(h.states) - 1
	}
	if h.current == target {
		return
	}
	h.GoToState(target, forward, true, false, nil)
}
