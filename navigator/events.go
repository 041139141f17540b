package navigator

import (
	"fmt"
	"strings"

	"divina/common"
)

// Event is emitted by navigator and reader to the host.
type Event interface {
	// Name is a short stable event identifier.
	Name() string
	// Details describes event payload in human readable form.
	Details() string
}

// Listener receives events on engine loop, it must not block.
type Listener func(Event)

type PageChange struct {
	PageIndex int
	NbOfPages int
}

func (PageChange) Name() string { return "pagechange" }

func (e PageChange) Details() string {
	return fmt.Sprintf("%d/%d", e.PageIndex+1, e.NbOfPages)
}

type PageLoadStatusUpdate struct {
	PageIndex int
	Status    common.LoadStatus
}

func (PageLoadStatusUpdate) Name() string { return "pageloadstatusupdate" }

func (e PageLoadStatusUpdate) Details() string {
	return fmt.Sprintf("page=%d status=%s", e.PageIndex, e.Status)
}

type ReadingModeChange struct {
	Mode common.ReadingMode
}

func (ReadingModeChange) Name() string { return "readingmodechange" }

func (e ReadingModeChange) Details() string { return e.Mode.String() }

// ReadingModesUpdate lists modes the story can be read in.
type ReadingModesUpdate struct {
	Modes []common.ReadingMode
}

func (ReadingModesUpdate) Name() string { return "readingmodesupdate" }

func (e ReadingModesUpdate) Details() string {
	names := make([]string, len(e.Modes))
	for i, m := range e.Modes {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}

// InitialLoadProgress reports loads requested before the reader started.
type InitialLoadProgress struct {
	Done, Total int
}

func (InitialLoadProgress) Name() string { return "initialloadprogress" }

func (e InitialLoadProgress) Details() string {
	return fmt.Sprintf("%d/%d", e.Done, e.Total)
}
