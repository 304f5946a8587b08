// Package events implements the event scheduler at the center of powertop:
// it merges terminal input, a tick timer, a render timer, and snapshots from
// the data collection loop into one insertion-ordered queue consumed through
// a single pull operation, and owns the lifecycle of the two background
// tasks that produce into it.
package events

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jteer/powertop/internal/sysinfo"
)

// Event is the closed set of occurrences the scheduler delivers. Exactly one
// variant is carried per queue entry. Within one producer task events are
// delivered in generation order; across producers no relative order is
// guaranteed.
type Event interface {
	isEvent()
}

// Init is the first event of every session, enqueued before the input loop
// waits on anything else.
type Init struct{}

// Quit asks the consumer to shut down. Reserved for consumers that re-enqueue
// their own control flow; the scheduler's producers never emit it.
type Quit struct{}

// Error reports a raw input event that could not be decoded. The input loop
// keeps running after emitting one.
type Error struct {
	Err error
}

// Closed is delivered by consumers that translate end-of-stream into an
// event. The scheduler itself signals end-of-stream via ErrClosed from Next.
type Closed struct{}

// Tick is the fixed-period logic timer.
type Tick struct{}

// Render is the fixed-period draw timer, distinct from Tick so expensive
// collection and cheap redraws can run at different rates.
type Render struct{}

// FocusGained reports the terminal gaining focus.
type FocusGained struct{}

// FocusLost reports the terminal losing focus.
type FocusLost struct{}

// Paste carries the complete text of one bracketed paste.
type Paste struct {
	Text string
}

// Key is one decoded key press.
type Key struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Mouse is one decoded mouse action.
type Mouse struct {
	X       int
	Y       int
	Buttons tcell.ButtonMask
	Mod     tcell.ModMask
}

// Resize reports the new terminal dimensions in cells.
type Resize struct {
	Cols int
	Rows int
}

// DataUpdate carries one collection cycle's snapshot. The snapshot is owned
// by the receiver once dequeued; producers never touch it again.
type DataUpdate struct {
	Snapshot *sysinfo.Snapshot
}

func (Init) isEvent()        {}
func (Quit) isEvent()        {}
func (Error) isEvent()       {}
func (Closed) isEvent()      {}
func (Tick) isEvent()        {}
func (Render) isEvent()      {}
func (FocusGained) isEvent() {}
func (FocusLost) isEvent()   {}
func (Paste) isEvent()       {}
func (Key) isEvent()         {}
func (Mouse) isEvent()       {}
func (Resize) isEvent()      {}
func (DataUpdate) isEvent()  {}
