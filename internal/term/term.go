// Package term owns the terminal: raw mode, the alternate screen, mouse and
// bracketed paste reporting, and the raw event stream the scheduler's input
// loop consumes. Teardown is always attempted so a crash in the dashboard
// does not leave the user's shell in raw mode.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jteer/powertop/internal/errors"
	"github.com/jteer/powertop/internal/logger"
)

// Options selects which optional terminal modes Enter switches on.
type Options struct {
	Mouse  bool
	Paste  bool
	Logger logger.Logger
}

// Terminal wraps a tcell screen. It satisfies the scheduler's input source
// contract: Events delivers raw events and Interrupt wakes a blocked read.
type Terminal struct {
	screen tcell.Screen
	opts   Options
	events chan tcell.Event
	quit   chan struct{}
	log    logger.Logger
}

// New allocates a terminal over the process's tty. The screen stays in
// cooked mode until Enter.
func New(opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTerm,
			"failed to open the terminal",
			"Run powertop from an interactive terminal. Use 'powertop snapshot' for non-interactive output.")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &Terminal{screen: screen, opts: opts, log: opts.Logger}, nil
}

// NewFromScreen wraps an existing screen, typically tcell's simulation
// screen in tests.
func NewFromScreen(screen tcell.Screen, opts Options) *Terminal {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &Terminal{screen: screen, opts: opts, log: opts.Logger}
}

// Enter switches to raw mode on the alternate screen and starts the event
// pump.
func (t *Terminal) Enter() error {
	if err := t.screen.Init(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerm, "failed to initialize the terminal", "")
	}
	if t.opts.Mouse {
		t.screen.EnableMouse()
	}
	if t.opts.Paste {
		t.screen.EnablePaste()
	}
	t.screen.EnableFocus()

	t.events = make(chan tcell.Event, 16)
	t.quit = make(chan struct{})
	go t.screen.ChannelEvents(t.events, t.quit)
	return nil
}

// Exit restores the terminal. Safe to call more than once and on a terminal
// that never entered raw mode.
func (t *Terminal) Exit() {
	if t.quit != nil {
		select {
		case <-t.quit:
		default:
			close(t.quit)
		}
	}
	t.screen.Fini()
}

// Suspend hands the terminal back to the shell and stops the process. When
// the shell foregrounds it again, the screen is re-acquired before Suspend
// returns.
func (t *Terminal) Suspend() error {
	if err := t.screen.Suspend(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerm, "failed to release the terminal", "")
	}
	if err := stopProcess(); err != nil {
		// Could not stop; take the screen back rather than strand the user.
		t.log.Warn("suspend failed: %v", err)
		return t.screen.Resume()
	}
	// Execution continues here once the process is foregrounded.
	if err := t.screen.Resume(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerm, "failed to re-acquire the terminal", "")
	}
	return nil
}

// Events exposes the raw event stream. Valid between Enter and Exit.
func (t *Terminal) Events() <-chan tcell.Event {
	return t.events
}

// Interrupt posts a wake-up event so a shutdown can unblock the input loop
// even when the user is not typing.
func (t *Terminal) Interrupt() {
	if err := t.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		t.log.Debug("interrupt post dropped: %v", err)
	}
}

// Screen exposes the underlying tcell screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the current dimensions in cells.
func (t *Terminal) Size() (cols, rows int) {
	return t.screen.Size()
}
