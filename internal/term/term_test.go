package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jteer/powertop/internal/logger"
)

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewFromScreen(sim, Options{Logger: logger.Noop()})
	require.NoError(t, term.Enter())
	t.Cleanup(term.Exit)
	return term
}

// waitFor drains the stream until an event of the wanted type shows up; the
// simulation screen emits a resize on init that tests should skip past.
func waitFor[T tcell.Event](t *testing.T, term *Terminal) T {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-term.Events():
			if typed, ok := ev.(T); ok {
				return typed
			}
		case <-deadline:
			t.Fatal("no matching event arrived")
		}
	}
}

func TestEventsDeliverPostedInput(t *testing.T) {
	term := newTestTerminal(t)

	require.NoError(t, term.Screen().PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	key := waitFor[*tcell.EventKey](t, term)
	assert.Equal(t, 'q', key.Rune())
}

func TestInterruptWakesReader(t *testing.T) {
	term := newTestTerminal(t)

	term.Interrupt()

	waitFor[*tcell.EventInterrupt](t, term)
}

func TestExitIsIdempotent(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewFromScreen(sim, Options{Logger: logger.Noop()})
	require.NoError(t, term.Enter())

	term.Exit()
	term.Exit()
}

func TestSizeReportsScreenDimensions(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewFromScreen(sim, Options{Logger: logger.Noop()})
	require.NoError(t, term.Enter())
	defer term.Exit()

	sim.SetSize(100, 30)
	cols, rows := term.Size()
	assert.Equal(t, 100, cols)
	assert.Equal(t, 30, rows)
}
