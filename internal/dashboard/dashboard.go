// Package dashboard is the interactive powertop view: it consumes the
// scheduler's event stream, folds snapshots into the metric aggregators,
// and redraws the screen on every render event.
package dashboard

import (
	"context"
	stderrors "errors"

	"github.com/gdamore/tcell/v2"

	"github.com/jteer/powertop/internal/collector"
	"github.com/jteer/powertop/internal/config"
	"github.com/jteer/powertop/internal/events"
	"github.com/jteer/powertop/internal/logger"
	"github.com/jteer/powertop/internal/metrics"
	"github.com/jteer/powertop/internal/sysinfo"
	"github.com/jteer/powertop/internal/term"
)

// App wires the terminal, scheduler, and aggregators together and owns the
// consumer loop.
type App struct {
	cfg   config.Config
	term  *term.Terminal
	sched *events.Scheduler
	log   logger.Logger

	cpu *metrics.CPU
	mem *metrics.Memory
	net *metrics.Network

	// latest tabular data, straight from the newest snapshot
	procs []sysinfo.ProcessData
	disks []sysinfo.DiskData

	// barMode switches the cpu panel from the braille chart to per-core
	// bars. Toggled with 'g'.
	barMode bool
	focused bool
}

// New assembles an App from configuration. The terminal stays untouched
// until Run.
func New(cfg config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Default()
	}
	tty, err := term.New(term.Options{Mouse: cfg.Mouse, Paste: cfg.Paste, Logger: log})
	if err != nil {
		return nil, err
	}
	return newApp(cfg, tty, sysinfo.NewGopsutilProvider(), log), nil
}

// newApp finishes construction with an injectable terminal and provider.
func newApp(cfg config.Config, tty *term.Terminal, provider sysinfo.Provider, log logger.Logger) *App {
	loop := collector.New(provider, cfg.PollInterval, log)
	sched := events.New(tty, loop, events.Options{
		TickRate:  cfg.TickRate,
		FrameRate: cfg.FrameRate,
		Logger:    log,
	})
	return &App{
		cfg:     cfg,
		term:    tty,
		sched:   sched,
		log:     log,
		cpu:     metrics.NewCPU(cfg.Windows.CPU),
		mem:     metrics.NewMemory(cfg.Windows.Memory),
		net:     metrics.NewNetwork(cfg.Windows.Network),
		focused: true,
	}
}

// Run enters the terminal, starts the producers, and consumes events until
// the user quits or ctx expires. The terminal is restored on every path out.
func (a *App) Run(ctx context.Context) error {
	if err := a.term.Enter(); err != nil {
		return err
	}
	defer a.term.Exit()

	a.sched.Start()
	defer func() {
		if err := a.sched.Stop(); err != nil {
			a.log.Error("shutdown: %v", err)
		}
		a.sched.Close()
		a.log.Debug("exited with %d undrained events", a.sched.Pending())
	}()

	for {
		ev, err := a.sched.Next(ctx)
		if err != nil {
			if stderrors.Is(err, events.ErrClosed) || stderrors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		quit, err := a.handle(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (a *App) handle(ev events.Event) (quit bool, err error) {
	switch e := ev.(type) {
	case events.Init:
		a.term.Screen().Clear()

	case events.Key:
		return a.handleKey(e)

	case events.Resize:
		a.term.Screen().Sync()

	case events.DataUpdate:
		a.applySnapshot(e)

	case events.Render:
		a.draw()

	case events.Tick:
		// Logic cadence. Nothing periodic beyond collection yet.

	case events.FocusGained:
		a.focused = true

	case events.FocusLost:
		a.focused = false

	case events.Paste:
		a.log.Debug("ignoring %d pasted bytes", len(e.Text))

	case events.Mouse:
		// Reserved; mouse reporting is opt-in and currently display only.

	case events.Error:
		a.log.Warn("input: %v", e.Err)

	case events.Quit, events.Closed:
		return true, nil
	}
	return false, nil
}

func (a *App) handleKey(key events.Key) (bool, error) {
	switch key.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyCtrlZ:
		return false, a.suspend()
	case tcell.KeyRune:
		switch key.Rune {
		case 'q', 'Q':
			return true, nil
		case 'g':
			a.barMode = !a.barMode
		}
	}
	return false, nil
}

// suspend stops the producers, hands the terminal to the shell until the
// process is foregrounded again, then restarts everything.
func (a *App) suspend() error {
	if err := a.sched.Suspend(); err != nil {
		return err
	}
	if err := a.term.Suspend(); err != nil {
		return err
	}
	a.sched.Resume()
	a.term.Screen().Sync()
	return nil
}

func (a *App) applySnapshot(upd events.DataUpdate) {
	a.cpu.Apply(upd)
	a.mem.Apply(upd)
	a.net.Apply(upd)

	if upd.Snapshot == nil {
		return
	}
	if upd.Snapshot.Processes != nil {
		a.procs = upd.Snapshot.Processes
	}
	if upd.Snapshot.Disks != nil {
		a.disks = upd.Snapshot.Disks
	}
}
