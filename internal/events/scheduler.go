package events

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jteer/powertop/internal/errors"
	"github.com/jteer/powertop/internal/logger"
	"github.com/jteer/powertop/internal/sysinfo"
)

const (
	// stopPollInterval is how often Stop re-checks a task that has not
	// finished yet.
	stopPollInterval = time.Millisecond

	// stopMaxRetries bounds the polling in Stop. Halfway through, the task
	// is forcibly aborted rather than waited on.
	stopMaxRetries = 10
)

// InputSource delivers raw terminal events to the input loop.
//
// Events must block between events and stay valid until the source is torn
// down; the channel closing means the source has failed permanently.
// Interrupt wakes a reader blocked inside the source so a forced abort can
// make progress even when no input is arriving.
type InputSource interface {
	Events() <-chan tcell.Event
	Interrupt()
}

// Collector runs the data collection loop. Run must return when ctx is
// cancelled or when publish reports that the queue no longer accepts
// snapshots.
type Collector interface {
	Run(ctx context.Context, publish func(*sysinfo.Snapshot) bool)
}

// Options configures a Scheduler. Zero-valued rates fall back to the
// defaults below.
type Options struct {
	// TickRate is logic timer frequency in events per second.
	TickRate float64
	// FrameRate is render timer frequency in events per second.
	FrameRate float64
	Logger    logger.Logger
}

const (
	defaultTickRate  = 4.0
	defaultFrameRate = 60.0
)

// Scheduler owns the event queue and the two producer tasks. Start and Stop
// may be called repeatedly; the queue survives restarts so undrained events
// are not lost across a suspend.
type Scheduler struct {
	source    InputSource
	collector Collector
	queue     *queue
	log       logger.Logger

	tickInterval  time.Duration
	frameInterval time.Duration

	cancel context.CancelFunc
	input  *task
	data   *task
}

// task tracks one producer goroutine so Stop can poll for completion and
// escalate to a forced abort.
type task struct {
	name string
	done chan struct{}
	// abort is closed to demand immediate exit regardless of queue state.
	abort     chan struct{}
	aborted   atomic.Bool
	finished  atomic.Bool
	interrupt func()
}

// forceAbort closes the abort channel exactly once, so a repeated Stop on a
// stuck task re-reports the timeout instead of re-closing the channel.
func (t *task) forceAbort() {
	if !t.aborted.CompareAndSwap(false, true) {
		return
	}
	close(t.abort)
	if t.interrupt != nil {
		t.interrupt()
	}
}

func (t *task) markDone() {
	t.finished.Store(true)
	close(t.done)
}

// New builds a Scheduler over the given input source and collector. Neither
// task runs until Start.
func New(source InputSource, collector Collector, opts Options) *Scheduler {
	if opts.TickRate <= 0 {
		opts.TickRate = defaultTickRate
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = defaultFrameRate
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Scheduler{
		source:        source,
		collector:     collector,
		queue:         newQueue(),
		log:           log,
		tickInterval:  time.Duration(float64(time.Second) / opts.TickRate),
		frameInterval: time.Duration(float64(time.Second) / opts.FrameRate),
	}
}

// Start launches a fresh session. Any prior session is cancelled first; its
// tasks wind down on their own while the new ones take over the queue.
func (s *Scheduler) Start() {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.input = &task{
		name:      "input",
		done:      make(chan struct{}),
		abort:     make(chan struct{}),
		interrupt: s.source.Interrupt,
	}
	s.data = &task{
		name:  "data collection",
		done:  make(chan struct{}),
		abort: make(chan struct{}),
	}

	go s.runInput(ctx, s.input)
	go s.runData(ctx, s.data)
}

// Next blocks until an event is available and returns it in insertion order.
// It returns ErrClosed once the queue is closed and drained, and ctx.Err()
// if the caller's context expires first.
func (s *Scheduler) Next(ctx context.Context) (Event, error) {
	return s.queue.pop(ctx)
}

// Stop cancels the session and waits for both producers to finish. A task
// still running after half the retry budget is forcibly aborted; one still
// running after the full budget produces an error naming the bound.
func (s *Scheduler) Stop() error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	for _, t := range []*task{s.data, s.input} {
		if err := awaitTask(t); err != nil {
			return err
		}
	}
	return nil
}

func awaitTask(t *task) error {
	if t == nil {
		return nil
	}
	for retries := 0; ; retries++ {
		if t.finished.Load() {
			return nil
		}
		if retries == stopMaxRetries/2 {
			// The cooperative cancel has not landed. Demand exit and kick
			// any blocked read.
			t.forceAbort()
		}
		if retries >= stopMaxRetries {
			return errors.New(errors.ErrEvents,
				fmt.Sprintf("failed to stop %s task within %d ms", t.name, stopMaxRetries),
				"This is a bug; the task is leaked. Restarting the process is the only recovery.")
		}
		time.Sleep(stopPollInterval)
	}
}

// Suspend stops the producers ahead of handing the terminal back to the
// shell. The queue keeps any undrained events.
func (s *Scheduler) Suspend() error {
	return s.Stop()
}

// Resume relaunches the producers after a Suspend.
func (s *Scheduler) Resume() {
	s.Start()
}

// Close permanently shuts the queue. Producers discover this on their next
// push and terminate; Next drains what remains and then reports ErrClosed.
func (s *Scheduler) Close() {
	s.queue.close()
}

// runInput is the input producer. It enqueues Init first, then multiplexes
// the raw input source against the tick and render timers without priority
// between them.
func (s *Scheduler) runInput(ctx context.Context, t *task) {
	defer t.markDone()

	if !s.queue.push(Init{}) {
		return
	}

	tick := time.NewTicker(s.tickInterval)
	defer tick.Stop()
	render := time.NewTicker(s.frameInterval)
	defer render.Stop()

	var dec decoder
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.abort:
			return
		case raw, ok := <-s.source.Events():
			if !ok {
				s.log.Warn("input source closed, input loop exiting")
				return
			}
			ev, emit := dec.decode(raw)
			if !emit {
				continue
			}
			if !s.queue.push(ev) {
				return
			}
		case <-tick.C:
			if !s.queue.push(Tick{}) {
				return
			}
		case <-render.C:
			if !s.queue.push(Render{}) {
				return
			}
		}
	}
}

// runData drives the collector, bridging its publish callback onto the
// queue. A failed publish means the queue is closed, which the collector
// treats as its cue to stop.
func (s *Scheduler) runData(ctx context.Context, t *task) {
	defer t.markDone()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-t.abort:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.collector.Run(ctx, func(snap *sysinfo.Snapshot) bool {
		return s.queue.push(DataUpdate{Snapshot: snap})
	})
}

// Pending reports how many events are queued but not yet consumed. Used by
// tests and the debug log line on shutdown.
func (s *Scheduler) Pending() int {
	return s.queue.len()
}
