// Package collector runs the data collection loop: on a fixed cadence it
// refreshes the system information provider, extracts each subsystem
// independently, and publishes the resulting snapshot. A subsystem that
// fails on one cycle is logged and left absent from that snapshot; the other
// subsystems still go out.
package collector

import (
	"context"
	"time"

	"github.com/jteer/powertop/internal/logger"
	"github.com/jteer/powertop/internal/sysinfo"
)

// DefaultInterval is the collection cadence when none is configured.
const DefaultInterval = time.Second

// Loop owns one provider and drives it on its own goroutine. The provider
// is never touched from anywhere else while the loop runs, so providers do
// not need internal locking.
type Loop struct {
	provider sysinfo.Provider
	interval time.Duration
	log      logger.Logger
}

// New builds a Loop. A non-positive interval falls back to DefaultInterval.
func New(provider sysinfo.Provider, interval time.Duration, log logger.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Default()
	}
	return &Loop{provider: provider, interval: interval, log: log}
}

// Run collects until ctx is cancelled or publish rejects a snapshot, which
// means the consumer is gone and the loop should wind down silently.
func (l *Loop) Run(ctx context.Context, publish func(*sysinfo.Snapshot) bool) {
	for {
		if ctx.Err() != nil {
			return
		}

		l.provider.Refresh(ctx)

		if !publish(l.collect(ctx)) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.interval):
		}
	}
}

// collect builds one snapshot. Each subsystem is extracted on its own so a
// failure in one leaves the others intact; failed subsystems stay nil.
func (l *Loop) collect(ctx context.Context) *sysinfo.Snapshot {
	snap := &sysinfo.Snapshot{}

	if cpus, err := l.provider.CPU(ctx); err != nil {
		l.log.Warn("collecting cpu data failed: %v", err)
	} else {
		snap.CPU = cpus
	}

	if procs, err := l.provider.Processes(ctx); err != nil {
		l.log.Warn("collecting process data failed: %v", err)
	} else {
		snap.Processes = procs
	}

	if mem, err := l.provider.Memory(ctx); err != nil {
		l.log.Warn("collecting memory data failed: %v", err)
	} else {
		snap.Memory = mem
	}

	if disks, err := l.provider.Disks(ctx); err != nil {
		l.log.Warn("collecting disk data failed: %v", err)
	} else {
		snap.Disks = disks
	}

	if nets, err := l.provider.Networks(ctx); err != nil {
		l.log.Warn("collecting network data failed: %v", err)
	} else {
		snap.Networks = nets
	}

	return snap
}
