package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jteer/powertop/internal/config"
	"github.com/jteer/powertop/internal/events"
	"github.com/jteer/powertop/internal/logger"
	"github.com/jteer/powertop/internal/sysinfo"
	"github.com/jteer/powertop/internal/term"
)

// fixedProvider returns the same snapshot-worth of data every cycle.
type fixedProvider struct{}

func (fixedProvider) Refresh(context.Context) {}

func (fixedProvider) CPU(context.Context) ([]sysinfo.CPUData, error) {
	return []sysinfo.CPUData{
		{Name: "cpu0", Brand: "Test CPU", UsagePercent: 25},
		{Name: "cpu1", Brand: "Test CPU", UsagePercent: 75},
	}, nil
}

func (fixedProvider) Processes(context.Context) ([]sysinfo.ProcessData, error) {
	return []sysinfo.ProcessData{
		{PID: 1, Name: "init", Status: "sleeping", CPUUsage: 0.1},
		{PID: 42, Name: "busy", Status: "running", CPUUsage: 88},
	}, nil
}

func (fixedProvider) Memory(context.Context) (*sysinfo.MemoryData, error) {
	return &sysinfo.MemoryData{FreeRAM: 4 << 30, TotalRAM: 16 << 30, FreeSwap: 1 << 30, TotalSwap: 2 << 30}, nil
}

func (fixedProvider) Disks(context.Context) ([]sysinfo.DiskData, error) {
	return []sysinfo.DiskData{{Name: "sda1", Kind: "SSD", TotalBytes: 500 << 30, AvailableBytes: 100 << 30, MountPath: "/"}}, nil
}

func (fixedProvider) Networks(context.Context) ([]sysinfo.NetworkData, error) {
	return []sysinfo.NetworkData{{Interface: "eth0", Received: 1500, Transmitted: 600}}, nil
}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	cfg := config.Default()
	cfg.PollInterval = 10 * time.Millisecond
	cfg.TickRate = 100
	cfg.FrameRate = 100
	tty := term.NewFromScreen(sim, term.Options{Logger: logger.Noop()})
	return newApp(cfg, tty, fixedProvider{}, logger.Noop()), sim
}

func runApp(t *testing.T, app *App) chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}

func waitExit(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit")
		return nil
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	app, sim := newTestApp(t)
	done := runApp(t, app)

	// Give the input loop a moment to come up before injecting the key.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	assert.NoError(t, waitExit(t, done))
}

func TestRunQuitsOnCtrlC(t *testing.T) {
	app, sim := newTestApp(t)
	done := runApp(t, app)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, sim.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))

	assert.NoError(t, waitExit(t, done))
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.NoError(t, waitExit(t, done))
}

func TestSnapshotFlowsIntoAggregators(t *testing.T) {
	app, _ := newTestApp(t)

	app.applySnapshot(events.DataUpdate{Snapshot: &sysinfo.Snapshot{
		CPU:      []sysinfo.CPUData{{Name: "cpu0", UsagePercent: 60}},
		Memory:   &sysinfo.MemoryData{FreeRAM: 1, TotalRAM: 4},
		Networks: []sysinfo.NetworkData{{Interface: "eth0", Received: 10, Transmitted: 5}},
		Processes: []sysinfo.ProcessData{
			{PID: 9, Name: "a", CPUUsage: 1},
		},
	}})

	assert.Equal(t, []string{"cpu0"}, app.cpu.Cores())
	assert.Equal(t, 1, app.mem.RAM.Len())
	assert.Equal(t, uint64(10), app.net.TotalReceived)
	assert.Len(t, app.procs, 1)
}

func TestSnapshotWithAbsentSubsystemsKeepsPriorTables(t *testing.T) {
	app, _ := newTestApp(t)

	app.applySnapshot(events.DataUpdate{Snapshot: &sysinfo.Snapshot{
		Processes: []sysinfo.ProcessData{{PID: 1, Name: "init"}},
		Disks:     []sysinfo.DiskData{{Name: "sda"}},
	}})
	app.applySnapshot(events.DataUpdate{Snapshot: &sysinfo.Snapshot{}})

	assert.Len(t, app.procs, 1, "stale table beats an empty flicker")
	assert.Len(t, app.disks, 1)
}

func TestKeyToggleSwitchesChartMode(t *testing.T) {
	app, _ := newTestApp(t)

	require.False(t, app.barMode)
	quit, err := app.handleKey(events.Key{Key: tcell.KeyRune, Rune: 'g'})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, app.barMode)

	_, err = app.handleKey(events.Key{Key: tcell.KeyRune, Rune: 'g'})
	require.NoError(t, err)
	assert.False(t, app.barMode)
}

func TestDrawWithNoDataDoesNotPanic(t *testing.T) {
	app, sim := newTestApp(t)
	require.NoError(t, app.term.Enter())
	defer app.term.Exit()
	sim.SetSize(80, 24)

	app.draw()
}

func TestDrawWithPopulatedData(t *testing.T) {
	app, sim := newTestApp(t)
	require.NoError(t, app.term.Enter())
	defer app.term.Exit()
	sim.SetSize(120, 40)

	for i := 0; i < 30; i++ {
		app.applySnapshot(events.DataUpdate{Snapshot: &sysinfo.Snapshot{
			CPU: []sysinfo.CPUData{
				{Name: "cpu0", Brand: "Test CPU", UsagePercent: float64(i * 3)},
				{Name: "cpu1", Brand: "Test CPU", UsagePercent: 95},
			},
			Memory:    &sysinfo.MemoryData{FreeRAM: 1 << 30, TotalRAM: 8 << 30},
			Networks:  []sysinfo.NetworkData{{Interface: "eth0", Received: 4096, Transmitted: 1024}},
			Processes: []sysinfo.ProcessData{{PID: 7, Name: "worker", Status: "running", CPUUsage: 42}},
			Disks:     []sysinfo.DiskData{{Name: "nvme0n1p1", Kind: "SSD", TotalBytes: 1 << 40, AvailableBytes: 1 << 39, MountPath: "/"}},
		}})
	}

	app.draw()
	app.barMode = true
	app.draw()
}

func TestTopProcessesSortsByUsage(t *testing.T) {
	procs := []sysinfo.ProcessData{
		{PID: 1, CPUUsage: 5},
		{PID: 2, CPUUsage: 90},
		{PID: 3, CPUUsage: 90},
		{PID: 4, CPUUsage: 20},
	}

	top := topProcesses(procs, 3)

	require.Len(t, top, 3)
	assert.Equal(t, int32(2), top[0].PID, "equal usage breaks ties by pid")
	assert.Equal(t, int32(3), top[1].PID)
	assert.Equal(t, int32(4), top[2].PID)
	// input order untouched
	assert.Equal(t, int32(1), procs[0].PID)
}

func TestAverageCPUAcrossCores(t *testing.T) {
	app, _ := newTestApp(t)
	app.applySnapshot(events.DataUpdate{Snapshot: &sysinfo.Snapshot{
		CPU: []sysinfo.CPUData{
			{Name: "cpu0", UsagePercent: 40},
			{Name: "cpu1", UsagePercent: 60},
		},
	}})

	assert.Equal(t, []float64{50}, app.averageCPU())
}
