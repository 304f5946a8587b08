package metrics

import (
	"sort"

	"github.com/jteer/powertop/internal/events"
	"github.com/jteer/powertop/internal/sysinfo"
)

// Default window capacities, chosen to fit the dashboard's chart widths.
const (
	DefaultCPUWindow     = 50
	DefaultMemoryWindow  = 10
	DefaultNetworkWindow = 25
)

// Aggregator folds events into chart state. Implementations ignore every
// event variant they do not care about, so the dashboard can fan each event
// out to all aggregators unconditionally.
type Aggregator interface {
	Apply(ev events.Event)
}

// CPU tracks one usage window per core plus the peak usage ever observed.
type CPU struct {
	capacity int
	cores    map[string]*Window
	order    []string

	// MaxUsage is the highest single-core usage seen since startup. It
	// never decreases.
	MaxUsage float64

	// Latest is the most recent per-core reading, for tabular display.
	Latest []sysinfo.CPUData
}

// NewCPU returns a CPU aggregator with the given per-core window capacity.
func NewCPU(capacity int) *CPU {
	if capacity < 1 {
		capacity = DefaultCPUWindow
	}
	return &CPU{capacity: capacity, cores: make(map[string]*Window)}
}

func (c *CPU) Apply(ev events.Event) {
	upd, ok := ev.(events.DataUpdate)
	if !ok || upd.Snapshot == nil || upd.Snapshot.CPU == nil {
		return
	}
	for _, core := range upd.Snapshot.CPU {
		w := c.cores[core.Name]
		if w == nil {
			w = NewWindow(c.capacity)
			c.cores[core.Name] = w
			c.order = append(c.order, core.Name)
			sort.Strings(c.order)
		}
		w.Push(core.UsagePercent)
		if core.UsagePercent > c.MaxUsage {
			c.MaxUsage = core.UsagePercent
		}
	}
	c.Latest = upd.Snapshot.CPU
}

// Cores returns core names in sorted order.
func (c *CPU) Cores() []string {
	return c.order
}

// Core returns the usage window for one core, or nil if it has never
// reported.
func (c *CPU) Core(name string) *Window {
	return c.cores[name]
}

// Memory tracks RAM and swap usage percentages.
type Memory struct {
	RAM  *Window
	Swap *Window

	// Latest is the most recent reading, for gauge labels.
	Latest *sysinfo.MemoryData
}

// NewMemory returns a Memory aggregator with the given window capacity.
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = DefaultMemoryWindow
	}
	return &Memory{RAM: NewWindow(capacity), Swap: NewWindow(capacity)}
}

func (m *Memory) Apply(ev events.Event) {
	upd, ok := ev.(events.DataUpdate)
	if !ok || upd.Snapshot == nil || upd.Snapshot.Memory == nil {
		return
	}
	mem := upd.Snapshot.Memory
	m.RAM.Push(mem.RAMPercent())
	m.Swap.Push(mem.SwapPercent())
	m.Latest = mem
}

// Network tracks per-cycle throughput summed across interfaces, plus
// running byte totals since startup.
type Network struct {
	Received    *Window
	Transmitted *Window

	// TotalReceived and TotalTransmitted accumulate every per-cycle delta
	// observed; they only grow.
	TotalReceived    uint64
	TotalTransmitted uint64

	// Latest is the most recent per-interface reading.
	Latest []sysinfo.NetworkData
}

// NewNetwork returns a Network aggregator with the given window capacity.
func NewNetwork(capacity int) *Network {
	if capacity < 1 {
		capacity = DefaultNetworkWindow
	}
	return &Network{Received: NewWindow(capacity), Transmitted: NewWindow(capacity)}
}

func (n *Network) Apply(ev events.Event) {
	upd, ok := ev.(events.DataUpdate)
	if !ok || upd.Snapshot == nil || upd.Snapshot.Networks == nil {
		return
	}
	var rx, tx uint64
	for _, iface := range upd.Snapshot.Networks {
		rx += iface.Received
		tx += iface.Transmitted
	}
	n.Received.Push(float64(rx))
	n.Transmitted.Push(float64(tx))
	n.TotalReceived += rx
	n.TotalTransmitted += tx
	n.Latest = upd.Snapshot.Networks
}
