// Package sysinfo defines the data model for one collection cycle and the
// Provider interface that supplies it. Records are plain values: once a
// Snapshot is published to the event queue it is never mutated again.
package sysinfo

// CPUData describes one logical core's identity and current usage.
type CPUData struct {
	Name         string
	VendorID     string
	Brand        string
	UsagePercent float64
}

// ProcessData describes one process at collection time.
type ProcessData struct {
	PID int32
	// ParentPID is zero when the parent is unknown (e.g., pid 1 or a
	// permission-restricted entry).
	ParentPID int32
	Name      string
	Status    string
	CPUUsage  float64
}

// DiskData describes one mounted filesystem.
type DiskData struct {
	Name           string
	Kind           string
	Filesystem     string
	TotalBytes     uint64
	AvailableBytes uint64
	Removable      bool
	MountPath      string
}

// NetworkData describes one interface's counters for the current cycle.
// Received/Transmitted are deltas since the previous refresh; the Total
// fields are cumulative since boot.
type NetworkData struct {
	Interface          string
	MAC                string
	Received           uint64
	TotalReceived      uint64
	PacketsReceived    uint64
	Transmitted        uint64
	TotalTransmitted   uint64
	PacketsTransmitted uint64
}

// MemoryData holds RAM and swap totals in bytes.
type MemoryData struct {
	FreeRAM   uint64
	TotalRAM  uint64
	FreeSwap  uint64
	TotalSwap uint64
}

// RAMPercent returns used RAM as a percentage of total, or 0 when the total
// is unknown (never divides by zero).
func (m MemoryData) RAMPercent() float64 {
	return usedPercent(m.FreeRAM, m.TotalRAM)
}

// SwapPercent returns used swap as a percentage of total, or 0 when the
// total is unknown.
func (m MemoryData) SwapPercent() float64 {
	return usedPercent(m.FreeSwap, m.TotalSwap)
}

func usedPercent(free, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(total-free) / float64(total) * 100
}

// Snapshot is one cycle's aggregated readings. Every field is optional: a
// nil slice (or nil Memory) means that subsystem failed to collect this
// cycle and should be skipped by consumers, not treated as empty data.
type Snapshot struct {
	CPU       []CPUData
	Processes []ProcessData
	Disks     []DiskData
	Networks  []NetworkData
	Memory    *MemoryData
}
