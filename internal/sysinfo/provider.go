package sysinfo

import "context"

// Provider is the system information source for the data collection loop.
// A Provider is exclusively owned by the loop that polls it: implementations
// may keep unsynchronized internal state (previous counters, sample caches)
// between calls.
//
// Refresh primes counter-based readings for the cycle; the accessor methods
// then extract each subsystem independently so one failing subsystem never
// affects the others.
type Provider interface {
	Refresh(ctx context.Context)
	CPU(ctx context.Context) ([]CPUData, error)
	Processes(ctx context.Context) ([]ProcessData, error)
	Memory(ctx context.Context) (*MemoryData, error)
	Disks(ctx context.Context) ([]DiskData, error)
	Networks(ctx context.Context) ([]NetworkData, error)
}
