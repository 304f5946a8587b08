package sysinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// GopsutilProvider implements Provider on top of gopsutil. It keeps the
// previous cycle's network counters so Networks can report per-cycle deltas,
// and relies on gopsutil's own last-sample state for CPU percentages. Not
// safe for concurrent use; the data collection loop is its only caller.
type GopsutilProvider struct {
	primed   bool
	prevRecv map[string]uint64
	prevSent map[string]uint64
}

// NewGopsutilProvider creates a provider backed by gopsutil.
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{
		prevRecv: make(map[string]uint64),
		prevSent: make(map[string]uint64),
	}
}

// Refresh primes counter-based readings. gopsutil computes CPU usage as the
// delta since the previous sample, so the first call seeds that baseline and
// records network counters; without it the first cycle would report usage
// since boot.
func (p *GopsutilProvider) Refresh(ctx context.Context) {
	if p.primed {
		return
	}
	p.primed = true

	// Discard the first CPU sample; it only establishes the baseline.
	_, _ = cpu.PercentWithContext(ctx, 0, true)

	if counters, err := net.IOCountersWithContext(ctx, true); err == nil {
		for _, c := range counters {
			p.prevRecv[c.Name] = c.BytesRecv
			p.prevSent[c.Name] = c.BytesSent
		}
	}
}

// CPU returns one record per logical core with usage since the last cycle.
func (p *GopsutilProvider) CPU(ctx context.Context) ([]CPUData, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, err
	}

	// Info can legitimately report fewer entries than there are logical
	// cores (e.g., one entry per package on some platforms); index-guard.
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		infos = nil
	}

	out := make([]CPUData, 0, len(percents))
	for i, pct := range percents {
		data := CPUData{
			Name:         fmt.Sprintf("cpu%d", i),
			UsagePercent: pct,
		}
		if i < len(infos) {
			data.VendorID = infos[i].VendorID
			data.Brand = infos[i].ModelName
		} else if len(infos) > 0 {
			data.VendorID = infos[0].VendorID
			data.Brand = infos[0].ModelName
		}
		out = append(out, data)
	}
	return out, nil
}

// Processes returns a record per visible process. Individual processes that
// disappear or deny access mid-walk are skipped rather than failing the
// whole extraction.
func (p *GopsutilProvider) Processes(ctx context.Context) ([]ProcessData, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ProcessData, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}

		data := ProcessData{
			PID:  proc.Pid,
			Name: name,
		}
		if ppid, err := proc.PpidWithContext(ctx); err == nil {
			data.ParentPID = ppid
		}
		if status, err := proc.StatusWithContext(ctx); err == nil && len(status) > 0 {
			data.Status = status[0]
		}
		if usage, err := proc.CPUPercentWithContext(ctx); err == nil {
			data.CPUUsage = usage
		}
		out = append(out, data)
	}
	return out, nil
}

// Memory returns RAM and swap totals.
func (p *GopsutilProvider) Memory(ctx context.Context) (*MemoryData, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	data := &MemoryData{
		FreeRAM:  vm.Free,
		TotalRAM: vm.Total,
	}

	// Swap may be absent (containers, some VMs); report zeros rather than
	// failing the whole memory extraction.
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		data.FreeSwap = swap.Free
		data.TotalSwap = swap.Total
	}
	return data, nil
}

// Disks returns one record per physical mount.
func (p *GopsutilProvider) Disks(ctx context.Context) ([]DiskData, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	out := make([]DiskData, 0, len(parts))
	for _, part := range parts {
		data := DiskData{
			Name:       part.Device,
			Filesystem: part.Fstype,
			MountPath:  part.Mountpoint,
		}
		data.Kind, data.Removable = diskKind(part.Device)

		if usage, err := disk.UsageWithContext(ctx, part.Mountpoint); err == nil {
			data.TotalBytes = usage.Total
			data.AvailableBytes = usage.Free
		}
		out = append(out, data)
	}
	return out, nil
}

// Networks returns per-interface counters with deltas since the previous
// cycle. Counter resets (interface bounce) clamp the delta to zero instead
// of producing a huge unsigned wraparound.
func (p *GopsutilProvider) Networks(ctx context.Context) ([]NetworkData, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	macs := make(map[string]string)
	if ifaces, err := net.InterfacesWithContext(ctx); err == nil {
		for _, iface := range ifaces {
			macs[iface.Name] = iface.HardwareAddr
		}
	}

	out := make([]NetworkData, 0, len(counters))
	for _, c := range counters {
		data := NetworkData{
			Interface:          c.Name,
			MAC:                macs[c.Name],
			TotalReceived:      c.BytesRecv,
			TotalTransmitted:   c.BytesSent,
			PacketsReceived:    c.PacketsRecv,
			PacketsTransmitted: c.PacketsSent,
		}
		if prev, ok := p.prevRecv[c.Name]; ok && c.BytesRecv >= prev {
			data.Received = c.BytesRecv - prev
		}
		if prev, ok := p.prevSent[c.Name]; ok && c.BytesSent >= prev {
			data.Transmitted = c.BytesSent - prev
		}
		p.prevRecv[c.Name] = c.BytesRecv
		p.prevSent[c.Name] = c.BytesSent
		out = append(out, data)
	}
	return out, nil
}

// diskKind classifies a block device via sysfs. Outside Linux (or for
// virtual devices) both reads fail and the kind stays Unknown.
func diskKind(device string) (kind string, removable bool) {
	kind = "Unknown"

	base := filepath.Base(device)
	base = strings.TrimRight(base, "0123456789")
	// nvme partitions end in pN; strip the partition suffix too.
	base = strings.TrimSuffix(base, "p")
	if base == "" {
		return kind, false
	}

	if b, err := os.ReadFile(filepath.Join("/sys/block", base, "queue", "rotational")); err == nil {
		switch strings.TrimSpace(string(b)) {
		case "0":
			kind = "SSD"
		case "1":
			kind = "HDD"
		}
	}
	if b, err := os.ReadFile(filepath.Join("/sys/block", base, "removable")); err == nil {
		removable = strings.TrimSpace(string(b)) == "1"
	}
	return kind, removable
}
