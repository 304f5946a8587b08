package dashboard

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/jteer/powertop/internal/sysinfo"
)

// draw repaints the whole dashboard. Layout: cpu panel on top, memory and
// network side by side in the middle, process and disk tables below.
func (a *App) draw() {
	screen := a.term.Screen()
	screen.Clear()

	cols, rows := screen.Size()
	root := region{0, 0, cols, rows - 1}

	cpuRegion, rest := root.splitV(rows / 3)
	midRegion, tables := rest.splitV(rest.h / 2)
	memRegion, netRegion := midRegion.splitH(midRegion.w / 2)
	procRegion, diskRegion := tables.splitH(tables.w * 2 / 3)

	a.drawCPU(cpuRegion)
	a.drawMemory(memRegion)
	a.drawNetwork(netRegion)
	a.drawProcesses(procRegion)
	a.drawDisks(diskRegion)
	a.drawStatusLine(region{0, rows - 1, cols, 1})

	screen.Show()
}

func (a *App) drawCPU(r region) {
	title := fmt.Sprintf("CPU  peak %.0f%%", a.cpu.MaxUsage)
	if len(a.cpu.Latest) > 0 {
		title = fmt.Sprintf("CPU  %s  peak %.0f%%", a.cpu.Latest[0].Brand, a.cpu.MaxUsage)
	}
	drawBox(a.term.Screen(), r, title)
	inner := r.inner()
	if inner.w <= 0 || inner.h <= 0 {
		return
	}

	if a.barMode {
		a.drawCPUBars(inner)
		return
	}

	// Braille chart of the all-core average, with the per-core breakdown
	// as one sparkline row each underneath when space allows.
	chartH := inner.h
	coreRows := len(a.cpu.Cores())
	if coreRows > 0 && inner.h > coreRows+2 {
		chartH = inner.h - coreRows
	}
	chart, coreArea := inner.splitV(chartH)
	drawBrailleChart(a.term.Screen(), chart, a.averageCPU())

	for i, name := range a.cpu.Cores() {
		if i >= coreArea.h {
			break
		}
		row := region{coreArea.x, coreArea.y + i, coreArea.w, 1}
		a.drawCoreRow(row, name)
	}
}

func (a *App) drawCoreRow(r region, name string) {
	screen := a.term.Screen()
	w := a.cpu.Core(name)
	var usage float64
	if last, ok := w.Last(); ok {
		usage = last.Y
	}
	label := fmt.Sprintf("%-6s %5.1f%% ", name, usage)
	drawText(screen, r.x, r.y, r.w, metricStyle(usage), label)
	spark := region{r.x + len(label), r.y, r.w - len(label), 1}
	drawSparkline(screen, spark, w.Values(), metricColor(usage))
}

func (a *App) drawCPUBars(r region) {
	screen := a.term.Screen()
	for i, name := range a.cpu.Cores() {
		if i >= r.h {
			break
		}
		var usage float64
		if last, ok := a.cpu.Core(name).Last(); ok {
			usage = last.Y
		}
		label := fmt.Sprintf("%-6s %5.1f%% ", name, usage)
		drawText(screen, r.x, r.y+i, r.w, metricStyle(usage), label)
		bar := region{r.x + len(label), r.y + i, r.w - len(label), 1}
		drawGauge(screen, bar, usage)
	}
}

// averageCPU flattens the per-core windows into one all-core average series.
func (a *App) averageCPU() []float64 {
	cores := a.cpu.Cores()
	if len(cores) == 0 {
		return nil
	}
	longest := 0
	for _, name := range cores {
		if n := a.cpu.Core(name).Len(); n > longest {
			longest = n
		}
	}
	avg := make([]float64, longest)
	for _, name := range cores {
		vals := a.cpu.Core(name).Values()
		offset := longest - len(vals)
		for i, v := range vals {
			avg[offset+i] += v
		}
	}
	for i := range avg {
		avg[i] /= float64(len(cores))
	}
	return avg
}

func (a *App) drawMemory(r region) {
	drawBox(a.term.Screen(), r, "Memory")
	inner := r.inner()
	if inner.w <= 0 || inner.h < 2 {
		return
	}
	screen := a.term.Screen()

	var ramPct, swapPct float64
	ramLabel, swapLabel := "RAM", "Swap"
	if m := a.mem.Latest; m != nil {
		ramPct = m.RAMPercent()
		swapPct = m.SwapPercent()
		ramLabel = fmt.Sprintf("RAM  %s / %s",
			humanize.IBytes(m.TotalRAM-m.FreeRAM), humanize.IBytes(m.TotalRAM))
		swapLabel = fmt.Sprintf("Swap %s / %s",
			humanize.IBytes(m.TotalSwap-m.FreeSwap), humanize.IBytes(m.TotalSwap))
	}

	drawText(screen, inner.x, inner.y, inner.w, styleText, ramLabel)
	drawGauge(screen, region{inner.x, inner.y + 1, inner.w, 1}, ramPct)
	if inner.h >= 4 {
		drawText(screen, inner.x, inner.y+2, inner.w, styleText, swapLabel)
		drawGauge(screen, region{inner.x, inner.y + 3, inner.w, 1}, swapPct)
	}
	if inner.h >= 5 {
		spark := region{inner.x, inner.y + inner.h - 1, inner.w, 1}
		drawSparkline(screen, spark, a.mem.RAM.Values(), colorGraph)
	}
}

func (a *App) drawNetwork(r region) {
	drawBox(a.term.Screen(), r, "Network")
	inner := r.inner()
	if inner.w <= 0 || inner.h < 2 {
		return
	}
	screen := a.term.Screen()

	var rxRate, txRate float64
	if last, ok := a.net.Received.Last(); ok {
		rxRate = last.Y
	}
	if last, ok := a.net.Transmitted.Last(); ok {
		txRate = last.Y
	}

	rxLabel := fmt.Sprintf("▼ %s/s   total %s",
		humanize.IBytes(uint64(rxRate)), humanize.IBytes(a.net.TotalReceived))
	txLabel := fmt.Sprintf("▲ %s/s   total %s",
		humanize.IBytes(uint64(txRate)), humanize.IBytes(a.net.TotalTransmitted))

	drawText(screen, inner.x, inner.y, inner.w, styleText, rxLabel)
	drawSparkline(screen, region{inner.x, inner.y + 1, inner.w, 1},
		normalizeRate(a.net.Received.Values()), colorGraph)
	if inner.h >= 4 {
		drawText(screen, inner.x, inner.y+2, inner.w, styleText, txLabel)
		drawSparkline(screen, region{inner.x, inner.y + 3, inner.w, 1},
			normalizeRate(a.net.Transmitted.Values()), colorTransmit)
	}
}

func (a *App) drawProcesses(r region) {
	drawBox(a.term.Screen(), r, "Processes")
	inner := r.inner()
	if inner.w <= 0 || inner.h < 2 {
		return
	}
	screen := a.term.Screen()

	drawText(screen, inner.x, inner.y, inner.w, styleHeader,
		fmt.Sprintf("%7s %7s  %-24s %-10s %6s", "PID", "PPID", "NAME", "STATUS", "CPU%"))

	for i, p := range topProcesses(a.procs, a.cfg.ProcessRows) {
		row := inner.y + 1 + i
		if row >= inner.y+inner.h {
			break
		}
		line := fmt.Sprintf("%7d %7d  %-24.24s %-10.10s %6.1f",
			p.PID, p.ParentPID, p.Name, p.Status, p.CPUUsage)
		drawText(screen, inner.x, row, inner.w, metricStyle(p.CPUUsage), line)
	}
}

// topProcesses returns at most n processes ordered by descending cpu usage,
// with pid as the tiebreaker so the table does not jitter between frames.
func topProcesses(procs []sysinfo.ProcessData, n int) []sysinfo.ProcessData {
	sorted := make([]sysinfo.ProcessData, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CPUUsage != sorted[j].CPUUsage {
			return sorted[i].CPUUsage > sorted[j].CPUUsage
		}
		return sorted[i].PID < sorted[j].PID
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (a *App) drawDisks(r region) {
	drawBox(a.term.Screen(), r, "Disks")
	inner := r.inner()
	if inner.w <= 0 || inner.h < 2 {
		return
	}
	screen := a.term.Screen()

	drawText(screen, inner.x, inner.y, inner.w, styleHeader,
		fmt.Sprintf("%-10s %-8s %9s %9s  %s", "DEVICE", "KIND", "USED", "TOTAL", "MOUNT"))

	for i, d := range a.disks {
		row := inner.y + 1 + i
		if row >= inner.y+inner.h {
			break
		}
		used := d.TotalBytes - d.AvailableBytes
		line := fmt.Sprintf("%-10.10s %-8s %9s %9s  %s",
			d.Name, d.Kind, humanize.IBytes(used), humanize.IBytes(d.TotalBytes), d.MountPath)
		drawText(screen, inner.x, row, inner.w, styleText, line)
	}
}

func (a *App) drawStatusLine(r region) {
	screen := a.term.Screen()
	help := " q quit   g graph style   ctrl-z suspend"
	drawText(screen, r.x, r.y, r.w, styleMuted, help)
	if !a.focused {
		drawText(screen, r.x+r.w-10, r.y, 10, styleAccent, "unfocused")
	}
}
