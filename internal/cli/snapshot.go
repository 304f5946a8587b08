package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jteer/powertop/internal/collector"
	"github.com/jteer/powertop/internal/logger"
	"github.com/jteer/powertop/internal/sysinfo"
)

var (
	snapshotJSON bool
	snapshotRows int

	snapHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF2E97"))
	snapLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B4B4D0"))
	snapValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
)

// snapshotCmd prints one collection cycle and exits. Useful over plain SSH
// sessions, in scripts, and anywhere the full-screen dashboard cannot run.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one round of system metrics and exit",
	Long: `Collect a single round of system metrics and print it to stdout.

Unlike the dashboard this needs no interactive terminal, so it works in
scripts and over plain pipes. Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd)
	},
}

func snapshotCommand(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	provider := sysinfo.NewGopsutilProvider()
	loop := collector.New(provider, time.Second, logger.Default())

	// Two cycles: the first primes usage counters, the second carries real
	// percentages and deltas.
	var snap *sysinfo.Snapshot
	cycles := 0
	loop.Run(ctx, func(s *sysinfo.Snapshot) bool {
		snap = s
		cycles++
		return cycles < 2
	})
	if snap == nil {
		return ctx.Err()
	}

	if snapshotJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	printSnapshot(snap)
	return nil
}

func printSnapshot(snap *sysinfo.Snapshot) {
	// Respect NO_COLOR, dumb terminals, and piped output.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.ColorProfile())
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if len(snap.CPU) > 0 {
		fmt.Println(snapHeaderStyle.Render("CPU"))
		for _, core := range snap.CPU {
			fmt.Printf("  %s %s\n",
				snapLabelStyle.Render(fmt.Sprintf("%-8s", core.Name)),
				snapValueStyle.Render(fmt.Sprintf("%5.1f%%", core.UsagePercent)))
		}
	}

	if m := snap.Memory; m != nil {
		fmt.Println(snapHeaderStyle.Render("Memory"))
		fmt.Printf("  %s %s\n", snapLabelStyle.Render("RAM     "),
			snapValueStyle.Render(fmt.Sprintf("%s / %s (%.1f%%)",
				humanize.IBytes(m.TotalRAM-m.FreeRAM), humanize.IBytes(m.TotalRAM), m.RAMPercent())))
		if m.TotalSwap > 0 {
			fmt.Printf("  %s %s\n", snapLabelStyle.Render("Swap    "),
				snapValueStyle.Render(fmt.Sprintf("%s / %s (%.1f%%)",
					humanize.IBytes(m.TotalSwap-m.FreeSwap), humanize.IBytes(m.TotalSwap), m.SwapPercent())))
		}
	}

	if len(snap.Networks) > 0 {
		fmt.Println(snapHeaderStyle.Render("Network"))
		for _, iface := range snap.Networks {
			fmt.Printf("  %s %s\n",
				snapLabelStyle.Render(fmt.Sprintf("%-8s", iface.Interface)),
				snapValueStyle.Render(fmt.Sprintf("▼ %s/s  ▲ %s/s  (total ▼ %s  ▲ %s)",
					humanize.IBytes(iface.Received), humanize.IBytes(iface.Transmitted),
					humanize.IBytes(iface.TotalReceived), humanize.IBytes(iface.TotalTransmitted))))
		}
	}

	if len(snap.Disks) > 0 {
		fmt.Println(snapHeaderStyle.Render("Disks"))
		for _, d := range snap.Disks {
			used := d.TotalBytes - d.AvailableBytes
			fmt.Printf("  %s %s\n",
				snapLabelStyle.Render(fmt.Sprintf("%-8s", d.Name)),
				snapValueStyle.Render(fmt.Sprintf("%s / %s on %s (%s)",
					humanize.IBytes(used), humanize.IBytes(d.TotalBytes), d.MountPath, d.Kind)))
		}
	}

	if len(snap.Processes) > 0 {
		fmt.Println(snapHeaderStyle.Render(fmt.Sprintf("Top processes by CPU (%d)", snapshotRows)))
		fmt.Printf("  %s\n", snapLabelStyle.Render(fmt.Sprintf("%7s  %-24s %-10s %6s", "PID", "NAME", "STATUS", "CPU%")))
		for _, p := range topByCPU(snap.Processes, snapshotRows) {
			fmt.Printf("  %7d  %-24.24s %-10.10s %s\n",
				p.PID, p.Name, p.Status,
				snapValueStyle.Render(fmt.Sprintf("%6.1f", p.CPUUsage)))
		}
	}
}

func topByCPU(procs []sysinfo.ProcessData, n int) []sysinfo.ProcessData {
	sorted := make([]sysinfo.ProcessData, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CPUUsage > sorted[j].CPUUsage
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "emit JSON instead of styled text")
	snapshotCmd.Flags().IntVar(&snapshotRows, "rows", 10, "number of processes to list")
}
