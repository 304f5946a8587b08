// Package cli defines the powertop command tree. The bare command launches
// the dashboard; subcommands cover one-shot snapshots, config bootstrap, and
// version output.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jteer/powertop/internal/config"
	"github.com/jteer/powertop/internal/dashboard"
	"github.com/jteer/powertop/internal/errors"
	"github.com/jteer/powertop/internal/logger"
)

// Root command flags
var (
	configFlag       string
	tickRateFlag     float64
	frameRateFlag    float64
	pollIntervalFlag string
	mouseFlag        bool
	pasteFlag        bool
)

// rootCmd launches the interactive dashboard.
var rootCmd = &cobra.Command{
	Use:   "powertop",
	Short: "A terminal system monitor",
	Long: `powertop is a terminal dashboard for live system metrics: per-core CPU
usage, memory and swap, network throughput, processes, and disks.

Configuration is read from .powertop.yaml (current directory or parents),
~/.config/powertop/config.yaml, POWERTOP_* environment variables, and
flags, in increasing order of precedence.

Examples:
  powertop
  powertop --tick-rate 2 --poll-interval 500ms
  powertop snapshot`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runDashboard(cfg)
	},
}

// loadConfig layers flags over the file/env configuration. Only flags the
// user actually set override; defaults never mask file values.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("tick-rate") {
		cfg.TickRate = tickRateFlag
	}
	if cmd.Flags().Changed("frame-rate") {
		cfg.FrameRate = frameRateFlag
	}
	if cmd.Flags().Changed("poll-interval") {
		interval, err := parseInterval(pollIntervalFlag)
		if err != nil {
			return config.Config{}, err
		}
		cfg.PollInterval = interval
	}
	if cmd.Flags().Changed("mouse") {
		cfg.Mouse = mouseFlag
	}
	if cmd.Flags().Changed("paste") {
		cfg.Paste = pasteFlag
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runDashboard(cfg config.Config) error {
	app, err := dashboard.New(cfg, logger.Default())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}

// Execute runs the command tree. Errors are printed with their suggestion
// attached before the process exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to a config file")
	rootCmd.Flags().Float64Var(&tickRateFlag, "tick-rate", config.DefaultTickRate, "logic updates per second")
	rootCmd.Flags().Float64Var(&frameRateFlag, "frame-rate", config.DefaultFrameRate, "redraws per second")
	rootCmd.Flags().StringVar(&pollIntervalFlag, "poll-interval", "", "delay between metric collections (e.g., 500ms, 2s)")
	rootCmd.Flags().BoolVar(&mouseFlag, "mouse", false, "enable mouse reporting")
	rootCmd.Flags().BoolVar(&pasteFlag, "paste", false, "enable bracketed paste")
}

// parseInterval parses a collection interval flag value.
func parseInterval(flag string) (time.Duration, error) {
	interval, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 500ms, 1s, or 2s.")
	}
	return interval, nil
}
