package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Default rates and intervals.
const (
	DefaultTickRate     = 4.0
	DefaultFrameRate    = 60.0
	DefaultPollInterval = time.Second
)

// Default sliding-window capacities per metric family.
const (
	DefaultCPUWindow     = 50
	DefaultMemoryWindow  = 10
	DefaultNetworkWindow = 25
)

// DefaultProcessRows is the default number of process table rows retained for display.
const DefaultProcessRows = 20

// Config represents the complete .powertop.yaml configuration file.
// It is constructed once at startup and passed by value into the scheduler
// and collectors; there is no package-level mutable configuration state.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// TickRate is the logic-update timer frequency in Hz.
	TickRate float64 `yaml:"tick_rate" mapstructure:"tick_rate"`

	// FrameRate is the render timer frequency in Hz.
	FrameRate float64 `yaml:"frame_rate" mapstructure:"frame_rate"`

	// PollInterval is the sleep between data collection cycles.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// Mouse enables terminal mouse capture.
	Mouse bool `yaml:"mouse" mapstructure:"mouse"`

	// Paste enables bracketed paste capture.
	Paste bool `yaml:"paste" mapstructure:"paste"`

	Windows WindowConfig `yaml:"windows" mapstructure:"windows"`

	// ProcessRows is the number of rows shown in the process table.
	ProcessRows int `yaml:"process_rows" mapstructure:"process_rows"`
}

// WindowConfig holds sliding-window capacities per metric family.
type WindowConfig struct {
	// CPU is the per-core usage window capacity.
	CPU int `yaml:"cpu" mapstructure:"cpu"`

	// Memory is the ram/swap percentage window capacity.
	Memory int `yaml:"memory" mapstructure:"memory"`

	// Network is the rx/tx throughput window capacity.
	Network int `yaml:"network" mapstructure:"network"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Version:      CurrentConfigVersion,
		TickRate:     DefaultTickRate,
		FrameRate:    DefaultFrameRate,
		PollInterval: DefaultPollInterval,
		Mouse:        false,
		Paste:        false,
		Windows: WindowConfig{
			CPU:     DefaultCPUWindow,
			Memory:  DefaultMemoryWindow,
			Network: DefaultNetworkWindow,
		},
		ProcessRows: DefaultProcessRows,
	}
}
