package config

import (
	"fmt"
	"time"

	"github.com/jteer/powertop/internal/errors"
)

// MinPollInterval is the smallest accepted collection interval. Anything
// shorter spends more time in sysfs/procfs reads than asleep.
const MinPollInterval = 100 * time.Millisecond

// Validate checks a Config for values the scheduler and collectors cannot
// operate with.
func Validate(cfg Config) error {
	if cfg.TickRate <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("tick_rate must be positive, got %v", cfg.TickRate),
			"Use a rate in Hz, e.g. tick_rate: 4")
	}
	if cfg.FrameRate <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("frame_rate must be positive, got %v", cfg.FrameRate),
			"Use a rate in Hz, e.g. frame_rate: 60")
	}
	if cfg.PollInterval < MinPollInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("poll_interval %v is below the %v minimum", cfg.PollInterval, MinPollInterval),
			"Use a duration like 1s or 500ms")
	}
	if cfg.Windows.CPU <= 0 || cfg.Windows.Memory <= 0 || cfg.Windows.Network <= 0 {
		return errors.New(errors.ErrConfig,
			"window capacities must be positive",
			"Check the windows section: cpu, memory, and network all need values >= 1")
	}
	if cfg.ProcessRows <= 0 {
		return errors.New(errors.ErrConfig,
			"process_rows must be positive",
			"Use a row count >= 1, e.g. process_rows: 20")
	}
	return nil
}
