package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jteer/powertop/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".powertop.yaml"
	// GlobalConfigDir is the directory for global config, relative to home.
	GlobalConfigDir = ".config/powertop"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides
	// (POWERTOP_TICK_RATE, POWERTOP_POLL_INTERVAL, ...).
	EnvPrefix = "POWERTOP"
)

// Load reads config from the specified path.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'powertop init' to create a config file, or specify one with --config")
		}
		return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v)
}

// LoadOrDefault loads config from the found path, or returns defaults if no
// config file exists. Environment overrides still apply either way.
func LoadOrDefault(explicit string) (Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		v := newViper()
		return parseConfig(v)
	}
	return Load(path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .powertop.yaml in current directory
// 3. .powertop.yaml in parent directories (stops at git root or home)
// 4. ~/.config/powertop/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// newViper builds a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()

	def := Default()
	v.SetDefault("version", def.Version)
	v.SetDefault("tick_rate", def.TickRate)
	v.SetDefault("frame_rate", def.FrameRate)
	v.SetDefault("poll_interval", def.PollInterval)
	v.SetDefault("mouse", def.Mouse)
	v.SetDefault("paste", def.Paste)
	v.SetDefault("windows.cpu", def.Windows.CPU)
	v.SetDefault("windows.memory", def.Windows.Memory)
	v.SetDefault("windows.network", def.Windows.Network)
	v.SetDefault("process_rows", def.ProcessRows)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// parseConfig unmarshals and validates the loaded configuration.
func parseConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Config file has invalid structure",
			"Compare your file against 'powertop init' output")
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
