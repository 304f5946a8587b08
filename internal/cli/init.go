package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jteer/powertop/internal/config"
	"github.com/jteer/powertop/internal/errors"
)

var initForce bool

// initCmd writes a starter config file into the current directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .powertop.yaml config file",
	Long: `Write a .powertop.yaml with the default settings into the current
directory, ready to edit. An existing file is only replaced after
confirmation or with --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite.")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := writeDefaultConfig(configPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

// configTemplate mirrors config.Default. Durations are written in their
// human form, which yaml.Marshal on time.Duration would not give us.
type configTemplate struct {
	Version      int                 `yaml:"version"`
	TickRate     float64             `yaml:"tick_rate"`
	FrameRate    float64             `yaml:"frame_rate"`
	PollInterval string              `yaml:"poll_interval"`
	Mouse        bool                `yaml:"mouse"`
	Paste        bool                `yaml:"paste"`
	Windows      config.WindowConfig `yaml:"windows"`
	ProcessRows  int                 `yaml:"process_rows"`
}

func writeDefaultConfig(path string) error {
	def := config.Default()
	data, err := yaml.Marshal(configTemplate{
		Version:      def.Version,
		TickRate:     def.TickRate,
		FrameRate:    def.FrameRate,
		PollInterval: def.PollInterval.String(),
		Mouse:        def.Mouse,
		Paste:        def.Paste,
		Windows:      def.Windows,
		ProcessRows:  def.ProcessRows,
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to serialize default config", "")
	}
	header := "# powertop configuration\n# Values are overridden by POWERTOP_* environment variables and flags.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write %s", path),
			"Check directory permissions.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config without asking")
}
