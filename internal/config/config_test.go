package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jteer/powertop/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, 4.0, cfg.TickRate)
	assert.Equal(t, 60.0, cfg.FrameRate)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.False(t, cfg.Mouse)
	assert.False(t, cfg.Paste)
	assert.Equal(t, 50, cfg.Windows.CPU)
	assert.Equal(t, 10, cfg.Windows.Memory)
	assert.Equal(t, 25, cfg.Windows.Network)
	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, true},
		{"negative tick rate", func(c *Config) { c.TickRate = -1 }, true},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }, true},
		{"poll below minimum", func(c *Config) { c.PollInterval = 50 * time.Millisecond }, true},
		{"zero cpu window", func(c *Config) { c.Windows.CPU = 0 }, true},
		{"zero memory window", func(c *Config) { c.Windows.Memory = 0 }, true},
		{"zero network window", func(c *Config) { c.Windows.Network = 0 }, true},
		{"zero process rows", func(c *Config) { c.ProcessRows = 0 }, true},
		{"high frame rate ok", func(c *Config) { c.FrameRate = 240 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	content := `version: 1
tick_rate: 2.5
frame_rate: 30
poll_interval: 2s
mouse: true
windows:
  cpu: 100
  memory: 20
  network: 55
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.TickRate)
	assert.Equal(t, 30.0, cfg.FrameRate)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.True(t, cfg.Mouse)
	assert.False(t, cfg.Paste) // default preserved
	assert.Equal(t, 100, cfg.Windows.CPU)
	assert.Equal(t, 20, cfg.Windows.Memory)
	assert.Equal(t, 55, cfg.Windows.Network)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: -4\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindInCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd) //nolint:errcheck

	found, err := Find("")
	require.NoError(t, err)
	// Resolve symlinks: on macOS TempDir lives under /var -> /private/var.
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(filepath.Dir(found))
	assert.Equal(t, wantDir, gotDir)
	assert.Equal(t, ConfigFileName, filepath.Base(found))
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd) //nolint:errcheck
	// Guard against a config in the temp tree's parents by marking a git root.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().TickRate, cfg.TickRate)
}
