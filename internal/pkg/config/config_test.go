package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/ponder/internal/pkg/options"
)

func newFlags(opts *options.Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(fs)
	return fs
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	opts := options.NewOptions()
	require.NoError(t, Load(viper.New(), newFlags(opts), "", "ponderctl", opts))

	assert.Equal(t, 250, opts.Tools.MaxReadLines)
	assert.InDelta(t, 0.8, opts.Context.WarningThreshold, 1e-9)
	assert.Equal(t, 400, opts.Model.MaxTokens)
	assert.Equal(t, 120*time.Second, opts.Model.Timeout)
	assert.Equal(t, "warn", opts.Log.Level)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "ponder.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
model:
  provider: ollama
  name: llama3.2:3b
  timeout: 30s
  temperature: 0.2
workspace:
  root: /srv/project
tools:
  max-read-lines: 100
context:
  windows:
    - model: my-model
      tokens: 4096
`), 0o644))
	t.Setenv("PONDER_MODEL_MAX_TOKENS", "800")

	opts := options.NewOptions()
	fs := newFlags(opts)
	require.NoError(t, fs.Parse([]string{"--context.chars-per-token=3"}))
	require.NoError(t, Load(viper.New(), fs, cfg, "ponderctl", opts))

	assert.Equal(t, "ollama", opts.Model.Provider)
	assert.Equal(t, "llama3.2:3b", opts.Model.Name)
	assert.Equal(t, 30*time.Second, opts.Model.Timeout)
	assert.InDelta(t, 0.2, opts.Model.Temperature, 1e-6)
	assert.Equal(t, 800, opts.Model.MaxTokens)
	assert.Equal(t, "/srv/project", opts.Workspace.Root)
	assert.Equal(t, 100, opts.Tools.MaxReadLines)
	assert.Equal(t, 3, opts.Context.CharsPerToken)
	assert.Equal(t, map[string]int{"my-model": 4096}, opts.Context.WindowMap())
}

func TestLoadWindowsForDottedModelNames(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "ponder.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
context:
  windows:
    - model: llama-3.2-1b
      tokens: 4096
    - model: llama-3.2
      tokens: 16384
`), 0o644))

	opts := options.NewOptions()
	require.NoError(t, Load(viper.New(), newFlags(opts), cfg, "ponderctl", opts))

	assert.Equal(t, map[string]int{"llama-3.2-1b": 4096, "llama-3.2": 16384}, opts.Context.WindowMap())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	opts := options.NewOptions()
	err := Load(viper.New(), newFlags(opts), filepath.Join(t.TempDir(), "nope.yaml"), "ponderctl", opts)
	assert.Error(t, err)
}
