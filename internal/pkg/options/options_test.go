package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	opts := NewOptions()
	opts.Workspace.Root = t.TempDir()
	assert.Empty(t, opts.Validate())
}

func TestValidateCollectsErrors(t *testing.T) {
	opts := NewOptions()
	opts.Workspace.Root = t.TempDir()
	opts.Model.TopP = 0
	opts.Model.Retries = -1
	opts.Tools.MaxReadLines = 0
	opts.Context.WarningThreshold = 0.95
	opts.Context.Windows = []ModelWindow{{Model: "tiny", Tokens: 0}}
	opts.Log.Level = "chatty"

	errs := opts.Validate()
	assert.Len(t, errs, 6)
}

func TestWorkspaceRootMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	o := &WorkspaceOptions{Root: file}
	require.Len(t, o.Validate(), 1)
	assert.Contains(t, o.Validate()[0].Error(), "not a directory")

	o.Root = filepath.Join(t.TempDir(), "missing")
	assert.Len(t, o.Validate(), 1)

	o.Root = ""
	assert.Len(t, o.Validate(), 1)
}

func TestAddFlags(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{
		"--model.provider=openai",
		"--model.max-tokens=1024",
		"--workspace.confine",
		"--tools.max-read-lines=80",
		"--context.critical-threshold=0.95",
		"--log.level=debug",
	}))
	assert.Equal(t, "openai", opts.Model.Provider)
	assert.Equal(t, 1024, opts.Model.MaxTokens)
	assert.True(t, opts.Workspace.Confine)
	assert.Equal(t, 80, opts.Tools.MaxReadLines)
	assert.InDelta(t, 0.95, opts.Context.CriticalThreshold, 1e-9)
	assert.Equal(t, "debug", opts.Log.Level)
}
