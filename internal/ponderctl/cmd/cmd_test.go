package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	cmdutil "github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
)

type cannedModel struct{ calls int }

func (m *cannedModel) Generate(context.Context, []entity.Message) (string, error) {
	m.calls++
	return "<thinking>short</thinking>\n\nshort answer", nil
}

func execute(t *testing.T, model *cannedModel, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var in, out, errOut bytes.Buffer
	cmd := NewPonderCtlCommand(&in, &out, &errOut, cmdutil.WithChatModel(model))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := NewPonderCtlCommand(nil, nil, nil)
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"chat", "batch", "exec", "context", "version"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("model.provider"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("workspace.root"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestChatThroughRoot(t *testing.T) {
	model := &cannedModel{}
	out, err := execute(t, model, "chat", "--workspace.root", t.TempDir(), "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls)
	assert.Contains(t, out, "short answer")
}

func TestConfigFileIsApplied(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.txt"), []byte("x\n"), 0o644))
	cfg := filepath.Join(t.TempDir(), "ponderctl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workspace:\n  root: "+root+"\n"), 0o644))

	out, err := execute(t, &cannedModel{}, "exec", "--config", cfg, `TOOL:list_dir(relative_workspace_path=".")`)
	require.NoError(t, err)
	assert.Contains(t, out, "x.txt")
}

func TestConfigWindowForDottedModelName(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "ponderctl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
workspace:
  root: `+t.TempDir()+`
context:
  windows:
    - model: llama-3.2-1b
      tokens: 4096
`), 0o644))

	out, err := execute(t, &cannedModel{}, "context", "--config", cfg, "--model", "llama-3.2-1b")
	require.NoError(t, err)
	assert.Contains(t, out, "Model llama-3.2-1b: 4096 tokens")
	assert.NotContains(t, out, "(default)")
}

func TestInvalidConfigurationFails(t *testing.T) {
	_, err := execute(t, &cannedModel{}, "context", "--tools.max-read-lines=0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tools.max-read-lines")
}

func TestVersionSkipsConfig(t *testing.T) {
	out, err := execute(t, &cannedModel{}, "version", "--short", "--config", "/does/not/exist.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBanner(t *testing.T) {
	assert.Contains(t, Banner(), "Version:")
}
