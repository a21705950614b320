package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fileTools = []ToolSummary{
	{
		Name:        "list_dir",
		Description: "List contents of a directory",
		Usage:       `TOOL:list_dir(relative_workspace_path=".", explanation="exploring the workspace")`,
		Hint:        "Use this FIRST to see what files are available in the workspace.",
	},
	{
		Name:        "read_file",
		Description: "Read contents of a file",
		Usage:       `TOOL:read_file(target_file="a.py", explanation="x")`,
	},
}

func TestBuilder_BasePrompt(t *testing.T) {
	b := NewBuilder(fileTools, "llama-3.2-3b", nil)
	text := b.SystemPrompt()

	assert.True(t, strings.HasPrefix(text, "You are an AI assistant with advanced reasoning capabilities."))
	assert.Contains(t, text, "<thinking>\nHere you should show")
	assert.Contains(t, text, "AVAILABLE TOOLS:\nYou have access to the following tools that you can call during your response:\n\n- list_dir: List contents of a directory\n  Usage: TOOL:list_dir(")
	assert.Contains(t, text, "\n  Use this FIRST to see what files are available in the workspace.\n\n- read_file: Read contents of a file")
	assert.Contains(t, text, "TOOL USAGE RULES:\n1. ALWAYS use list_dir first")
	assert.Contains(t, text, "\n   TOOL:list_dir(relative_workspace_path=\".\", explanation=\"exploring workspace\")\n")
	assert.NotContains(t, text, "ADDITIONAL CONTEXT")

	// sections are separated by exactly one blank line
	assert.Contains(t, text, "then final answer.\n\nAVAILABLE TOOLS:")
}

func TestBuilder_NoTools(t *testing.T) {
	text := NewBuilder(nil, "", nil).SystemPrompt()
	assert.NotContains(t, text, "AVAILABLE TOOLS")
	assert.NotContains(t, text, "TOOL USAGE RULES")
}

func TestBuilder_RulesNeedBothFileTools(t *testing.T) {
	text := NewBuilder(fileTools[:1], "", nil).SystemPrompt()
	assert.Contains(t, text, "AVAILABLE TOOLS")
	assert.NotContains(t, text, "TOOL USAGE RULES")
}

func TestBuilder_AdditionalContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "context.md"), []byte("\n  Project notes.\n\n"), 0o644))

	loader := NewContextLoader(dir, "")
	defer loader.Close()

	text := NewBuilder(fileTools, "", loader).SystemPrompt()
	assert.True(t, strings.HasSuffix(text, "discovered.\n\nADDITIONAL CONTEXT:\nProject notes."))
}

func TestContextLoader_MissingAndEmpty(t *testing.T) {
	dir := t.TempDir()

	loader := NewContextLoader(dir, "notes.md")
	defer loader.Close()
	assert.Equal(t, filepath.Join(dir, "notes.md"), loader.Path())
	assert.Equal(t, "", loader.Content())

	require.NoError(t, os.WriteFile(loader.Path(), []byte("   \n"), 0o644))
	assert.Equal(t, "", loader.Reload())

	require.NoError(t, os.WriteFile(loader.Path(), []byte{0xff, 0xfe}, 0o644))
	assert.Equal(t, "", loader.Reload())

	require.NoError(t, os.WriteFile(loader.Path(), []byte("hello"), 0o644))
	assert.Equal(t, "hello", loader.Reload())
	assert.Equal(t, "hello", loader.Content())
}

func TestContextLoader_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "context.md")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	loader := NewContextLoader(dir, "")
	defer loader.Close()
	require.Equal(t, "v1", loader.Content())

	loaded := make(chan string, 4)
	loader.OnLoad(func(c string) { loaded <- c })

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	assert.Eventually(t, func() bool { return loader.Content() == "v2" }, 5*time.Second, 20*time.Millisecond)

	select {
	case c := <-loaded:
		assert.Equal(t, "v2", c)
	case <-time.After(5 * time.Second):
		t.Fatal("OnLoad not called")
	}
}

type failingSection struct{}

func (failingSection) Name() string                                     { return "broken" }
func (failingSection) Priority() int                                    { return 50 }
func (failingSection) Enabled(_ context.Context, _ *PromptContext) bool { return true }
func (failingSection) Render(_ context.Context, _ *PromptContext) (string, error) {
	return "", errors.New("boom")
}

type staticSection struct {
	name string
	prio int
}

func (s staticSection) Name() string                                     { return s.name }
func (s staticSection) Priority() int                                    { return s.prio }
func (s staticSection) Enabled(_ context.Context, _ *PromptContext) bool { return true }
func (s staticSection) Render(_ context.Context, _ *PromptContext) (string, error) {
	return s.name, nil
}

func TestPipeline_OrderAndFailures(t *testing.T) {
	p := NewPipeline()
	p.RegisterSection(staticSection{"last", 900})
	p.RegisterSection(failingSection{})
	p.RegisterSection(staticSection{"first", 10})
	p.RegisterSection(staticSection{"middle", 500})

	text, err := p.Assemble(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "first\n\nmiddle\n\nlast", text)
	assert.Equal(t, 4, p.SectionCount())
}
