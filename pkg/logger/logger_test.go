package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		_ = SetLevel("warn")
	})

	require.NoError(t, SetLevel("warn"))
	Info("hidden %d", 1)
	Warn("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
}

func TestXVariantsAttachFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		_ = SetLevel("warn")
	})
	require.NoError(t, SetLevel("debug"))

	InfoX("runtime", "exchange done", "tools", 2, "dangling")

	out := buf.String()
	assert.Contains(t, out, "module=runtime")
	assert.Contains(t, out, "tools=2")
	assert.Contains(t, out, "!BADKEY=dangling")
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	assert.Error(t, SetLevel("loud"))
}

func TestInitLogWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ponder.log")
	require.NoError(t, InitLog(path))
	Error("to file")
	FlushLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
