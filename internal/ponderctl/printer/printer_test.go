package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
)

func TestThousands(t *testing.T) {
	assert.Equal(t, "0", thousands(0))
	assert.Equal(t, "999", thousands(999))
	assert.Equal(t, "8,192", thousands(8192))
	assert.Equal(t, "131,072", thousands(131072))
	assert.Equal(t, "1,234,567", thousands(1234567))
	assert.Equal(t, "-200", thousands(-200))
	assert.Equal(t, "-1,500", thousands(-1500))
}

func TestResponsePlain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Response("step one", "**answer**")

	out := buf.String()
	assert.Contains(t, out, "🧠 THINKING PROCESS:")
	assert.Contains(t, out, "step one")
	assert.Contains(t, out, "💡 FINAL RESPONSE:")
	assert.Contains(t, out, "**answer**")
}

func TestContextUsageReport(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	status := p.ContextUsage(entity.ContextUsage{
		CurrentTokens:   7400,
		MaxTokens:       8192,
		UsagePercentage: 90.33,
		Status:          entity.StatusCritical,
	}, 5)

	assert.Equal(t, entity.StatusCritical, status)
	out := buf.String()
	assert.Contains(t, out, "📊 CONTEXT USAGE: 🔴 CRITICAL")
	assert.Contains(t, out, "Tokens: 7,400 / 8,192 (90.3%)")
	assert.Contains(t, out, "Messages: 5 in history")
	assert.Contains(t, out, "Consider clearing history soon")
	assert.Contains(t, out, "Estimated remaining: ~792 tokens")
}

func TestToolObserverLines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	call := entity.ToolCall{Name: "list_dir"}

	p.OnToolStart(call)
	p.OnToolDone(call, entity.NewToolSuccess("Contents of '.':"))
	p.OnToolDone(call, entity.NewToolFailure(errno.ErrNotFound, "Directory not found: x"))

	out := buf.String()
	assert.Contains(t, out, "🔧 Executing tool: list_dir")
	assert.Contains(t, out, "✅ Tool list_dir executed successfully\nContents of '.':")
	assert.Contains(t, out, "❌ Tool list_dir failed: Directory not found: x")
}

func TestTables(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.WindowTable([]runtime.ContextWindow{{Model: "llama-3.2-1b", Tokens: 8192}}, "llama-3.2-1b", 32768)
	p.ToolTable([]runtime.ToolExecution{{
		Call:   entity.ToolCall{Name: "list_dir", Params: entity.Params{}},
		Result: entity.NewToolFailure(errno.ErrNotFound, "Directory not found: x"),
	}})

	out := buf.String()
	assert.Contains(t, out, "llama-3.2-1b")
	assert.Contains(t, out, "8,192")
	assert.Contains(t, out, "(other)")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Directory not found: x")
}
