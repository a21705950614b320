package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
)

// historyOf builds a single message estimated at exactly tokens.
func historyOf(tokens int) []entity.Message {
	content := strings.Repeat("abcd", tokens-DefaultMessageOverhead)
	return []entity.Message{entity.NewUserMessage(content)}
}

func TestTokenEstimator(t *testing.T) {
	te := NewTokenEstimator(0, -1)

	assert.Equal(t, 0, te.EstimateString(""))
	assert.Equal(t, 0, te.EstimateString("abc"))
	assert.Equal(t, 1, te.EstimateString("abcd"))
	assert.Equal(t, 2, te.EstimateString("héllo wor"))

	msgs := []entity.Message{
		entity.NewSystemMessage(strings.Repeat("x", 40)),
		entity.NewUserMessage(""),
	}
	assert.Equal(t, 10+10+0+10, te.EstimateMessages(msgs))

	custom := NewTokenEstimator(2, 0)
	assert.Equal(t, 20, custom.EstimateMessages(msgs[:1]))
}

func TestContextTracker_Status(t *testing.T) {
	tracker := NewContextTracker(NewTokenEstimator(4, 10), 8192, DefaultTrackerConfig())

	tests := []struct {
		name   string
		tokens int
		want   entity.ContextStatus
	}{
		{"well below", 1000, entity.StatusOK},
		{"just below warning", 6553, entity.StatusOK},
		{"warning band", 6600, entity.StatusWarning},
		{"upper warning band", 7000, entity.StatusWarning},
		{"critical", 7400, entity.StatusCritical},
		{"over the window", 9000, entity.StatusCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := tracker.Usage(historyOf(tt.tokens))
			assert.Equal(t, tt.tokens, usage.CurrentTokens)
			assert.Equal(t, 8192, usage.MaxTokens)
			assert.Equal(t, tt.want, usage.Status)
		})
	}
}

func TestContextTracker_Percentage(t *testing.T) {
	tracker := NewContextTracker(nil, 1000, DefaultTrackerConfig())
	usage := tracker.UsageForTokens(250)
	assert.InDelta(t, 25.0, usage.UsagePercentage, 1e-9)
	assert.Equal(t, 750, usage.Remaining())
}

func TestContextTracker_CustomThresholds(t *testing.T) {
	tracker := NewContextTracker(nil, 1000, TrackerConfig{WarningThreshold: 0.5, CriticalThreshold: 0.7})
	assert.Equal(t, entity.StatusOK, tracker.UsageForTokens(499).Status)
	assert.Equal(t, entity.StatusWarning, tracker.UsageForTokens(500).Status)
	assert.Equal(t, entity.StatusCritical, tracker.UsageForTokens(700).Status)

	// invalid values fall back to defaults
	fallback := NewContextTracker(nil, 0, TrackerConfig{WarningThreshold: 2, CriticalThreshold: -1})
	assert.Equal(t, DefaultContextWindow, fallback.MaxTokens())
	assert.Equal(t, entity.StatusWarning, fallback.UsageForTokens(DefaultContextWindow*85/100).Status)
}

func TestContextWindowTable(t *testing.T) {
	table := NewContextWindowTable(map[string]int{"my-model": 4096, "broken": 0})

	assert.Equal(t, 8192, table.Resolve("llama-3.2-1b"))
	assert.Equal(t, 32768, table.Resolve("llama-3.2-3b"))
	assert.Equal(t, 131072, table.Resolve("llama-3.2-8b"))
	assert.Equal(t, 32768, table.Resolve("llama-3.2"))
	assert.Equal(t, 4096, table.Resolve("my-model"))
	assert.Equal(t, DefaultContextWindow, table.Resolve("unknown"))
	assert.Equal(t, DefaultContextWindow, table.Resolve("broken"))
	assert.False(t, table.Known("broken"))
	assert.True(t, table.Known("my-model"))

	entries := table.Entries()
	assert.Len(t, entries, 5)
	assert.Equal(t, "llama-3.2", entries[0].Model)
	assert.Equal(t, "my-model", entries[len(entries)-1].Model)
}
