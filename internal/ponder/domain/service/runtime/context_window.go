package runtime

import (
	"sort"

	"github.com/kiosk404/ponder/internal/ponder/pkg"
	"github.com/kiosk404/ponder/pkg/logger"
)

// DefaultContextWindow is used for model names missing from the table.
const DefaultContextWindow = 32768

var builtinContextWindows = map[string]int{
	"llama-3.2-1b": 8192,
	"llama-3.2-3b": 32768,
	"llama-3.2-8b": 131072,
	"llama-3.2":    32768,
}

// ContextWindowTable resolves the context window of a model by exact name.
type ContextWindowTable struct {
	windows       map[string]int
	defaultWindow int
}

// ContextWindow is one row of the table.
type ContextWindow struct {
	Model  string
	Tokens int
}

// NewContextWindowTable returns the built-in table extended by overrides.
// Overrides with a non-positive size are ignored.
func NewContextWindowTable(overrides map[string]int) *ContextWindowTable {
	t := &ContextWindowTable{
		windows:       make(map[string]int, len(builtinContextWindows)+len(overrides)),
		defaultWindow: DefaultContextWindow,
	}
	for name, size := range builtinContextWindows {
		t.windows[name] = size
	}
	for name, size := range overrides {
		if size <= 0 {
			logger.WarnX(pkg.ModuleName, "[ContextWindowTable] ignoring non-positive window", "model", name, "size", size)
			continue
		}
		t.windows[name] = size
	}
	return t
}

// Resolve returns the window size for model, falling back to the default.
func (t *ContextWindowTable) Resolve(model string) int {
	if size, ok := t.windows[model]; ok {
		return size
	}
	logger.DebugX(pkg.ModuleName, "[ContextWindowTable] unknown model, using default window",
		"model", model, "default", t.defaultWindow)
	return t.defaultWindow
}

// Known reports whether model has its own entry.
func (t *ContextWindowTable) Known(model string) bool {
	_, ok := t.windows[model]
	return ok
}

// Default is the fallback window size.
func (t *ContextWindowTable) Default() int {
	return t.defaultWindow
}

// Entries lists the table sorted by model name.
func (t *ContextWindowTable) Entries() []ContextWindow {
	entries := make([]ContextWindow, 0, len(t.windows))
	for name, size := range t.windows {
		entries = append(entries, ContextWindow{Model: name, Tokens: size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Model < entries[j].Model })
	return entries
}
