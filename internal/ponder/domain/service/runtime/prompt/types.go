package prompt

import "context"

// ToolSummary is what the prompt needs to know about one tool. It is filled
// by the caller from the tool registry so this package does not import it.
type ToolSummary struct {
	Name        string
	Description string
	Usage       string
	Hint        string
}

// PromptContext carries the inputs sections render from.
type PromptContext struct {
	// Tools are listed in the order given.
	Tools []ToolSummary

	// ModelName is the active model, informational only.
	ModelName string
}

// HasTool reports whether name is among the available tools.
func (pc *PromptContext) HasTool(name string) bool {
	for _, t := range pc.Tools {
		if t.Name == name {
			return true
		}
	}
	return false
}

// PromptSection renders one logical segment of the system prompt. Sections
// are assembled in Priority order by the Pipeline.
type PromptSection interface {
	// Name returns the unique identifier of this section.
	Name() string

	// Priority determines assembly order (lower = earlier in prompt).
	Priority() int

	// Enabled returns whether this section should appear in the prompt.
	Enabled(ctx context.Context, pc *PromptContext) bool

	// Render returns the section text. Empty text is skipped.
	Render(ctx context.Context, pc *PromptContext) (string, error)
}
