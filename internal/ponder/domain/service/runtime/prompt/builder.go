package prompt

import (
	"context"

	"github.com/kiosk404/ponder/pkg/logger"
)

// Builder produces the system prompt for new conversations. Each call
// re-assembles the pipeline, so edits to the context file show up after a
// reset.
type Builder struct {
	pipeline *Pipeline
	pc       PromptContext
}

// NewBuilder creates a builder over the default pipeline. loader may be nil.
func NewBuilder(tools []ToolSummary, modelName string, loader *ContextLoader) *Builder {
	p := NewDefaultPipeline()
	if loader != nil {
		p.SetContextLoader(loader)
	}
	return &Builder{
		pipeline: p,
		pc: PromptContext{
			Tools:     append([]ToolSummary(nil), tools...),
			ModelName: modelName,
		},
	}
}

// Pipeline exposes the underlying pipeline for extra sections.
func (b *Builder) Pipeline() *Pipeline {
	return b.pipeline
}

// SystemPrompt assembles the prompt text.
func (b *Builder) SystemPrompt() string {
	pc := b.pc
	text, err := b.pipeline.Assemble(context.Background(), &pc)
	if err != nil {
		logger.Warn("[PromptBuilder] assemble failed: %v", err)
	}
	return text
}
