package prompt

import (
	"context"
	"sort"
	"strings"

	"github.com/kiosk404/ponder/pkg/logger"
)

// Pipeline assembles the system prompt from prioritized sections.
type Pipeline struct {
	sections      []PromptSection
	sorted        bool
	contextLoader *ContextLoader
}

// NewPipeline creates an empty prompt pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// RegisterSection adds a PromptSection to the pipeline.
// Sections are sorted by Priority before first assembly.
func (p *Pipeline) RegisterSection(s PromptSection) {
	p.sections = append(p.sections, s)
	p.sorted = false
}

// SetContextLoader attaches the context file loader. When set, the file's
// content is appended as the ADDITIONAL CONTEXT section.
func (p *Pipeline) SetContextLoader(cl *ContextLoader) {
	p.contextLoader = cl
}

// ContextLoader returns the attached loader (may be nil).
func (p *Pipeline) ContextLoader() *ContextLoader {
	return p.contextLoader
}

func (p *Pipeline) ensureSorted() {
	if p.sorted {
		return
	}
	sort.SliceStable(p.sections, func(i, j int) bool {
		return p.sections[i].Priority() < p.sections[j].Priority()
	})
	p.sorted = true
}

// Assemble renders every enabled section in priority order, separated by a
// blank line. A section that fails to render is logged and skipped.
func (p *Pipeline) Assemble(ctx context.Context, pc *PromptContext) (string, error) {
	p.ensureSorted()
	if pc == nil {
		pc = &PromptContext{}
	}

	all := p.sections
	if p.contextLoader != nil {
		all = append(append([]PromptSection(nil), p.sections...), &AdditionalContextSection{loader: p.contextLoader})
	}

	parts := make([]string, 0, len(all))
	for _, section := range all {
		if !section.Enabled(ctx, pc) {
			continue
		}
		text, err := section.Render(ctx, pc)
		if err != nil {
			logger.Warn("[PromptPipeline] section %q render failed: %v", section.Name(), err)
			continue
		}
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// SectionCount returns the number of registered sections.
func (p *Pipeline) SectionCount() int {
	return len(p.sections)
}
