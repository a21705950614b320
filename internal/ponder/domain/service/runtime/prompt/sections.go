package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
)

// --- ThinkingSection (Priority: 100) ---
//
// The response contract: reasoning inside <thinking> tags, then the answer.

type ThinkingSection struct{}

func (s *ThinkingSection) Name() string                                     { return "thinking" }
func (s *ThinkingSection) Priority() int                                    { return 100 }
func (s *ThinkingSection) Enabled(_ context.Context, _ *PromptContext) bool { return true }

var thinkingContract = heredoc.Doc(`
	You are an AI assistant with advanced reasoning capabilities. When responding to any query, you must show your thinking process before giving your final answer. Structure your response EXACTLY like this:

	<thinking>
	Here you should show your step-by-step reasoning, consider different angles, weigh pros and cons, think through the problem, explore implications, etc. Be thorough and show your mental process.
	</thinking>

	Then provide your final, clear response after the thinking section. Always use this format - thinking section first, then final answer.`)

func (s *ThinkingSection) Render(_ context.Context, _ *PromptContext) (string, error) {
	return strings.TrimSpace(thinkingContract), nil
}

// --- ToolingSection (Priority: 200) ---

// ToolingSection lists the available tools with their call syntax.
type ToolingSection struct{}

func (s *ToolingSection) Name() string  { return "tooling" }
func (s *ToolingSection) Priority() int { return 200 }

func (s *ToolingSection) Enabled(_ context.Context, pc *PromptContext) bool {
	return len(pc.Tools) > 0
}

func (s *ToolingSection) Render(_ context.Context, pc *PromptContext) (string, error) {
	var buf strings.Builder
	buf.WriteString("AVAILABLE TOOLS:\n")
	buf.WriteString("You have access to the following tools that you can call during your response:")

	for _, t := range pc.Tools {
		desc := t.Description
		if desc == "" {
			desc = "(no description)"
		}
		fmt.Fprintf(&buf, "\n\n- %s: %s", t.Name, desc)
		if t.Usage != "" {
			fmt.Fprintf(&buf, "\n  Usage: %s", t.Usage)
		}
		if t.Hint != "" {
			fmt.Fprintf(&buf, "\n  %s", t.Hint)
		}
	}
	return buf.String(), nil
}

// --- ToolRulesSection (Priority: 300) ---
//
// Only shown when both file tools are available, since the rules and the
// examples name them.

type ToolRulesSection struct{}

func (s *ToolRulesSection) Name() string  { return "tool_rules" }
func (s *ToolRulesSection) Priority() int { return 300 }

func (s *ToolRulesSection) Enabled(_ context.Context, pc *PromptContext) bool {
	return pc.HasTool("list_dir") && pc.HasTool("read_file")
}

var toolRules = heredoc.Doc(`
	TOOL USAGE RULES:
	1. ALWAYS use list_dir first to see what files are available
	2. ONLY use real filenames that exist (like 'tools.py', 'context.md', etc.)
	3. NEVER use placeholder names like 'path_to_file', 'filename.ext', 'example.py'
	4. Use tools directly in your response (NOT inside code blocks)
	5. Example of correct usage:
	   TOOL:list_dir(relative_workspace_path=".", explanation="exploring workspace")
	   TOOL:read_file(target_file="llm_thinking_mode.py", should_read_entire_file=false, start_line_one_indexed=1, end_line_one_indexed_inclusive=20, explanation="reading the script header")

	When a user asks about files, always start by listing the directory to see what's available, then read the specific files they're interested in using the actual filenames you discovered.`)

func (s *ToolRulesSection) Render(_ context.Context, _ *PromptContext) (string, error) {
	return strings.TrimSpace(toolRules), nil
}

// --- AdditionalContextSection (Priority: 800) ---
//
// Appended by the Pipeline when a ContextLoader is attached.

type AdditionalContextSection struct {
	loader *ContextLoader
}

func (s *AdditionalContextSection) Name() string  { return "additional_context" }
func (s *AdditionalContextSection) Priority() int { return 800 }

func (s *AdditionalContextSection) Enabled(_ context.Context, _ *PromptContext) bool {
	return s.loader.Content() != ""
}

func (s *AdditionalContextSection) Render(_ context.Context, _ *PromptContext) (string, error) {
	content := s.loader.Content()
	if content == "" {
		return "", nil
	}
	return "ADDITIONAL CONTEXT:\n" + content, nil
}

// NewDefaultPipeline creates a Pipeline pre-loaded with the builtin sections:
//
//	100: ThinkingSection    (response contract, always on)
//	200: ToolingSection     (available tools, conditional)
//	300: ToolRulesSection   (file tool rules, conditional)
//	800: AdditionalContext  (context file, via ContextLoader, conditional)
func NewDefaultPipeline() *Pipeline {
	p := NewPipeline()
	p.RegisterSection(&ThinkingSection{})
	p.RegisterSection(&ToolingSection{})
	p.RegisterSection(&ToolRulesSection{})
	return p
}
