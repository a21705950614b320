package runtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg"
	"github.com/kiosk404/ponder/pkg/logger"
)

// DefaultFenceLanguages are the code fence labels scanned for calls.
var DefaultFenceLanguages = []string{"python"}

const (
	defaultStartLine = 1
	defaultEndLine   = 50
)

var (
	toolCallRe = regexp.MustCompile(`(?s)TOOL:(\w+)\((.*?)\)`)

	targetQuotedRe  = regexp.MustCompile(`target_file\s*=\s*["']([^"']+)["']`)
	targetBareRe    = regexp.MustCompile(`target_file\s*=\s*([^,\s)]+)`)
	entireFileRe    = regexp.MustCompile(`(?i)should_read_entire_file\s*=\s*(true|false)`)
	startLineRe     = regexp.MustCompile(`start_line_one_indexed\s*=\s*(\d+)`)
	endLineRe       = regexp.MustCompile(`end_line_one_indexed_inclusive\s*=\s*(\d+)`)
	explanationRe   = regexp.MustCompile(`explanation\s*=\s*["']([^"']+)["']`)
	workspacePathRe = regexp.MustCompile(`relative_workspace_path\s*=\s*["']([^"']*)["']`)
	genericPairRe   = regexp.MustCompile(`(\w+)\s*=\s*([^,]+)`)
	digitsRe        = regexp.MustCompile(`^\d+$`)
)

// SkippedCall is a call that matched the TOOL: syntax but could not be
// turned into a ToolCall.
type SkippedCall struct {
	Name   string
	Args   string
	Reason string
}

// ParseResult is the detailed outcome of one extraction.
type ParseResult struct {
	Calls   []entity.ToolCall
	Skipped []SkippedCall
}

// DiagnosticFunc receives every skipped call.
type DiagnosticFunc func(SkippedCall)

// ParserOption configures a ToolCallParser.
type ParserOption func(*ToolCallParser)

// WithFenceLanguages replaces the code fence labels whose bodies are
// scanned in addition to the plain text.
func WithFenceLanguages(langs ...string) ParserOption {
	return func(p *ToolCallParser) {
		p.fenceLanguages = append([]string(nil), langs...)
	}
}

// WithDiagnostics replaces the default logger-backed diagnostics sink.
func WithDiagnostics(fn DiagnosticFunc) ParserOption {
	return func(p *ToolCallParser) {
		if fn != nil {
			p.diagnose = fn
		}
	}
}

// ToolCallParser extracts TOOL:<name>(<args>) calls from model output.
//
// The argument list runs up to the first closing parenthesis, so argument
// values cannot contain ')'. Extraction never fails: malformed calls are
// reported through the diagnostics sink and skipped.
type ToolCallParser struct {
	fenceLanguages []string
	fenceRe        *regexp.Regexp
	diagnose       DiagnosticFunc
}

// NewToolCallParser creates a parser scanning plain text and python fences.
func NewToolCallParser(opts ...ParserOption) *ToolCallParser {
	p := &ToolCallParser{
		fenceLanguages: DefaultFenceLanguages,
		diagnose: func(s SkippedCall) {
			logger.WarnX(pkg.ModuleName, "[ToolCallParser] skipping tool call",
				"tool", s.Name, "args", s.Args, "reason", s.Reason)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.fenceRe = fenceRegexp(p.fenceLanguages)
	return p
}

func fenceRegexp(langs []string) *regexp.Regexp {
	if len(langs) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(langs))
	for _, l := range langs {
		quoted = append(quoted, regexp.QuoteMeta(l))
	}
	return regexp.MustCompile("(?s)```(?:" + strings.Join(quoted, "|") + `)\s*\n(.*?)\n` + "```")
}

// Parse returns the de-duplicated calls found in text, in order of
// appearance: plain-text matches first, then matches inside code fences.
func (p *ToolCallParser) Parse(text string) []entity.ToolCall {
	return p.ParseDetailed(text).Calls
}

// ParseDetailed is Parse that also reports skipped calls.
func (p *ToolCallParser) ParseDetailed(text string) ParseResult {
	matches := toolCallRe.FindAllStringSubmatch(text, -1)
	if p.fenceRe != nil {
		for _, block := range p.fenceRe.FindAllStringSubmatch(text, -1) {
			matches = append(matches, toolCallRe.FindAllStringSubmatch(block[1], -1)...)
		}
	}

	var (
		result  ParseResult
		seen    = make(map[string]struct{}, len(matches))
		skipped = make(map[string]struct{})
	)
	for _, m := range matches {
		name, args := m[1], m[2]

		call, reason := buildToolCall(name, args)
		if reason != "" {
			s := SkippedCall{Name: name, Args: args, Reason: reason}
			key := name + "(" + args + ")"
			if _, dup := skipped[key]; !dup {
				skipped[key] = struct{}{}
				result.Skipped = append(result.Skipped, s)
				p.diagnose(s)
			}
			continue
		}

		key := call.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result.Calls = append(result.Calls, call)
	}
	return result
}

func buildToolCall(name, args string) (entity.ToolCall, string) {
	switch name {
	case "read_file":
		return buildReadFile(args)
	case "list_dir":
		return buildListDir(args), ""
	default:
		return entity.ToolCall{Name: name, Params: parseGenericArgs(args)}, ""
	}
}

func buildReadFile(args string) (entity.ToolCall, string) {
	var target string
	if m := targetQuotedRe.FindStringSubmatch(args); m != nil {
		target = strings.TrimSpace(m[1])
	} else if m := targetBareRe.FindStringSubmatch(args); m != nil {
		target = strings.TrimSpace(m[1])
	}
	if target == "" {
		return entity.ToolCall{}, "could not extract target_file"
	}

	entire := false
	if m := entireFileRe.FindStringSubmatch(args); m != nil {
		entire = strings.EqualFold(m[1], "true")
	}

	start, err := intArg(startLineRe, args, defaultStartLine)
	if err != nil {
		return entity.ToolCall{}, err.Error()
	}
	end, err := intArg(endLineRe, args, defaultEndLine)
	if err != nil {
		return entity.ToolCall{}, err.Error()
	}

	explanation := "Reading file " + target
	if m := explanationRe.FindStringSubmatch(args); m != nil {
		explanation = m[1]
	}

	return entity.ToolCall{
		Name: "read_file",
		Params: entity.Params{
			"target_file":                    entity.StringParam(target),
			"should_read_entire_file":        entity.BoolParam(entire),
			"start_line_one_indexed":         entity.IntParam(start),
			"end_line_one_indexed_inclusive": entity.IntParam(end),
			"explanation":                    entity.StringParam(explanation),
		},
	}, ""
}

func buildListDir(args string) entity.ToolCall {
	path := "."
	if m := workspacePathRe.FindStringSubmatch(args); m != nil {
		path = m[1]
	}

	explanation := "Listing directory " + path
	if m := explanationRe.FindStringSubmatch(args); m != nil {
		explanation = m[1]
	}

	return entity.ToolCall{
		Name: "list_dir",
		Params: entity.Params{
			"relative_workspace_path": entity.StringParam(path),
			"explanation":             entity.StringParam(explanation),
		},
	}
}

func intArg(re *regexp.Regexp, args string, def int) (int, error) {
	m := re.FindStringSubmatch(args)
	if m == nil {
		return def, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("line number %s out of range", m[1])
	}
	return n, nil
}

// parseGenericArgs coerces each key=value pair to a boolean, a de-quoted
// string, an integer or, failing those, the raw token.
func parseGenericArgs(args string) entity.Params {
	params := make(entity.Params)
	for _, m := range genericPairRe.FindAllStringSubmatch(args, -1) {
		params[m[1]] = coerceValue(strings.TrimSpace(m[2]))
	}
	return params
}

func coerceValue(v string) entity.ParamValue {
	switch {
	case strings.EqualFold(v, "true"):
		return entity.BoolParam(true)
	case strings.EqualFold(v, "false"):
		return entity.BoolParam(false)
	case len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"',
		len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'':
		return entity.StringParam(v[1 : len(v)-1])
	case digitsRe.MatchString(v):
		if n, err := strconv.Atoi(v); err == nil {
			return entity.IntParam(n)
		}
	}
	return entity.StringParam(v)
}
