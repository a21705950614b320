package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParamKind tags the concrete type held by a ParamValue.
type ParamKind int

const (
	ParamString ParamKind = iota
	ParamBool
	ParamInt
)

func (k ParamKind) String() string {
	switch k {
	case ParamBool:
		return "boolean"
	case ParamInt:
		return "integer"
	default:
		return "string"
	}
}

// ParamValue is a tool-call argument: a string, a boolean or an integer.
type ParamValue struct {
	Kind ParamKind
	Str  string
	Bool bool
	Int  int
}

func StringParam(s string) ParamValue { return ParamValue{Kind: ParamString, Str: s} }
func BoolParam(b bool) ParamValue     { return ParamValue{Kind: ParamBool, Bool: b} }
func IntParam(i int) ParamValue       { return ParamValue{Kind: ParamInt, Int: i} }

// String renders the value the way it would appear in call syntax.
func (v ParamValue) String() string {
	switch v.Kind {
	case ParamBool:
		return strconv.FormatBool(v.Bool)
	case ParamInt:
		return strconv.Itoa(v.Int)
	default:
		return strconv.Quote(v.Str)
	}
}

// Params maps argument names to values.
type Params map[string]ParamValue

// String returns the string argument named key. ok is false when the key is
// absent or holds another kind.
func (p Params) String(key string) (string, bool) {
	v, found := p[key]
	if !found || v.Kind != ParamString {
		return "", false
	}
	return v.Str, true
}

func (p Params) Bool(key string) (bool, bool) {
	v, found := p[key]
	if !found || v.Kind != ParamBool {
		return false, false
	}
	return v.Bool, true
}

func (p Params) Int(key string) (int, bool) {
	v, found := p[key]
	if !found || v.Kind != ParamInt {
		return 0, false
	}
	return v.Int, true
}

// Has reports whether key is present regardless of its kind.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// ToolCall is a tool invocation extracted from model output.
type ToolCall struct {
	// Name is the tool name to invoke.
	Name string `json:"name"`
	// Params are the typed arguments.
	Params Params `json:"params"`
}

// Key is the identity used to drop duplicate calls from one response.
func (c ToolCall) Key() string {
	switch c.Name {
	case "read_file":
		target, _ := c.Params.String("target_file")
		start, _ := c.Params.Int("start_line_one_indexed")
		end, _ := c.Params.Int("end_line_one_indexed_inclusive")
		return fmt.Sprintf("%s:%s:%d:%d", c.Name, target, start, end)
	case "list_dir":
		path, _ := c.Params.String("relative_workspace_path")
		return fmt.Sprintf("%s:%s", c.Name, path)
	}

	keys := make([]string, 0, len(c.Params))
	for k := range c.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+c.Params[k].String())
	}
	return c.Name + ":[" + strings.Join(pairs, ", ") + "]"
}

// String renders the call back into TOOL: syntax.
func (c ToolCall) String() string {
	keys := make([]string, 0, len(c.Params))
	for k := range c.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, k+"="+c.Params[k].String())
	}
	return fmt.Sprintf("TOOL:%s(%s)", c.Name, strings.Join(args, ", "))
}

// ToolResult is the outcome of one tool invocation.
//
// Error is non-empty iff Success is false, and Content is empty when Success
// is false. Use NewToolSuccess and NewToolFailure to build one.
type ToolResult struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
	// Kind is the errno sentinel describing a failure; nil on success.
	Kind error `json:"-"`
}

func NewToolSuccess(content string) ToolResult {
	return ToolResult{Success: true, Content: content}
}

// NewToolFailure builds a failed result. An empty message falls back to the
// kind's text so Error is never empty.
func NewToolFailure(kind error, format string, args ...interface{}) ToolResult {
	msg := fmt.Sprintf(format, args...)
	if msg == "" && kind != nil {
		msg = kind.Error()
	}
	if msg == "" {
		msg = "tool failed"
	}
	return ToolResult{Success: false, Error: msg, Kind: kind}
}
