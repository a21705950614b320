package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolCall_Key(t *testing.T) {
	read := ToolCall{Name: "read_file", Params: Params{
		"target_file":                    StringParam("a.go"),
		"start_line_one_indexed":         IntParam(1),
		"end_line_one_indexed_inclusive": IntParam(50),
		"explanation":                    StringParam("first"),
	}}
	assert.Equal(t, "read_file:a.go:1:50", read.Key())

	// explanation does not take part in the identity
	again := ToolCall{Name: "read_file", Params: Params{
		"target_file":                    StringParam("a.go"),
		"start_line_one_indexed":         IntParam(1),
		"end_line_one_indexed_inclusive": IntParam(50),
		"explanation":                    StringParam("second"),
	}}
	assert.Equal(t, read.Key(), again.Key())

	list := ToolCall{Name: "list_dir", Params: Params{"relative_workspace_path": StringParam("src")}}
	assert.Equal(t, "list_dir:src", list.Key())

	other := ToolCall{Name: "grep", Params: Params{"b": IntParam(2), "a": BoolParam(true)}}
	assert.Equal(t, "grep:[a=true, b=2]", other.Key())
}

func TestToolCall_String(t *testing.T) {
	c := ToolCall{Name: "list_dir", Params: Params{
		"relative_workspace_path": StringParam("."),
		"explanation":             StringParam("look"),
	}}
	assert.Equal(t, `TOOL:list_dir(explanation="look", relative_workspace_path=".")`, c.String())
}

func TestParams_Accessors(t *testing.T) {
	p := Params{"s": StringParam("x"), "b": BoolParam(true), "i": IntParam(7)}

	s, ok := p.String("s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = p.String("i")
	assert.False(t, ok)

	b, ok := p.Bool("b")
	assert.True(t, ok)
	assert.True(t, b)

	i, ok := p.Int("i")
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	assert.True(t, p.Has("s"))
	assert.False(t, p.Has("missing"))
}

func TestToolResult(t *testing.T) {
	ok := NewToolSuccess("body")
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)
	assert.Nil(t, ok.Kind)

	kind := errors.New("boom")
	failed := NewToolFailure(kind, "")
	assert.False(t, failed.Success)
	assert.Empty(t, failed.Content)
	assert.Equal(t, "boom", failed.Error)

	assert.Equal(t, "tool failed", NewToolFailure(nil, "").Error)
	assert.Equal(t, "bad 3", NewToolFailure(kind, "bad %d", 3).Error)
}

func TestContextUsage_Remaining(t *testing.T) {
	assert.Equal(t, 100, ContextUsage{CurrentTokens: 900, MaxTokens: 1000}.Remaining())
	assert.Equal(t, -200, ContextUsage{CurrentTokens: 1200, MaxTokens: 1000}.Remaining())
}
