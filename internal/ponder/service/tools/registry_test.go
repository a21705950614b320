package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
	"github.com/kiosk404/ponder/internal/ponder/service/tools/fstool"
)

func newWorkspace(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))
	return NewWorkspaceRegistry(fstool.New(dir)), dir
}

func readFileParams(target string) entity.Params {
	return entity.Params{
		"target_file":                    entity.StringParam(target),
		"should_read_entire_file":        entity.BoolParam(true),
		"start_line_one_indexed":         entity.IntParam(1),
		"end_line_one_indexed_inclusive": entity.IntParam(50),
		"explanation":                    entity.StringParam("look"),
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	r, _ := newWorkspace(t)

	res := r.Execute(context.Background(), "delete_file", entity.Params{})
	assert.False(t, res.Success)
	assert.Equal(t, "Unknown tool: delete_file", res.Error)
	assert.ErrorIs(t, res.Kind, errno.ErrUnknownTool)
}

func TestRegistry_MissingExplanation(t *testing.T) {
	r, _ := newWorkspace(t)

	params := readFileParams("main.go")
	delete(params, "explanation")

	res := r.Execute(context.Background(), ReadFileName, params)
	assert.False(t, res.Success)
	assert.Equal(t, "Missing required parameters: explanation", res.Error)
	assert.ErrorIs(t, res.Kind, errno.ErrMissingParameters)
}

func TestRegistry_MissingSeveralKeepsOrder(t *testing.T) {
	r, _ := newWorkspace(t)

	res := r.Execute(context.Background(), ReadFileName, entity.Params{
		"target_file": entity.StringParam("main.go"),
		"explanation": entity.StringParam("x"),
	})
	assert.Equal(t,
		"Missing required parameters: should_read_entire_file, start_line_one_indexed, end_line_one_indexed_inclusive",
		res.Error)
}

func TestRegistry_ReadFile(t *testing.T) {
	r, _ := newWorkspace(t)

	res := r.Execute(context.Background(), ReadFileName, readFileParams("main.go"))
	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Content, "func main() {}")
	assert.Contains(t, res.Content, "(entire file)")
}

func TestRegistry_ListDir(t *testing.T) {
	r, _ := newWorkspace(t)

	res := r.Execute(context.Background(), ListDirName, entity.Params{
		"relative_workspace_path": entity.StringParam("."),
		"explanation":             entity.StringParam("look around"),
	})
	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Content, "📄 main.go")
}

func TestRegistry_WrongKind(t *testing.T) {
	r, _ := newWorkspace(t)

	params := readFileParams("main.go")
	params["start_line_one_indexed"] = entity.StringParam("one")

	res := r.Execute(context.Background(), ReadFileName, params)
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Kind, errno.ErrInvalidParameter)
	assert.Equal(t, "Parameter start_line_one_indexed must be a integer, got string", res.Error)
}

func TestRegistry_ExplanationAnyKind(t *testing.T) {
	r, _ := newWorkspace(t)

	params := readFileParams("main.go")
	params["explanation"] = entity.IntParam(3)

	res := r.Execute(context.Background(), ReadFileName, params)
	assert.True(t, res.Success, res.Error)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, entity.Params) entity.ToolResult { return entity.NewToolSuccess("ok") }

	require.NoError(t, r.Register(Spec{Name: "echo", Handler: noop, Required: []string{"text"}}))
	assert.ErrorIs(t, r.Register(Spec{Name: "echo", Handler: noop}), errno.ErrToolAlreadyExists)
	assert.Error(t, r.Register(Spec{Name: " ", Handler: noop}))
	assert.Error(t, r.Register(Spec{Name: "nil"}))

	assert.True(t, r.Has("echo"))
	assert.False(t, r.Has("nil"))
	assert.Equal(t, []string{"echo"}, r.Names())
	assert.Equal(t, []string{"text"}, r.Required("echo"))
	assert.Nil(t, r.Required("missing"))

	res := r.Execute(context.Background(), "echo", entity.Params{"text": entity.StringParam("hi")})
	assert.Equal(t, entity.NewToolSuccess("ok"), res)

	assert.Panics(t, func() { r.MustRegister(Spec{Name: "echo", Handler: noop}) })
}

func TestWorkspaceRegistry_Order(t *testing.T) {
	r, _ := newWorkspace(t)
	assert.Equal(t, []string{ListDirName, ReadFileName}, r.Names())
	assert.Equal(t, readFileRequired, r.Required(ReadFileName))
	assert.Equal(t, listDirRequired, r.Required(ListDirName))

	specs := r.Specs()
	require.Len(t, specs, 2)
	assert.Contains(t, specs[1].Usage, "TOOL:read_file(")
}
