package tools

import (
	"context"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
	"github.com/kiosk404/ponder/internal/ponder/service/tools/fstool"
)

const (
	ReadFileName = "read_file"
	ListDirName  = "list_dir"
)

var (
	readFileRequired = []string{
		"target_file",
		"should_read_entire_file",
		"start_line_one_indexed",
		"end_line_one_indexed_inclusive",
		"explanation",
	}
	listDirRequired = []string{
		"relative_workspace_path",
		"explanation",
	}
)

// NewWorkspaceRegistry returns a registry holding list_dir and read_file
// bound to fs. list_dir comes first since models are told to explore before
// reading.
func NewWorkspaceRegistry(fs *fstool.FileSystem) *Registry {
	r := NewRegistry()
	r.MustRegister(ListDirSpec(fs))
	r.MustRegister(ReadFileSpec(fs))
	return r
}

// ReadFileSpec describes the read_file tool.
func ReadFileSpec(fs *fstool.FileSystem) Spec {
	return Spec{
		Name:        ReadFileName,
		Description: "Read contents of a file",
		Usage: `TOOL:read_file(target_file="actual_filename.py", should_read_entire_file=false, ` +
			`start_line_one_indexed=1, end_line_one_indexed_inclusive=50, explanation="reading the file")`,
		Hint:     "IMPORTANT: Only use REAL filenames that exist in the workspace. Use list_dir first to see available files.",
		Required: readFileRequired,
		Handler: func(ctx context.Context, p entity.Params) entity.ToolResult {
			target, ok := p.String("target_file")
			if !ok {
				return invalidParam("target_file", entity.ParamString, p)
			}
			entire, ok := p.Bool("should_read_entire_file")
			if !ok {
				return invalidParam("should_read_entire_file", entity.ParamBool, p)
			}
			start, ok := p.Int("start_line_one_indexed")
			if !ok {
				return invalidParam("start_line_one_indexed", entity.ParamInt, p)
			}
			end, ok := p.Int("end_line_one_indexed_inclusive")
			if !ok {
				return invalidParam("end_line_one_indexed_inclusive", entity.ParamInt, p)
			}
			return fs.ReadFile(fstool.ReadFileRequest{
				TargetFile:           target,
				ShouldReadEntireFile: entire,
				StartLine:            start,
				EndLine:              end,
				Explanation:          explanation(p),
			})
		},
	}
}

// ListDirSpec describes the list_dir tool.
func ListDirSpec(fs *fstool.FileSystem) Spec {
	return Spec{
		Name:        ListDirName,
		Description: "List contents of a directory",
		Usage:       `TOOL:list_dir(relative_workspace_path=".", explanation="exploring the workspace")`,
		Hint:        "Use this FIRST to see what files are available in the workspace.",
		Required:    listDirRequired,
		Handler: func(ctx context.Context, p entity.Params) entity.ToolResult {
			path, ok := p.String("relative_workspace_path")
			if !ok {
				return invalidParam("relative_workspace_path", entity.ParamString, p)
			}
			return fs.ListDir(fstool.ListDirRequest{
				RelativeWorkspacePath: path,
				Explanation:           explanation(p),
			})
		},
	}
}

// explanation is informational only, so any kind is accepted.
func explanation(p entity.Params) string {
	if s, ok := p.String("explanation"); ok {
		return s
	}
	if v, ok := p["explanation"]; ok {
		return v.String()
	}
	return ""
}

func invalidParam(key string, want entity.ParamKind, p entity.Params) entity.ToolResult {
	got := "nothing"
	if v, ok := p[key]; ok {
		got = v.Kind.String()
	}
	return entity.NewToolFailure(errno.ErrInvalidParameter, "Parameter %s must be a %s, got %s", key, want, got)
}
