package options

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// WorkspaceOptions locates the directory the file tools operate on.
type WorkspaceOptions struct {
	// Root is the directory relative tool paths resolve against.
	Root string `json:"root" mapstructure:"root"`
	// ContextFile is appended to the system prompt when present.
	ContextFile string `json:"context-file" mapstructure:"context-file"`
	// Confine rejects relative paths that escape Root.
	Confine bool `json:"confine" mapstructure:"confine"`
}

func NewWorkspaceOptions() *WorkspaceOptions {
	return &WorkspaceOptions{
		Root:        ".",
		ContextFile: "context.md",
	}
}

func (o *WorkspaceOptions) Validate() []error {
	var errs []error
	if o.Root == "" {
		errs = append(errs, fmt.Errorf("workspace.root is required"))
		return errs
	}
	info, err := os.Stat(o.Root)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("workspace.root %q: %w", o.Root, err))
	case !info.IsDir():
		errs = append(errs, fmt.Errorf("workspace.root %q is not a directory", o.Root))
	}
	return errs
}

func (o *WorkspaceOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Root, "workspace.root", o.Root, "Workspace directory the file tools operate on.")
	fs.StringVar(&o.ContextFile, "workspace.context-file", o.ContextFile, "File under the workspace appended to the system prompt.")
	fs.BoolVar(&o.Confine, "workspace.confine", o.Confine, "Reject relative tool paths that escape the workspace.")
}

// ToolsOptions tunes the file tools.
type ToolsOptions struct {
	MaxReadLines int `json:"max-read-lines" mapstructure:"max-read-lines"`
}

func NewToolsOptions() *ToolsOptions {
	return &ToolsOptions{MaxReadLines: 250}
}

func (o *ToolsOptions) Validate() []error {
	if o.MaxReadLines <= 0 {
		return []error{fmt.Errorf("tools.max-read-lines must be positive, got %d", o.MaxReadLines)}
	}
	return nil
}

func (o *ToolsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxReadLines, "tools.max-read-lines", o.MaxReadLines, "Largest line span read_file returns at once.")
}
