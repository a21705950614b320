// Package fstool implements the workspace file tools: a bounded line-range
// file reader and a sorted directory lister. Every operation returns an
// entity.ToolResult; failures never escape as Go errors.
package fstool

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kiosk404/ponder/pkg/logger"
)

const (
	// DefaultMaxLines caps a single ranged read_file call.
	DefaultMaxLines = 250

	moduleName = "fstool"
)

// FileSystem resolves tool paths against a single workspace root.
type FileSystem struct {
	root     string
	maxLines int
	confine  bool
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithMaxLines overrides DefaultMaxLines. Values <= 0 are ignored.
func WithMaxLines(n int) Option {
	return func(f *FileSystem) {
		if n > 0 {
			f.maxLines = n
		}
	}
}

// WithConfinement rejects relative paths that climb out of the root.
// Absolute paths are still taken as given.
func WithConfinement(enabled bool) Option {
	return func(f *FileSystem) {
		f.confine = enabled
	}
}

// New creates a FileSystem rooted at root. An empty root means the current
// working directory.
func New(root string, opts ...Option) *FileSystem {
	fs := &FileSystem{
		root:     resolveRoot(root),
		maxLines: DefaultMaxLines,
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Root returns the absolute workspace root.
func (f *FileSystem) Root() string {
	return f.root
}

// MaxLines returns the per-call line cap.
func (f *FileSystem) MaxLines() int {
	return f.maxLines
}

func resolveRoot(root string) string {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		logger.WarnX(moduleName, "failed to resolve workspace root, using it verbatim", "root", root, "err", err)
		return filepath.Clean(root)
	}
	return abs
}

// resolve maps a tool path onto the filesystem. ok is false when
// confinement is enabled and a relative path escapes the root.
func (f *FileSystem) resolve(p string) (string, bool) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), true
	}
	full := filepath.Join(f.root, p)
	if !f.confine {
		return full, true
	}
	rel, err := filepath.Rel(f.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return full, false
	}
	return full, true
}
