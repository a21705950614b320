package fstool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
	"github.com/kiosk404/ponder/pkg/logger"
)

// ListDirRequest mirrors the list_dir tool parameters.
type ListDirRequest struct {
	RelativeWorkspacePath string
	Explanation           string
}

// ListDir lists a directory in ascending name order. Directories are
// suffixed with "/", files carry a size bucket.
func (f *FileSystem) ListDir(req ListDirRequest) entity.ToolResult {
	rel := req.RelativeWorkspacePath

	dir := f.root
	if rel != "." {
		var ok bool
		dir, ok = f.resolve(rel)
		if !ok {
			return entity.NewToolFailure(errno.ErrPermissionDenied, "Permission denied accessing directory: %s (outside workspace)", rel)
		}
	}

	logger.DebugX(moduleName, "list_dir", "path", dir, "explanation", req.Explanation)

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.NewToolFailure(errno.ErrNotFound, "Directory not found: %s", rel)
		}
		if errors.Is(err, fs.ErrPermission) {
			return entity.NewToolFailure(errno.ErrPermissionDenied, "Permission denied accessing directory: %s", rel)
		}
		return entity.NewToolFailure(errno.ErrIO, "Error listing directory %s: %v", rel, err)
	}
	if !info.IsDir() {
		return entity.NewToolFailure(errno.ErrNotADirectory, "Path is not a directory: %s", rel)
	}

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return entity.NewToolFailure(errno.ErrPermissionDenied, "Permission denied accessing directory: %s", rel)
		}
		return entity.NewToolFailure(errno.ErrIO, "Error listing directory %s: %v", rel, err)
	}

	if len(entries) == 0 {
		return entity.NewToolSuccess(fmt.Sprintf("Directory '%s' is empty.", rel))
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		// Stat the full path so symlinks report their target.
		st, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			st, err = entry.Info()
			if err != nil {
				return entity.NewToolFailure(errno.ErrIO, "Error listing directory %s: %v", rel, err)
			}
		}
		if st.IsDir() {
			items = append(items, fmt.Sprintf("📁 %s/", entry.Name()))
			continue
		}
		items = append(items, fmt.Sprintf("📄 %s (%s)", entry.Name(), SizeBucket(st.Size())))
	}

	return entity.NewToolSuccess(fmt.Sprintf("Contents of '%s':\n%s", rel, strings.Join(items, "\n")))
}

// SizeBucket renders a byte count as B, KB or MB, truncating.
func SizeBucket(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%dB", size)
	case size < 1024*1024:
		return fmt.Sprintf("%dKB", size/1024)
	default:
		return fmt.Sprintf("%dMB", size/(1024*1024))
	}
}
