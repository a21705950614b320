package fstool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
	"github.com/kiosk404/ponder/pkg/logger"
)

// ReadFileRequest mirrors the read_file tool parameters.
type ReadFileRequest struct {
	TargetFile           string
	ShouldReadEntireFile bool
	StartLine            int
	EndLine              int
	Explanation          string
}

// ReadFile returns a slice of a text file, or all of it when
// ShouldReadEntireFile is set. Ranged reads are 1-indexed and inclusive; the
// end line is clamped to the file length.
func (f *FileSystem) ReadFile(req ReadFileRequest) entity.ToolResult {
	target := req.TargetFile
	path, ok := f.resolve(target)
	if !ok {
		return entity.NewToolFailure(errno.ErrPermissionDenied, "Permission denied reading file: %s (outside workspace)", target)
	}

	logger.DebugX(moduleName, "read_file", "path", path, "entire", req.ShouldReadEntireFile,
		"start", req.StartLine, "end", req.EndLine, "explanation", req.Explanation)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.NewToolFailure(errno.ErrFileNotFound, "File not found: %s", target)
		}
		return readFailure(target, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return readFailure(target, err)
	}
	if !utf8.Valid(data) {
		return entity.NewToolFailure(errno.ErrDecode, "Cannot read file %s: File contains non-UTF-8 content", target)
	}

	lines := splitLines(string(data))
	total := len(lines)

	if req.ShouldReadEntireFile {
		content := strings.Join(lines, "")
		return entity.NewToolSuccess(fmt.Sprintf("Contents of %s, lines 1-%d (entire file):\n```\n%s\n```",
			target, total, strings.TrimRightFunc(content, unicode.IsSpace)))
	}

	start, end := req.StartLine, req.EndLine
	if start < 1 {
		return entity.NewToolFailure(errno.ErrInvalidRange, "Start line must be >= 1")
	}
	if end < start {
		return entity.NewToolFailure(errno.ErrInvalidRange, "End line must be >= start line")
	}

	startIdx := start - 1
	endIdx := end
	if endIdx > total {
		endIdx = total
	}
	if endIdx-startIdx > f.maxLines {
		return entity.NewToolFailure(errno.ErrRangeTooLarge, "Cannot read more than %d lines at once", f.maxLines)
	}

	var body string
	if startIdx < endIdx {
		body = strings.Join(lines[startIdx:endIdx], "")
	}

	var sb strings.Builder
	if end > total {
		fmt.Fprintf(&sb, "Requested to read lines %d-%d, but returning lines %d-%d (end of file).\n", start, end, start, total)
	} else {
		fmt.Fprintf(&sb, "Contents of %s, lines %d-%d:\n", target, start, end)
	}
	fmt.Fprintf(&sb, "```\n%s\n```", strings.TrimRightFunc(body, unicode.IsSpace))
	sb.WriteString("\n\nSummary: ")
	sb.WriteString(rangeSummary(start, end, total))

	return entity.NewToolSuccess(sb.String())
}

// rangeSummary describes the lines left out before and after the returned
// slice.
func rangeSummary(start, end, total int) string {
	var parts []string
	if before := start - 1; before > 0 {
		parts = append(parts, fmt.Sprintf("Lines 1-%d not shown", before))
	}
	if total-end > 0 {
		parts = append(parts, fmt.Sprintf("Lines %d-%d not shown", end+1, total))
	}
	if len(parts) == 0 {
		return "Complete file section shown"
	}
	return strings.Join(parts, " | ")
}

func readFailure(target string, err error) entity.ToolResult {
	if errors.Is(err, fs.ErrPermission) {
		return entity.NewToolFailure(errno.ErrPermissionDenied, "Permission denied reading file: %s", target)
	}
	return entity.NewToolFailure(errno.ErrIO, "Error reading file %s: %v", target, err)
}

// splitLines splits s after every newline, keeping the terminators. CRLF is
// normalised to LF first. A trailing newline does not start a new line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
