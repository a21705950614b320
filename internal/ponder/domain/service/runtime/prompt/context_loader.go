package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"

	"github.com/kiosk404/ponder/pkg/logger"
)

// DefaultContextFile is looked up in the workspace root.
const DefaultContextFile = "context.md"

// reloadDebounce coalesces the burst of events editors emit on save.
const reloadDebounce = 200 * time.Millisecond

// ContextLoader keeps the content of the workspace context file and reloads
// it when the file changes on disk. A missing or unreadable file yields
// empty content.
type ContextLoader struct {
	mu      sync.RWMutex
	path    string
	content string

	watcher *fsnotify.Watcher
	closeCh chan struct{}
	closed  bool
	onLoad  func(content string)
}

// NewContextLoader loads name (relative to root unless absolute) and starts
// watching its directory. Watch failures only disable hot reload.
func NewContextLoader(root, name string) *ContextLoader {
	if name == "" {
		name = DefaultContextFile
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, name)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	cl := &ContextLoader{
		path:    path,
		closeCh: make(chan struct{}),
	}
	cl.Reload()

	if err := cl.startWatcher(); err != nil {
		logger.Debug("[ContextLoader] hot reload disabled for %s: %v", path, err)
	}
	return cl
}

// Path is the absolute path of the context file.
func (cl *ContextLoader) Path() string {
	return cl.path
}

// Content returns the trimmed file content, or "" when there is none.
func (cl *ContextLoader) Content() string {
	if cl == nil {
		return ""
	}
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.content
}

// OnLoad registers fn to be called after every reload.
func (cl *ContextLoader) OnLoad(fn func(content string)) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.onLoad = fn
}

// Reload reads the file now and returns the new content.
func (cl *ContextLoader) Reload() string {
	content := cl.read()

	cl.mu.Lock()
	changed := content != cl.content
	cl.content = content
	onLoad := cl.onLoad
	cl.mu.Unlock()

	if changed && onLoad != nil {
		onLoad(content)
	}
	return content
}

func (cl *ContextLoader) read() string {
	data, err := os.ReadFile(cl.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("[ContextLoader] context file %s not found, continuing without additional context", cl.path)
		return ""
	case err != nil:
		logger.Warn("[ContextLoader] error reading context file %s: %v", cl.path, err)
		return ""
	case !utf8.Valid(data):
		logger.Warn("[ContextLoader] context file %s is not valid UTF-8, ignoring it", cl.path)
		return ""
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		logger.Info("[ContextLoader] context file %s is empty", cl.path)
		return ""
	}
	logger.Info("[ContextLoader] loaded additional context from %s (%d characters)", cl.path, utf8.RuneCountInString(content))
	return content
}

// Close stops the file watcher.
func (cl *ContextLoader) Close() {
	if cl == nil {
		return
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.closed {
		return
	}
	cl.closed = true
	close(cl.closeCh)

	if cl.watcher != nil {
		cl.watcher.Close()
	}
}

// startWatcher watches the parent directory so that editors replacing the
// file through a rename are noticed too.
func (cl *ContextLoader) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(cl.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %q: %w", dir, err)
	}
	cl.watcher = watcher

	go cl.watchLoop()
	logger.Debug("[ContextLoader] watcher started for %s", cl.path)
	return nil
}

func (cl *ContextLoader) watchLoop() {
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case event, ok := <-cl.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cl.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() { cl.Reload() })
			timerMu.Unlock()
		case err, ok := <-cl.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("[ContextLoader] watcher error: %v", err)
		case <-cl.closeCh:
			return
		}
	}
}
