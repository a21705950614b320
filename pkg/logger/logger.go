// Package logger is the process-wide logger. It wraps a single logrus
// instance and exposes printf-style helpers plus "X" variants that attach a
// module name and key/value fields.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	std     = newStd()
	logFile *os.File
)

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// InitLog redirects log output to the file at path, creating parent
// directories as needed. Call FlushLog before exit.
func InitLog(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	std.SetOutput(f)
	return nil
}

// FlushLog syncs and closes the log file opened by InitLog, if any, and
// restores output to stderr.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return
	}
	_ = logFile.Sync()
	_ = logFile.Close()
	logFile = nil
	std.SetOutput(os.Stderr)
}

// SetLevel sets the minimum level by name (debug, info, warn, error).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetJSON switches between the JSON and text formatters.
func SetJSON(enabled bool) {
	if enabled {
		std.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }
func Info(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(format string, args ...interface{}) { std.Errorf(format, args...) }

func DebugX(module, msg string, kv ...interface{}) { entry(module, kv).Debug(msg) }
func InfoX(module, msg string, kv ...interface{})  { entry(module, kv).Info(msg) }
func WarnX(module, msg string, kv ...interface{})  { entry(module, kv).Warn(msg) }
func ErrorX(module, msg string, kv ...interface{}) { entry(module, kv).Error(msg) }

// entry builds a logrus entry from a module name and alternating key/value
// pairs. A trailing key without a value is logged under "!BADKEY".
func entry(module string, kv []interface{}) *logrus.Entry {
	fields := logrus.Fields{"module": module}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			fields["!BADKEY"] = key
			break
		}
		fields[key] = kv[i+1]
	}
	return std.WithFields(fields)
}
