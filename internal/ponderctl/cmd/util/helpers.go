package util

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kiosk404/ponder/pkg/logger"
)

const DefaultErrorExitCode = 1

var fatalErrHandler = fatal

// BehaviorOnFatal replaces the default exit behavior, for tests.
func BehaviorOnFatal(f func(string, int)) {
	fatalErrHandler = f
}

// DefaultBehaviorOnFatal restores the exit behavior.
func DefaultBehaviorOnFatal() {
	fatalErrHandler = fatal
}

func fatal(msg string, code int) {
	logger.FlushLog()
	if len(msg) > 0 {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		fmt.Fprint(os.Stderr, msg)
	}
	os.Exit(code)
}

// CheckErr prints a user friendly error to STDERR and exits with a non-zero
// exit code. A nil err is a no-op.
func CheckErr(err error) {
	checkErr(err, fatalErrHandler)
}

func checkErr(err error, handleErr func(string, int)) {
	if err == nil {
		return
	}
	var agg interface{ Unwrap() []error }
	if errors.As(err, &agg) {
		msgs := make([]string, 0, len(agg.Unwrap()))
		for _, e := range agg.Unwrap() {
			msgs = append(msgs, "error: "+e.Error())
		}
		handleErr(strings.Join(msgs, "\n"), DefaultErrorExitCode)
		return
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "error: ") {
		msg = "error: " + msg
	}
	handleErr(msg, DefaultErrorExitCode)
}

// UsageErrorf formats a usage error that points at the command's help.
func UsageErrorf(cmdPath, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s\nSee '%s -h' for help and examples", msg, cmdPath)
}
