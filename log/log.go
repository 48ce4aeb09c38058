// Package log provides the event-tagged logging helpers used across
// the etc packages. The call shape (an event tag followed by a
// printf-style message) mirrors the rest of this module's teacher
// lineage; the backing implementation is a zap sugared logger instead
// of a hand-rolled stdout writer.
package log

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = newDefault()
)

func newDefault() *zap.SugaredLogger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// SetLogger replaces the package-level logger. Tests use this to
// redirect output to an observer core instead of the default JSON
// encoder.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l.Sugar()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// DebugLogf logs a debug-level message tagged with event.
func DebugLogf(event, format string, args ...interface{}) {
	current().Debugf(event+": "+format, args...)
}

// InfoLogf logs an info-level message tagged with event.
func InfoLogf(event, format string, args ...interface{}) {
	current().Infof(event+": "+format, args...)
}

// ErrorLogf logs an error-level message tagged with event.
func ErrorLogf(event, format string, args ...interface{}) {
	current().Errorf(event+": "+format, args...)
}

// FatalLogf logs a message tagged with event and then panics, mirroring
// the teacher's FatalLog semantics (callers that truly want the process
// to exit call os.Exit themselves after recovering at the top level).
func FatalLogf(event, format string, args ...interface{}) {
	current().Errorf(event+": "+format, args...)
	panic(fmt.Sprintf(event+": "+format, args...))
}
