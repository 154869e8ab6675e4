// Package logging provides the leveled, package-wide logger used by the
// loader, renderer and CLI. Records are slog text lines on stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

var level = new(slog.LevelVar)

var current atomic.Pointer[slog.Logger]

func init() {
	SetOutput(os.Stderr)
}

// New creates a logger writing text records to w at the shared level.
// The "error" attribute key is shortened to "err".
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// SetOutput redirects the package logger; tests use it to capture records.
func SetOutput(w io.Writer) {
	current.Store(New(w))
}

// Discard silences the package logger.
func Discard() { SetOutput(io.Discard) }

// Logger returns the package logger for callers that want attributes.
func Logger() *slog.Logger { return current.Load() }

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := ParseLevel(s)
	if !ok {
		return
	}
	level.Set(l)
}

func logf(l slog.Level, format string, args ...any) {
	lg := current.Load()
	if !lg.Enabled(context.Background(), l) {
		return
	}
	// Only format when there are args so literal % in prebuilt messages survives.
	if len(args) == 0 {
		lg.Log(context.Background(), l, format)
		return
	}
	lg.Log(context.Background(), l, fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...any) { logf(slog.LevelDebug, format, a...) }
func Infof(format string, a ...any)  { logf(slog.LevelInfo, format, a...) }
func Warnf(format string, a ...any)  { logf(slog.LevelWarn, format, a...) }
func Errorf(format string, a ...any) { logf(slog.LevelError, format, a...) }

// TimeTrack logs the elapsed time of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
