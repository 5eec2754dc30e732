// Package logging holds the process-wide structured logger.
//
// The terminal belongs to the UI, so logs never go to stdout or stderr.
// By default nothing is logged; Open directs records to a file.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger replaces the shared logger. Passing nil disables logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the shared logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// ParseLevel maps a config value to a slog level. Unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Open appends text-formatted records at level or above to path and installs
// the result as the shared logger. The returned closer restores the no-op
// logger and closes the file.
func Open(path string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return closerFunc(func() error {
		SetLogger(nil)
		return f.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
