// Package log sets up the structured logger. The interactive table owns the
// terminal, so logs go to a file or nowhere while it runs.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below debug and logs every command line and transition.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a config string to a level. Unknown values mean error.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Options selects the log destination.
type Options struct {
	Level       string
	File        string
	Interactive bool
	Stderr      io.Writer
}

// New builds a logger. The returned close function releases the log file,
// if any, and is always safe to call.
func New(opts Options) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, noop, fmt.Errorf("opening log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, handlerOpts)), f.Close, nil
	}

	if opts.Interactive {
		return slog.New(slog.DiscardHandler), noop, nil
	}

	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), noop, nil
}
