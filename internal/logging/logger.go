// Package logging builds the slog.Logger passed to every component.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// EnvLevel overrides the level derived from -v/-q when set
const EnvLevel = "RAMWS_LOG"

// Options configures New
type Options struct {
	Verbose int // count of -v
	Quiet   int // count of -q
	// Writer defaults to os.Stderr. Terminal detection only applies to *os.File.
	Writer io.Writer
}

// Level maps flag counts to a slog level.
// Verbosity wins over quietness one step at a time, as in `-vvq`.
func Level(verbose, quiet int) slog.Level {
	switch n := verbose - quiet; {
	case n >= 1:
		return slog.LevelDebug
	case n == 0:
		return slog.LevelInfo
	case n == -1:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ParseLevel reads a level name such as "debug" or "WARN"
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// New creates a logger. Terminals get slog.TextHandler; pipes and files get
// slog.JSONHandler so scripted runs stay machine-parseable.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := Level(opts.Verbose, opts.Quiet)
	if env, ok := ParseLevel(os.Getenv(EnvLevel)); ok {
		level = env
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Verbose-opts.Quiet >= 2,
	}

	var handler slog.Handler
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
