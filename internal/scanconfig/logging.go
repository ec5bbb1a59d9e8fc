// Package scanconfig provides the ambient logging setup shared by the
// scanner core and its CLI. The logging subsystem uses Go's stdlib log/slog
// package exclusively; all output goes to os.Stderr so stdout stays clean
// for machine-readable summaries.
package scanconfig

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger with the given
// level and format ("json" or anything else for text). Output goes to
// os.Stderr. Safe to call multiple times; each call replaces the previous
// global logger.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is the writer-parameterized variant used by tests
// to capture log output in a buffer instead of os.Stderr.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel determines the slog.Level from CLI flags and environment.
// Priority (highest to lowest): DRIFT_DEBUG=1 env var, --verbose flag,
// --quiet flag, default info. If both verbose and quiet are set, verbose
// wins.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv("DRIFT_DEBUG") == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ResolveLogFormat reads DRIFT_LOG_FORMAT and returns "json" or "text".
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("DRIFT_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger returns a child logger derived from the global default logger
// with a "component" attribute, so log lines can be filtered by subsystem.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
