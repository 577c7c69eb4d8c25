// Package scnrconfig provides the ambient concerns every scnr entry point
// shares: structured logging setup and an optional TOML config file. All log
// output goes to os.Stderr so stdout stays reserved for scan results.
package scnrconfig

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger at the given level
// and format ("json" or anything else for text), writing to os.Stderr. Safe
// to call more than once — each call replaces the previous configuration.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is SetupLogging with an explicit writer, so tests
// can capture log output instead of writing to os.Stderr.
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

// ResolveLogLevel determines the effective log level from CLI flags and
// environment, highest priority first:
//
//  1. SCNR_DEBUG=1 -> slog.LevelDebug
//  2. verbose flag -> slog.LevelDebug
//  3. quiet flag -> slog.LevelError
//  4. default -> slog.LevelInfo
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv("SCNR_DEBUG") == "1" {
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

// ResolveLogFormat reads SCNR_LOG_FORMAT and returns "json" if it is set to
// that (case-insensitively), otherwise "text".
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("SCNR_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger returns a child logger tagged with a "component" attribute, so
// log lines can be filtered by subsystem.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
