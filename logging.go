package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// initLogging installs the process-wide slog default. w defaults to
// os.Stderr so stdout stays free for plan output; format is "text" or
// "json".
func initLogging(level slog.Level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// newLogger returns a logger tagged with the component it serves.
func newLogger(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

func parseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
