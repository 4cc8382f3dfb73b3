// Package log configures the process-wide structured logger shared by the
// API server and the runner CLI.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default text logger at the named level. Unknown level
// names fall back to info.
func Setup(logLevel string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	})))
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// WithModule returns the default logger tagged with the subsystem name.
// Every binary logs under one module field so mixed output stays filterable.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
