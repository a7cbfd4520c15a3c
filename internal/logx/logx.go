// Package logx sets up structured logging for the orbitscene commands.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// UserLevel is the level applied by New when no explicit level parses.
var UserLevel = slog.LevelInfo

// ParseLevel maps debug, info, warn and error (case-insensitive) to a slog
// level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return UserLevel, fmt.Errorf("unknown log level %q", s)
}

// New returns a text logger writing to w at the given level name. An
// unknown level falls back to UserLevel and is reported once at warn.
func New(w io.Writer, level string) *slog.Logger {
	lvl, err := ParseLevel(level)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	if err != nil {
		logger.Warn("falling back to default log level", "err", err, "level", lvl)
	}
	return logger
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenFile opens path for appending and returns a logger on it. The caller
// closes the returned file. TUI hosts use this so log lines never land on
// the terminal they draw to.
func OpenFile(path, level string) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}
