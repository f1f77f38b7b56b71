package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds an isolated logger for one App; the global slog default
// is left alone. Level and format names are case-insensitive, and anything
// unrecognised falls back to info and text.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(formatStr, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
