package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/soocke/spectator-recorder/config"
)

// NewLogger returns a structured slog.Logger writing format ("json" or
// "text") at the given level.
func NewLogger(level slog.Leveler, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch format {
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

// loggerFor builds the process logger from cfg. The returned closer releases
// the log file, if one was opened.
func loggerFor(cfg *config.Config) (*slog.Logger, func() error, error) {
	level := slog.Level(cfg.LogLevel)
	if cfg.Debug && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	if cfg.LogFile == "" {
		return NewLogger(level, cfg.LogFormat, os.Stdout), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewLogger(level, cfg.LogFormat, f), f.Close, nil
}
