// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured logger used for warnings and
// diagnostics. Progress lines stay on the command's output writer; this
// logger carries the machine-readable side.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the handler format and minimum level.
type Config struct {
	// Format is "text" (default) or "json".
	Format string
	// Level is debug, info, warn or error; anything else means info.
	Level string
	// File, when set, sends log records to a size-rotated file instead of
	// the writer passed to New.
	File string
	// MaxSizeMB is the rotation threshold for File (default 10).
	MaxSizeMB int
}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// New returns a logger writing to w.
func New(w io.Writer, cfg Config) *slog.Logger {
	if cfg.File != "" {
		w = RotatingFile(cfg.File, cfg.MaxSizeMB)
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RotatingFile returns a writer appending to path that rotates once the
// file passes maxSizeMB, keeping three compressed backups.
func RotatingFile(path string, maxSizeMB int) *lumberjack.Logger {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: defaultMaxBackups,
		Compress:   true,
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
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

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
