// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how logs are written.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // optional path of a rotated log file
}

// New returns a logger writing to stderr and, when cfg.File is set, to a
// rotated file as well. The returned closer releases the file sink.
func New(cfg Config) (*slog.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			slog.Warn("failed to create log directory, logging to stderr only", "path", cfg.File, "error", err)
		} else {
			lj := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    50, // MB
				MaxBackups: 5,
				MaxAge:     14, // days
				Compress:   true,
			}
			w = io.MultiWriter(os.Stderr, lj)
			closer = lj
		}
	}

	return slog.New(newHandler(w, cfg)), closer
}

// Init builds the logger and installs it as the slog default.
func Init(cfg Config) io.Closer {
	l, c := New(cfg)
	slog.SetDefault(l)
	return c
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
