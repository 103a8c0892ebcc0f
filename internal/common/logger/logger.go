// Package logger wraps log/slog with the leveled text/JSON configuration
// minigit's command façade exposes via --log-level and --log-format.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Level mirrors slog's levels under names the CLI flags use directly.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Format selects the slog handler used for output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config configures a Logger produced by New.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Default is the process-wide logger, reconfigured once by the CLI root
// command's PersistentPreRun.
var Default *slog.Logger

func init() {
	Default = New(Config{Level: LevelInfo, Format: FormatText, Output: os.Stderr})
}

// New builds a slog.Logger from cfg.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string, args ...any) { Default.Debug(msg, args...) }
func Info(msg string, args ...any)  { Default.Info(msg, args...) }
func Warn(msg string, args ...any)  { Default.Warn(msg, args...) }
func Error(msg string, args ...any) { Default.Error(msg, args...) }

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger { return Default.With(args...) }
