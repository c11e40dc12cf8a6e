package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ServiceName is attached to every log record
const ServiceName = "acquaint"

// NewLogger builds the process logger from cfg and writes to stdout
func NewLogger(cfg *Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.IsDevelopment(),
		Level:     cfg.logLevel(),
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("env", cfg.Environment),
	)
}

// logLevel resolves LOG_LEVEL, falling back to info in production and debug elsewhere
func (c *Config) logLevel() slog.Level {
	var level slog.Level
	if c.LogLevel != "" && level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))) == nil {
		return level
	}
	if c.IsProduction() {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
