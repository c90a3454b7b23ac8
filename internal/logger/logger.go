// Package logger builds the slog logger shared by every component.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// DefaultLogFile is used when Output is "file" and no Path is configured.
const DefaultLogFile = "livebundle-github.log"

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	Path   string `mapstructure:"path"`
}

// Writer resolves the configured output destination. Failing to open the
// log file falls back to stdout.
func (c Config) Writer() io.Writer {
	switch c.Output {
	case "stderr":
		return os.Stderr
	case "file":
		path := c.Path
		if path == "" {
			path = DefaultLogFile
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			slog.Error("failed to open log file, falling back to stdout", "path", path, "error", err)
			return os.Stdout
		}
		return f
	default:
		return os.Stdout
	}
}

// NewLogger initializes a slog logger from cfg. When output is nil the
// destination is taken from cfg.Output.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = cfg.Writer()
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
