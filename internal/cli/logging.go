package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/danielpatrickdp/lattice-stage/internal/config"
)

// newLogger builds the process logger. verbose forces debug level.
func newLogger(w io.Writer, c config.LogConfig, verbose bool) *slog.Logger {
	level := parseLevel(c.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
