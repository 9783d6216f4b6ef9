// File: internal/logger/logger.go
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Builds the process logger on stderr so command output on stdout stays clean
func NewLogger(debug bool) *slog.Logger {
	return newLogger(os.Stderr, debug)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}
