// File: internal/logger/logger_test.go
package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Level(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	log := newLogger(&buf, false)
	log.Debug("hidden")
	log.Info("shown", "provider", "r2")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "provider=r2")

	buf.Reset()
	log = newLogger(&buf, true)
	log.Debug("now visible")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Same(t, log, slog.Default())
}
