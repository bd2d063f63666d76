package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "test")

	logger.Info("hidden")
	logger.Warn("shown", "lives", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "lives=2")
	assert.Contains(t, out, "test")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty", "")

	logger.Debug("debug line")
	logger.Info("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestFromEnvWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("SHOOTER_LOG_FILE", path)
	t.Setenv("SHOOTER_LOG_LEVEL", "debug")

	logger, closeFn, err := FromEnv("ssh")
	require.NoError(t, err)
	logger.Debug("session started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
}
