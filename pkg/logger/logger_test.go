package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("shift id=%d created", 42)
	log.Warn("slot %s taken", "09:00")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shift id=42 created")
	assert.Contains(t, string(data), "slot 09:00 taken")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("nothing %s", "here")
	assert.NoError(t, log.Close())
}
