package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"energypredictor/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesStdLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, restore, err := New(config.LoggingConfig{
		Level:     "info",
		Format:    "json",
		File:      path,
		MaxSizeMB: 1,
	})
	require.NoError(t, err)

	log.Printf("redirected %d", 42)
	logger.Info("direct")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "redirected 42")
	assert.Contains(t, string(data), "direct")
}

func TestNew_InvalidSettings(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "chatty", Format: "json"})
	assert.Error(t, err)

	_, _, err = New(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestNew_ConsoleFormat(t *testing.T) {
	logger, restore, err := New(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	defer restore()
	assert.True(t, logger.Core().Enabled(-1))
}
