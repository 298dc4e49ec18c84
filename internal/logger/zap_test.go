package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_StampsServiceField(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{
		Level:   "info",
		Format:  "json",
		Output:  logFile,
		Service: "media-catalog-service",
	}, SentryConfig{})
	require.NoError(t, err)

	log.Info("cache warm", zap.Int("movies", 5))
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "media-catalog-service", entry["service"])
	assert.Equal(t, "cache warm", entry["message"])
	assert.Equal(t, float64(5), entry["movies"])
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "verbose", Format: "json", Output: logFile}, SentryConfig{})
	require.NoError(t, err)

	log.Debug("suppressed")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Empty(t, raw, "debug entries are filtered at the default info level")
}
