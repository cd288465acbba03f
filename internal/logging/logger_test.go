package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradeforce/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.log")

	logger, cleanup, err := New(config.LoggingConfig{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("user bound", zap.String("user_id", "u1"))
	cleanup()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "user bound", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "chat-svc", entry["service"])
	assert.Contains(t, entry, "ts")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	logger, cleanup, err := New(config.LoggingConfig{Format: "console"})
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, logger)
}
