package iologger_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/MinhHuy1507/agriseed/internal/iologger"
	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_FileDestination(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	require.NoError(t, iologger.Init(logDir, cfg, false))
	slog.Info("test message", "key", "value")

	data, err := os.ReadFile(filepath.Join(logDir, "agriseed.log"))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestInit_LevelFiltersDebug(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "warn",
		Destination: "file",
	}

	require.NoError(t, iologger.Init(logDir, cfg, false))
	slog.Info("dropped")
	slog.Warn("kept")

	data, err := os.ReadFile(filepath.Join(logDir, "agriseed.log"))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestInit_AppendPreservesLog(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	require.NoError(t, iologger.Init(logDir, cfg, false))
	slog.Info("first run")

	require.NoError(t, iologger.Init(logDir, cfg, true))
	slog.Info("second run")

	data, err := os.ReadFile(filepath.Join(logDir, "agriseed.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestInit_StderrDestination(t *testing.T) {
	cfg := config.LogConfig{
		Format:      "text",
		Level:       "info",
		Destination: "stderr",
	}
	assert.NoError(t, iologger.Init(t.TempDir(), cfg, false))
}
