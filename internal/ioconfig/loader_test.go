package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MinhHuy1507/agriseed/internal/ioconfig"
	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config.yaml in the default location under home.
func writeConfig(t *testing.T, home, content string) string {
	t.Helper()
	dir := config.ConfigDir(home)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := config.ConfigFilePath(home)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad_Defaults verifies loading with no config file falls back to
// defaults.
func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()

	res, err := ioconfig.Load("", home)
	require.NoError(t, err)
	require.NotNil(t, res.Config)

	defaults := config.New()
	assert.Equal(t, defaults.Database, res.Config.Database)
	assert.Equal(t, defaults.Seed.BatchSize, res.Config.Seed.BatchSize)
	assert.Equal(t, home, res.Config.HomeDir)
	assert.Empty(t, res.SourcePath)
}

// TestLoad_File verifies values from config.yaml override defaults.
func TestLoad_File(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, `
database:
  host: db.example.org
  port: 5433
seed:
  batch_size: 100
  on_bad_row: skip
log:
  level: debug
`)

	res, err := ioconfig.Load("", home)
	require.NoError(t, err)

	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, "db.example.org", res.Config.Database.Host)
	assert.Equal(t, 5433, res.Config.Database.Port)
	assert.Equal(t, 100, res.Config.Seed.BatchSize)
	assert.Equal(t, config.BadRowSkip, res.Config.Seed.OnBadRow)
	assert.Equal(t, "debug", res.Config.Log.Level)

	// Unset values keep defaults.
	assert.Equal(t, "postgres", res.Config.Database.User)
	assert.Equal(t, "json", res.Config.Log.Format)
}

// TestLoad_ExplicitPath verifies an explicit config path is honored and
// a missing one is an error.
func TestLoad_ExplicitPath(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database:\n  database: custom_db\n"), 0644))

	res, err := ioconfig.Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, "custom_db", res.Config.Database.Database)

	_, err = ioconfig.Load(filepath.Join(home, "missing.yaml"), home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestLoad_EnvOverride verifies AGRISEED_* variables override both
// defaults and file values.
func TestLoad_EnvOverride(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "database:\n  host: from-file\n")

	t.Setenv("AGRISEED_DATABASE_HOST", "from-env")
	t.Setenv("AGRISEED_SEED_BATCH_SIZE", "42")

	res, err := ioconfig.Load("", home)
	require.NoError(t, err)

	assert.Equal(t, "from-env", res.Config.Database.Host)
	assert.Equal(t, 42, res.Config.Seed.BatchSize)
}

// TestLoad_InvalidValuesFallBack verifies out-of-range values in
// config.yaml are rejected by the option validators and the defaults
// stay in place, so a bad file can never produce an unusable config.
func TestLoad_InvalidValuesFallBack(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
seed:
  batch_size: -5
  on_bad_row: explode
log:
  level: verbose
`)

	res, err := ioconfig.Load("", home)
	require.NoError(t, err)

	defaults := config.New()
	assert.Equal(t, defaults.Seed.BatchSize, res.Config.Seed.BatchSize)
	assert.Equal(t, defaults.Seed.OnBadRow, res.Config.Seed.OnBadRow)
	assert.Equal(t, defaults.Log.Level, res.Config.Log.Level)
}

// TestLoad_Timeout verifies duration strings in config.yaml reach
// Seed.Timeout.
func TestLoad_Timeout(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "seed:\n  timeout: 30m\n")

	res, err := ioconfig.Load("", home)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, res.Config.Seed.Timeout)
}

// TestLoad_MalformedFile verifies a broken config file is an error, not
// a silent fallback.
func TestLoad_MalformedFile(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "database: [not: a: mapping\n")

	_, err := ioconfig.Load(path, home)
	require.Error(t, err)
}
