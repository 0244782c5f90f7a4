// Package ioconfig provides I/O operations for loading configuration
// from files and environment. This is an impure package that handles
// file system operations.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a validated
// Config with source info. If configPath is empty, it searches the
// default location (~/.config/agriseed/config.yaml).
//
// Returns error if the file is malformed.
func Load(configPath, homeDir string) (*LoadResult, error) {
	v := viper.New()

	// Set config file type
	v.SetConfigType("yaml")

	// Enable environment variable overrides
	// Precedence: flags > env vars > config file > defaults
	v.SetEnvPrefix("AGRISEED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults BEFORE reading config - this allows env vars to work
	// with AutomaticEnv(). Even if a config file exists, defaults ensure
	// viper knows which keys to check for env vars.
	defaults := config.New()
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.user", defaults.Database.User)
	v.SetDefault("database.password", defaults.Database.Password)
	v.SetDefault("database.database", defaults.Database.Database)
	v.SetDefault("database.ssl_mode", defaults.Database.SSLMode)
	v.SetDefault("seed.batch_size", defaults.Seed.BatchSize)
	v.SetDefault("seed.on_bad_row", defaults.Seed.OnBadRow)
	v.SetDefault("seed.timeout", defaults.Seed.Timeout)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.destination", defaults.Log.Destination)

	if configPath != "" {
		// An explicit config path must exist. Viper reports a missing
		// SetConfigFile path as a plain *fs.PathError, not as
		// ConfigFileNotFoundError, so check it here.
		if _, statErr := os.Stat(configPath); statErr != nil {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		v.SetConfigFile(configPath)
	} else {
		// Try the default path; if it does not exist viper falls back
		// to defaults + env vars.
		defaultPath := config.ConfigFilePath(homeDir)
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
		}
	}

	// Read config file (if it exists)
	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file anywhere - use defaults + env vars
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	// Unmarshal into Config struct
	var loaded config.Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Route everything through the Option validators. Out-of-range
	// values from config.yaml or the environment (a negative batch
	// size, an unknown log level) are rejected with a warning and the
	// default stays in place, so the returned config is always valid.
	cfg := config.New()
	cfg.Update(loaded.ToOptions())
	cfg.Seed.Datasets = loaded.Seed.Datasets
	cfg.HomeDir = homeDir

	// Determine source for user feedback
	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvOverride() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvOverride reports whether any AGRISEED_* environment variable is
// set.
func hasEnvOverride() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "AGRISEED_") {
			return true
		}
	}
	return false
}
