// Package config provides configuration management for agriseed.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Seed: batch_size, on_bad_row, timeout
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Seed.Datasets (per-command dataset filter)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use AGRISEED_ prefix with underscores for nesting:
//
//	AGRISEED_DATABASE_HOST=localhost
//	AGRISEED_DATABASE_PORT=5432
//	AGRISEED_SEED_BATCH_SIZE=5000
//	AGRISEED_LOG_LEVEL=info
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// OnBadRow policies for rows that fail validation during seeding.
const (
	// BadRowFail aborts the run on the first invalid row.
	BadRowFail = "fail"
	// BadRowSkip drops invalid rows, counts them, and reports the run
	// outcome as partial.
	BadRowSkip = "skip"
)

// Config represents the complete agriseed configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Seed contains settings specific to the seed command.
	Seed SeedConfig `mapstructure:"seed" yaml:"seed"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// SeedConfig contains settings specific to the seed command.
type SeedConfig struct {
	// BatchSize defines the number of records committed per transaction.
	// A failed batch rolls back alone; earlier batches stay committed,
	// so BatchSize bounds how much work a retry has to redo.
	// Each record uses 6 query parameters, so the PostgreSQL limit of
	// 65535 parameters per statement caps BatchSize at 10922.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// OnBadRow selects the policy for rows that fail validation:
	// "fail" aborts the run, "skip" drops the row and counts it.
	OnBadRow string `mapstructure:"on_bad_row" yaml:"on_bad_row"`

	// Timeout is the ceiling for a whole seeding run. Exceeding it marks
	// the run failed and releases the run lock. Zero means no ceiling.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Datasets is the list of dataset names to seed.
	// Empty slice means seed all datasets from datasets.yaml.
	Datasets []string `mapstructure:"datasets" yaml:"datasets"`
}

// UnmarshalYAML decodes SeedConfig from YAML. Timeout is written as a
// Go duration string ("30m", "2h"); yaml.v3 cannot decode scalars into
// time.Duration on its own.
func (sc *SeedConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		BatchSize int      `yaml:"batch_size"`
		OnBadRow  string   `yaml:"on_bad_row"`
		Timeout   string   `yaml:"timeout"`
		Datasets  []string `yaml:"datasets"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	sc.BatchSize = raw.BatchSize
	sc.OnBadRow = raw.OnBadRow
	sc.Datasets = raw.Datasets

	if raw.Timeout == "" || raw.Timeout == "0" {
		sc.Timeout = 0
		return nil
	}
	d, err := time.ParseDuration(raw.Timeout)
	if err != nil {
		return fmt.Errorf("invalid seed.timeout: %w", err)
	}
	sc.Timeout = d
	return nil
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "agriculture",
			SSLMode:  "disable",
		},
		Seed: SeedConfig{
			BatchSize: 5_000,
			OnBadRow:  BadRowFail,
			Timeout:   0,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
