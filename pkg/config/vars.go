package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "agriseed"
)

// RunLockKey is the PostgreSQL advisory lock key that guards against
// concurrent seeding runs. Any agriseed process seeding the same
// database competes for this key.
const RunLockKey int64 = 731_941_015

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/agriseed by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for bundled dataset files.
// Returns ~/.local/share/agriseed/data by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/agriseed/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/agriseed/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatasetsFilePath returns the full path to the datasets.yaml manifest.
// Returns ~/.config/agriseed/datasets.yaml by default.
func DatasetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "datasets.yaml")
}
