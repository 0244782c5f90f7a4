// Package iotesting provides shared test utilities for integration
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"testing"

	"github.com/MinhHuy1507/agriseed/internal/ioconfig"
	"github.com/MinhHuy1507/agriseed/pkg/config"
)

// TestDatabaseName is the database name used for all integration tests.
// This ensures tests never accidentally run against production
// databases.
const TestDatabaseName = "agriseed_test"

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the standard config (from file or defaults) and overrides
// the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig(t)
//	    // ... use cfg for database operations
//	}
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	res, err := ioconfig.Load("", t.TempDir())
	if err != nil {
		t.Fatalf("cannot load test config: %v", err)
	}
	cfg := res.Config

	// Always use the test database for safety.
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for
// tests.
func GetTestDatabaseConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	cfg := GetTestConfig(t)
	return &cfg.Database
}
