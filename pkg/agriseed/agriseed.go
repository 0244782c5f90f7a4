// Package agriseed defines the contracts between the CLI and the
// lifecycle components implemented in internal/io packages.
package agriseed

import (
	"context"
	"time"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple
// times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate.
	// If tables already exist, behavior depends on user confirmation
	// via DropAllTables.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version using
	// GORM AutoMigrate.
	Migrate(ctx context.Context) error
}

// Seeder runs one end-to-end seeding attempt: provinces reference data
// first, then every configured dataset through the upsert engine,
// observed by the run reporter.
//
// A run is mutually exclusive per database. Seeding is idempotent:
// running twice on identical input yields the same table state as
// running once.
type Seeder interface {
	// Seed executes a run and returns its summary. The summary is
	// non-nil whenever a LoadRun was recorded, even for failed runs.
	Seed(ctx context.Context) (*RunSummary, error)
}

// Verifier runs post-seed consistency checks.
type Verifier interface {
	// Verify checks table counts, key uniqueness and the last run
	// outcome, and prints a human-readable report.
	Verify(ctx context.Context) error
}

// RunSummary reports what one seeding run did.
type RunSummary struct {
	RunID            string
	Outcome          string
	Datasets         int
	RecordsRead      int
	RecordsUpserted  int
	RecordsSkipped   int
	BatchesCommitted int
	Elapsed          time.Duration
}
