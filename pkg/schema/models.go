// Package schema provides database schema models for agriseed.
// Models match the tables the dashboard backend reads.
package schema

import (
	"database/sql"
	"time"
)

// LoadRun status values. A run is created as StatusRunning and is
// finalized exactly once; re-invocation of the seeder is the only retry
// mechanism.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// LoadRun outcome values. OutcomePartial means the run completed with
// some rows skipped under the skip policy.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// Province is a reference row for one of the 63 Vietnamese provinces.
type Province struct {
	// Code is the stable GSO province code, e.g. "89" for An Giang.
	Code string `gorm:"type:varchar(8);primaryKey"`

	// Name is the official province name.
	Name string `gorm:"type:varchar(64);not null"`

	// Region is the statistical region the province belongs to,
	// e.g. "Mekong River Delta".
	Region string `gorm:"type:varchar(64);not null"`
}

// TableName returns the PostgreSQL table name for Province.
func (Province) TableName() string { return "provinces" }

// StatRecord is one observation: a metric value for a province and year.
// (ProvinceCode, Year, Metric) is unique; a later load with the same key
// overwrites, never duplicates.
type StatRecord struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	// ProvinceCode references provinces.code.
	ProvinceCode string `gorm:"type:varchar(8);not null;uniqueIndex:idx_stat_records_key,priority:1"`

	// Year is the observation year.
	Year int `gorm:"not null;uniqueIndex:idx_stat_records_key,priority:2"`

	// Metric names the measure, e.g. "rice_yield" or "annual_rainfall".
	Metric string `gorm:"type:varchar(64);not null;uniqueIndex:idx_stat_records_key,priority:3"`

	// Value is the observed value; NULL when the source reports no data
	// for the key.
	Value sql.NullFloat64

	// LoadRunID is the id of the run that last wrote this row.
	LoadRunID string `gorm:"type:uuid"`

	// UpdatedAt is the time of the last write to this row.
	UpdatedAt time.Time
}

// TableName returns the PostgreSQL table name for StatRecord.
func (StatRecord) TableName() string { return "stat_records" }

// LoadRun tracks one end-to-end execution of the seeder.
type LoadRun struct {
	// ID is a random UUID assigned at run start.
	ID string `gorm:"type:uuid;primaryKey"`

	// Status is running until the run is finalized as completed or
	// failed.
	Status string `gorm:"type:varchar(16);not null;default:'running'"`

	// Outcome is empty while running, then success, partial or failed.
	Outcome string `gorm:"type:varchar(16)"`

	// Error holds the failure message for failed runs.
	Error sql.NullString `gorm:"type:text"`

	StartedAt  time.Time `gorm:"not null"`
	FinishedAt sql.NullTime

	// Counters, updated after every batch commit.
	RecordsRead      int `gorm:"not null;default:0"`
	RecordsUpserted  int `gorm:"not null;default:0"`
	RecordsSkipped   int `gorm:"not null;default:0"`
	BatchesCommitted int `gorm:"not null;default:0"`
}

// TableName returns the PostgreSQL table name for LoadRun.
func (LoadRun) TableName() string { return "load_runs" }
