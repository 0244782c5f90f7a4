// Package dataset provides configuration and validation for bundled
// dataset files.
//
// This package defines the schema for datasets.yaml, which declares the
// dataset files the seeder loads: where each file lives, its format, and
// how its columns map onto (province, year, metric, value) observations.
// It also defines the Reader contract the loaders in internal/iodataset
// implement.
package dataset

import (
	"context"
)

// Supported dataset formats.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

// ManifestConfig represents the complete datasets.yaml configuration
// file.
type ManifestConfig struct {
	// Datasets is the list of dataset files to seed.
	Datasets []DatasetConfig `yaml:"datasets"`
}

// ColumnMap names the source columns that hold each part of an
// observation.
type ColumnMap struct {
	// Province is the column holding the GSO province code.
	Province string `yaml:"province"`

	// Year is the column holding the observation year.
	Year string `yaml:"year"`

	// Metric and Value configure long-format datasets: one row per
	// observation, metric name in one column, value in another.
	// Ignored when the dataset declares wide-format Metrics.
	Metric string `yaml:"metric,omitempty"`
	Value  string `yaml:"value,omitempty"`
}

// DatasetConfig represents configuration for a single dataset file.
//
// Two row shapes are supported:
//
//   - long format: every row is one observation; Columns.Metric and
//     Columns.Value name the metric/value columns.
//   - wide format: every row holds several observations (GSO exports
//     ship one column per measure); Metrics lists the value columns,
//     each producing one observation named after the column.
type DatasetConfig struct {
	// Name identifies the dataset, e.g. "agriculture" or "climate".
	// Used by the --datasets filter and in logs.
	Name string `yaml:"name"`

	// Path is the dataset file location. A relative path is resolved
	// against the data directory (~/.local/share/agriseed/data).
	Path string `yaml:"path"`

	// Format is one of "csv", "xlsx" or "sqlite".
	Format string `yaml:"format"`

	// Columns maps source columns onto observation parts.
	Columns ColumnMap `yaml:"columns"`

	// Metrics lists wide-format value columns. Empty means long format.
	Metrics []string `yaml:"metrics,omitempty"`

	// Sheet is the worksheet name for xlsx datasets. Empty means the
	// first sheet.
	Sheet string `yaml:"sheet,omitempty"`

	// Table is the table name for sqlite datasets.
	Table string `yaml:"table,omitempty"`
}

// Row is one raw record from a dataset: a mapping of column name to the
// raw string value, plus its 1-based position in the source for error
// reporting.
type Row struct {
	N      int
	Values map[string]string
}

// Reader produces a lazy, finite sequence of raw rows from one dataset.
// Next returns io.EOF after the last row. A Reader is not restartable;
// re-opening the dataset restarts the sequence.
type Reader interface {
	Next() (Row, error)
	Close() error
}

// Opener opens a dataset for reading. Implemented per format in
// internal/iodataset.
type Opener interface {
	Open(ctx context.Context, ds DatasetConfig) (Reader, error)
}

// Manifest loads the datasets.yaml configuration.
type Manifest interface {
	Load() (*ManifestConfig, error)
}

// ExpectedColumns returns the source columns a dataset must provide.
func (ds DatasetConfig) ExpectedColumns() []string {
	cols := []string{ds.Columns.Province, ds.Columns.Year}
	if len(ds.Metrics) > 0 {
		cols = append(cols, ds.Metrics...)
		return cols
	}
	return append(cols, ds.Columns.Metric, ds.Columns.Value)
}
