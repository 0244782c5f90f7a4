package dataset

import (
	"fmt"
	"strings"
)

// Validate checks a manifest for configuration mistakes that would only
// surface mid-run otherwise. It returns the first error found.
func (m *ManifestConfig) Validate() error {
	if len(m.Datasets) == 0 {
		return fmt.Errorf("datasets.yaml declares no datasets")
	}

	seen := make(map[string]bool)
	for i, ds := range m.Datasets {
		if err := ds.validate(); err != nil {
			return fmt.Errorf("dataset %d (%q): %w", i+1, ds.Name, err)
		}
		if seen[ds.Name] {
			return fmt.Errorf("dataset name %q declared twice", ds.Name)
		}
		seen[ds.Name] = true
	}
	return nil
}

// Filter returns the datasets matching the given names, or all datasets
// when names is empty. Unknown names are reported as an error.
func (m *ManifestConfig) Filter(names []string) ([]DatasetConfig, error) {
	if len(names) == 0 {
		return m.Datasets, nil
	}

	byName := make(map[string]DatasetConfig, len(m.Datasets))
	for _, ds := range m.Datasets {
		byName[ds.Name] = ds
	}

	var res []DatasetConfig
	var missing []string
	for _, name := range names {
		ds, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		res = append(res, ds)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown datasets: %s",
			strings.Join(missing, ", "))
	}
	return res, nil
}

func (ds DatasetConfig) validate() error {
	if ds.Name == "" {
		return fmt.Errorf("name is required")
	}
	if ds.Path == "" {
		return fmt.Errorf("path is required")
	}

	switch ds.Format {
	case FormatCSV, FormatXLSX:
	case FormatSQLite:
		if ds.Table == "" {
			return fmt.Errorf("sqlite datasets require a table name")
		}
	default:
		return fmt.Errorf("unsupported format %q", ds.Format)
	}

	if ds.Columns.Province == "" || ds.Columns.Year == "" {
		return fmt.Errorf("columns.province and columns.year are required")
	}

	// Long format needs the metric/value pair; wide format needs at
	// least one metric column.
	if len(ds.Metrics) == 0 &&
		(ds.Columns.Metric == "" || ds.Columns.Value == "") {
		return fmt.Errorf(
			"either metrics or columns.metric/columns.value must be set")
	}

	return nil
}
