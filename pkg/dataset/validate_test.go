package dataset_test

import (
	"testing"

	"github.com/MinhHuy1507/agriseed/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longDataset(name string) dataset.DatasetConfig {
	return dataset.DatasetConfig{
		Name:   name,
		Path:   name + ".csv",
		Format: dataset.FormatCSV,
		Columns: dataset.ColumnMap{
			Province: "province_code",
			Year:     "year",
			Metric:   "metric",
			Value:    "value",
		},
	}
}

func wideDataset(name string) dataset.DatasetConfig {
	return dataset.DatasetConfig{
		Name:   name,
		Path:   name + ".csv",
		Format: dataset.FormatCSV,
		Columns: dataset.ColumnMap{
			Province: "province_code",
			Year:     "year",
		},
		Metrics: []string{"rice_area", "rice_yield"},
	}
}

func TestValidate_OK(t *testing.T) {
	m := dataset.ManifestConfig{
		Datasets: []dataset.DatasetConfig{
			longDataset("climate"),
			wideDataset("agriculture"),
		},
	}
	assert.NoError(t, m.Validate())
}

func TestValidate_Empty(t *testing.T) {
	m := dataset.ManifestConfig{}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no datasets")
}

func TestValidate_DuplicateNames(t *testing.T) {
	m := dataset.ManifestConfig{
		Datasets: []dataset.DatasetConfig{
			longDataset("climate"),
			longDataset("climate"),
		},
	}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared twice")
}

func TestValidate_BadDatasets(t *testing.T) {
	tests := []struct {
		msg    string
		mangle func(*dataset.DatasetConfig)
	}{
		{"name is required", func(ds *dataset.DatasetConfig) {
			ds.Name = ""
		}},
		{"path is required", func(ds *dataset.DatasetConfig) {
			ds.Path = ""
		}},
		{"unsupported format", func(ds *dataset.DatasetConfig) {
			ds.Format = "parquet"
		}},
		{"columns.province and columns.year", func(ds *dataset.DatasetConfig) {
			ds.Columns.Province = ""
		}},
		{"columns.metric/columns.value", func(ds *dataset.DatasetConfig) {
			ds.Columns.Value = ""
		}},
	}

	for _, tt := range tests {
		ds := longDataset("climate")
		tt.mangle(&ds)
		m := dataset.ManifestConfig{Datasets: []dataset.DatasetConfig{ds}}

		err := m.Validate()
		require.Error(t, err, tt.msg)
		assert.Contains(t, err.Error(), tt.msg)
	}
}

func TestValidate_SQLiteNeedsTable(t *testing.T) {
	ds := longDataset("climate")
	ds.Format = dataset.FormatSQLite
	m := dataset.ManifestConfig{Datasets: []dataset.DatasetConfig{ds}}

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table name")

	ds.Table = "observations"
	m = dataset.ManifestConfig{Datasets: []dataset.DatasetConfig{ds}}
	assert.NoError(t, m.Validate())
}

func TestFilter_AllWhenEmpty(t *testing.T) {
	m := dataset.ManifestConfig{
		Datasets: []dataset.DatasetConfig{
			longDataset("climate"),
			wideDataset("agriculture"),
		},
	}

	selected, err := m.Filter(nil)
	require.NoError(t, err)
	assert.Len(t, selected, 2)
}

func TestFilter_ByName(t *testing.T) {
	m := dataset.ManifestConfig{
		Datasets: []dataset.DatasetConfig{
			longDataset("climate"),
			wideDataset("agriculture"),
		},
	}

	selected, err := m.Filter([]string{"agriculture"})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "agriculture", selected[0].Name)
}

func TestFilter_Unknown(t *testing.T) {
	m := dataset.ManifestConfig{
		Datasets: []dataset.DatasetConfig{longDataset("climate")},
	}

	_, err := m.Filter([]string{"climate", "fisheries"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fisheries")
}

func TestExpectedColumns(t *testing.T) {
	long := longDataset("climate")
	assert.Equal(t,
		[]string{"province_code", "year", "metric", "value"},
		long.ExpectedColumns())

	wide := wideDataset("agriculture")
	assert.Equal(t,
		[]string{"province_code", "year", "rice_area", "rice_yield"},
		wide.ExpectedColumns())
}
