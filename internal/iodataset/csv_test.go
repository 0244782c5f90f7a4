package iodataset_test

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MinhHuy1507/agriseed/internal/iodataset"
	"github.com/MinhHuy1507/agriseed/pkg/dataset"
	"github.com/MinhHuy1507/agriseed/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireCode asserts err is a *gn.Error carrying the given code.
func requireCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, code, gnErr.Code)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// drain reads every row from a reader until io.EOF.
func drain(t *testing.T, r dataset.Reader) []dataset.Row {
	t.Helper()
	var rows []dataset.Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func csvDataset(path string) dataset.DatasetConfig {
	return dataset.DatasetConfig{
		Name:   "climate",
		Path:   path,
		Format: dataset.FormatCSV,
		Columns: dataset.ColumnMap{
			Province: "province_code",
			Year:     "year",
			Metric:   "metric",
			Value:    "value",
		},
	}
}

func TestCSV_ReadsRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "climate.csv",
		"province_code,year,metric,value\n"+
			"01,2020,rainfall_mm,1676.3\n"+
			"79,2020,rainfall_mm,1949.0\n")

	opener := iodataset.NewOpener()
	r, err := opener.Open(context.Background(), csvDataset(path))
	require.NoError(t, err)
	defer r.Close()

	rows := drain(t, r)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].N)
	assert.Equal(t, "01", rows[0].Values["province_code"])
	assert.Equal(t, "2020", rows[0].Values["year"])
	assert.Equal(t, "rainfall_mm", rows[0].Values["metric"])
	assert.Equal(t, "1676.3", rows[0].Values["value"])

	assert.Equal(t, 2, rows[1].N)
	assert.Equal(t, "79", rows[1].Values["province_code"])
}

func TestCSV_ExtraColumnsIgnored(t *testing.T) {
	path := writeFile(t, t.TempDir(), "climate.csv",
		"province_code,year,metric,value,source\n"+
			"01,2020,rainfall_mm,1676.3,GSO\n")

	opener := iodataset.NewOpener()
	r, err := opener.Open(context.Background(), csvDataset(path))
	require.NoError(t, err)
	defer r.Close()

	rows := drain(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "GSO", rows[0].Values["source"])
}

func TestCSV_MissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "climate.csv",
		"province_code,year,metric\n01,2020,rainfall_mm\n")

	opener := iodataset.NewOpener()
	_, err := opener.Open(context.Background(), csvDataset(path))
	requireCode(t, err, errcode.DatasetFormatError)
}

func TestCSV_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "climate.csv", "")

	opener := iodataset.NewOpener()
	_, err := opener.Open(context.Background(), csvDataset(path))
	require.Error(t, err)
}

func TestCSV_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	opener := iodataset.NewOpener()
	_, err := opener.Open(context.Background(), csvDataset(path))
	require.Error(t, err)
}

func TestCSV_RaggedRow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "climate.csv",
		"province_code,year,metric,value\n"+
			"01,2020,rainfall_mm,1676.3\n"+
			"79,2020\n")

	opener := iodataset.NewOpener()
	r, err := opener.Open(context.Background(), csvDataset(path))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	requireCode(t, err, errcode.DatasetFormatError)

	// The csv parser detail, including the line number, survives the
	// wrapping so the offending record can be located.
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.ErrorIs(t, gnErr.Err, csv.ErrFieldCount)
	assert.Contains(t, err.Error(), "line 3")
}

func TestOpen_UnknownFormat(t *testing.T) {
	ds := csvDataset("whatever")
	ds.Format = "parquet"

	opener := iodataset.NewOpener()
	_, err := opener.Open(context.Background(), ds)
	requireCode(t, err, errcode.DatasetUnknownFormatError)
}
