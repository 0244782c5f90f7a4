package iodataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/MinhHuy1507/agriseed/pkg/dataset"
)

// csvReader streams rows from a CSV dataset file.
type csvReader struct {
	ds     dataset.DatasetConfig
	file   *os.File
	r      *csv.Reader
	header []string
	n      int
}

// openCSV opens a CSV dataset and validates its header before any row
// is yielded.
func openCSV(ds dataset.DatasetConfig) (dataset.Reader, error) {
	file, err := os.Open(ds.Path)
	if err != nil {
		return nil, ReadError(ds.Name, ds.Path, err)
	}

	r := csv.NewReader(file)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil, FormatError(ds.Name, ds.Path,
				ds.ExpectedColumns(), nil, nil)
		}
		return nil, ReadError(ds.Name, ds.Path, err)
	}

	if missing := checkColumns(ds.ExpectedColumns(), header); len(missing) > 0 {
		file.Close()
		return nil, FormatError(ds.Name, ds.Path,
			ds.ExpectedColumns(), missing, nil)
	}

	return &csvReader{ds: ds, file: file, r: r, header: header}, nil
}

// Next returns the next raw row, or io.EOF after the last one.
// A ragged record (wrong field count) aborts the sequence with a
// format error.
func (c *csvReader) Next() (dataset.Row, error) {
	record, err := c.r.Read()
	if err != nil {
		if err == io.EOF {
			return dataset.Row{}, io.EOF
		}
		return dataset.Row{}, FormatError(c.ds.Name, c.ds.Path,
			c.ds.ExpectedColumns(), nil, err)
	}

	c.n++
	values := make(map[string]string, len(c.header))
	for i, col := range c.header {
		values[col] = record[i]
	}

	return dataset.Row{N: c.n, Values: values}, nil
}

// Close releases the underlying file.
func (c *csvReader) Close() error {
	return c.file.Close()
}
