package iodataset

import (
	"io"

	"github.com/MinhHuy1507/agriseed/pkg/dataset"
	"github.com/tealeg/xlsx/v2"
)

// xlsxReader iterates the rows of one worksheet. The whole file is in
// memory after OpenFile, so Next only walks the parsed rows.
type xlsxReader struct {
	ds     dataset.DatasetConfig
	rows   []*xlsx.Row
	header []string
	pos    int
	n      int
}

// openXLSX opens an XLSX dataset, selects the worksheet, and validates
// the header row.
func openXLSX(ds dataset.DatasetConfig) (dataset.Reader, error) {
	f, err := xlsx.OpenFile(ds.Path)
	if err != nil {
		return nil, ReadError(ds.Name, ds.Path, err)
	}

	sheet, err := pickSheet(f, ds)
	if err != nil {
		return nil, err
	}

	if len(sheet.Rows) == 0 {
		return nil, FormatError(ds.Name, ds.Path,
			ds.ExpectedColumns(), nil, nil)
	}

	header := rowToStrings(sheet.Rows[0])
	if missing := checkColumns(ds.ExpectedColumns(), header); len(missing) > 0 {
		return nil, FormatError(ds.Name, ds.Path,
			ds.ExpectedColumns(), missing, nil)
	}

	return &xlsxReader{
		ds:     ds,
		rows:   sheet.Rows[1:],
		header: header,
	}, nil
}

func pickSheet(f *xlsx.File, ds dataset.DatasetConfig) (*xlsx.Sheet, error) {
	if ds.Sheet != "" {
		sheet, ok := f.Sheet[ds.Sheet]
		if !ok {
			return nil, SheetNotFoundError(ds.Name, ds.Path, ds.Sheet)
		}
		return sheet, nil
	}

	if len(f.Sheets) == 0 {
		return nil, FormatError(ds.Name, ds.Path,
			ds.ExpectedColumns(), nil, nil)
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}

// Next returns the next raw row, or io.EOF after the last one.
// Trailing cells beyond the header width are ignored; missing cells
// read as empty values, matching how spreadsheets represent unreported
// data.
func (x *xlsxReader) Next() (dataset.Row, error) {
	if x.pos >= len(x.rows) {
		return dataset.Row{}, io.EOF
	}

	cells := rowToStrings(x.rows[x.pos])
	x.pos++
	x.n++

	values := make(map[string]string, len(x.header))
	for i, col := range x.header {
		if i < len(cells) {
			values[col] = cells[i]
		} else {
			values[col] = ""
		}
	}

	return dataset.Row{N: x.n, Values: values}, nil
}

// Close is a no-op; the file handle is released by OpenFile.
func (x *xlsxReader) Close() error {
	return nil
}
