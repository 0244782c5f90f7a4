package iodataset

import (
	"context"

	"github.com/MinhHuy1507/agriseed/pkg/dataset"
)

type opener struct{}

// NewOpener creates a format-dispatching dataset opener.
func NewOpener() dataset.Opener {
	return &opener{}
}

// Open returns a Reader for the dataset. The format determines the
// concrete reader; the header/shape check happens here, so no rows are
// ever yielded from a structurally mismatched source.
func (o *opener) Open(
	ctx context.Context,
	ds dataset.DatasetConfig,
) (dataset.Reader, error) {
	switch ds.Format {
	case dataset.FormatCSV:
		return openCSV(ds)
	case dataset.FormatXLSX:
		return openXLSX(ds)
	case dataset.FormatSQLite:
		return openSQLite(ctx, ds)
	default:
		return nil, UnknownFormatError(ds.Name, ds.Format)
	}
}

// checkColumns verifies every expected column is present in the header.
// Returns the missing columns in expected order.
func checkColumns(expected, header []string) []string {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}

	var missing []string
	for _, col := range expected {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
