package ioseed

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/MinhHuy1507/agriseed/pkg/dataset"
)

// Observation years outside this range are treated as validation
// errors; the GSO series start in the 1990s and a far-future year is a
// sure sign of a mangled cell.
const (
	minYear = 1900
	maxYear = 2100
)

// record is one validated observation ready for upsert.
type record struct {
	provinceCode string
	year         int
	metric       string
	value        sql.NullFloat64
}

// key returns the uniqueness key (province, year, metric).
func (r record) key() string {
	return fmt.Sprintf("%s\x00%d\x00%s", r.provinceCode, r.year, r.metric)
}

// parseRow validates one raw row and converts it to observations:
// exactly one for long-format datasets, one per metric column for
// wide-format datasets. An empty value cell becomes a NULL value
// (unreported); any other unparsable cell invalidates the whole row.
func parseRow(row dataset.Row, ds dataset.DatasetConfig) ([]record, error) {
	province := strings.TrimSpace(row.Values[ds.Columns.Province])
	if province == "" {
		return nil, fmt.Errorf("row %d: empty province code", row.N)
	}

	yearStr := strings.TrimSpace(row.Values[ds.Columns.Year])
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("row %d: year %q is not an integer",
			row.N, yearStr)
	}
	if year < minYear || year > maxYear {
		return nil, fmt.Errorf("row %d: year %d out of range [%d, %d]",
			row.N, year, minYear, maxYear)
	}

	// Wide format: one observation per metric column.
	if len(ds.Metrics) > 0 {
		recs := make([]record, 0, len(ds.Metrics))
		for _, metric := range ds.Metrics {
			value, err := parseValue(row.Values[metric])
			if err != nil {
				return nil, fmt.Errorf("row %d: column %q: %w",
					row.N, metric, err)
			}
			recs = append(recs, record{
				provinceCode: province,
				year:         year,
				metric:       metric,
				value:        value,
			})
		}
		return recs, nil
	}

	// Long format: metric name and value in their own columns.
	metric := strings.TrimSpace(row.Values[ds.Columns.Metric])
	if metric == "" {
		return nil, fmt.Errorf("row %d: empty metric name", row.N)
	}

	value, err := parseValue(row.Values[ds.Columns.Value])
	if err != nil {
		return nil, fmt.Errorf("row %d: column %q: %w",
			row.N, ds.Columns.Value, err)
	}

	return []record{{
		provinceCode: province,
		year:         year,
		metric:       metric,
		value:        value,
	}}, nil
}

// parseValue coerces a raw cell to a nullable numeric value. An empty
// cell means the source reports no data for the key.
func parseValue(raw string) (sql.NullFloat64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return sql.NullFloat64{}, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return sql.NullFloat64{}, fmt.Errorf(
			"value %q is not numeric", raw)
	}

	return sql.NullFloat64{Float64: f, Valid: true}, nil
}

// dedupe collapses duplicate keys keeping the last occurrence.
// PostgreSQL rejects a second update of the same row inside one
// INSERT ... ON CONFLICT statement, so a batch must not carry the same
// key twice; keeping the later occurrence preserves last-write-wins.
func dedupe(recs []record) []record {
	if len(recs) < 2 {
		return recs
	}

	last := make(map[string]int, len(recs))
	for i, rec := range recs {
		last[rec.key()] = i
	}

	res := make([]record, 0, len(last))
	for i, rec := range recs {
		if last[rec.key()] == i {
			res = append(res, rec)
		}
	}
	return res
}
