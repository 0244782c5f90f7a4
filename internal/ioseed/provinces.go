package ioseed

import (
	"context"
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/MinhHuy1507/agriseed/pkg/db"
)

// provincesCSV holds the 63 Vietnamese provinces with their stable GSO
// codes and statistical regions.
//
//go:embed provinces.csv
var provincesCSV string

// seedProvinces upserts the bundled province reference data. Codes are
// stable, so a re-run only refreshes names and regions.
func seedProvinces(ctx context.Context, pool db.Pool) (int, error) {
	r := csv.NewReader(strings.NewReader(provincesCSV))

	rows, err := r.ReadAll()
	if err != nil {
		return 0, ProvincesError(err)
	}
	// Drop the header row.
	rows = rows[1:]

	var valueStrings []string
	var valueArgs []any
	argIdx := 1
	for _, row := range rows {
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d, $%d, $%d)", argIdx, argIdx+1, argIdx+2))
		valueArgs = append(valueArgs, row[0], row[1], row[2])
		argIdx += 3
	}

	query := fmt.Sprintf(
		`INSERT INTO provinces (code, name, region) VALUES %s
		 ON CONFLICT (code) DO UPDATE
		 SET name = EXCLUDED.name, region = EXCLUDED.region`,
		strings.Join(valueStrings, ", "),
	)

	if _, err := pool.Exec(ctx, query, valueArgs...); err != nil {
		return 0, ProvincesError(err)
	}

	return len(rows), nil
}
