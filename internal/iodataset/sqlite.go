package iodataset

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MinhHuy1507/agriseed/pkg/dataset"
	_ "modernc.org/sqlite" // SQLite driver
)

// sqliteReader streams rows from a table in a SQLite dataset file.
type sqliteReader struct {
	ds   dataset.DatasetConfig
	db   *sql.DB
	rows *sql.Rows
	cols []string
	n    int
}

// openSQLite opens a SQLite dataset and validates the table shape
// before any row is yielded.
func openSQLite(
	ctx context.Context,
	ds dataset.DatasetConfig,
) (dataset.Reader, error) {
	// database/sql creates missing SQLite files on open; stat first so
	// a wrong path reports as unreadable instead of an empty database.
	if _, err := os.Stat(ds.Path); err != nil {
		return nil, ReadError(ds.Name, ds.Path, err)
	}

	db, err := sql.Open("sqlite", ds.Path)
	if err != nil {
		return nil, ReadError(ds.Name, ds.Path, err)
	}

	header, err := tableColumns(ctx, db, ds.Table)
	if err != nil {
		db.Close()
		return nil, ReadError(ds.Name, ds.Path, err)
	}

	expected := ds.ExpectedColumns()
	if missing := checkColumns(expected, header); len(missing) > 0 {
		db.Close()
		return nil, FormatError(ds.Name, ds.Path, expected, missing, nil)
	}

	// Select only the expected columns, in manifest order.
	quoted := make([]string, len(expected))
	for i, col := range expected {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	query := fmt.Sprintf("SELECT %s FROM %q",
		strings.Join(quoted, ", "), ds.Table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		db.Close()
		return nil, ReadError(ds.Name, ds.Path, err)
	}

	return &sqliteReader{ds: ds, db: db, rows: rows, cols: expected}, nil
}

func tableColumns(
	ctx context.Context,
	db *sql.DB,
	table string,
) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(
			&cid, &name, &colType, &notNull, &dflt, &pk,
		); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	return cols, nil
}

// Next returns the next raw row, or io.EOF after the last one.
// NULLs read as empty values, same as an empty spreadsheet cell.
func (s *sqliteReader) Next() (dataset.Row, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return dataset.Row{}, ReadError(s.ds.Name, s.ds.Path, err)
		}
		return dataset.Row{}, io.EOF
	}

	raw := make([]sql.NullString, len(s.cols))
	dest := make([]any, len(s.cols))
	for i := range raw {
		dest[i] = &raw[i]
	}

	if err := s.rows.Scan(dest...); err != nil {
		return dataset.Row{}, ReadError(s.ds.Name, s.ds.Path, err)
	}

	s.n++
	values := make(map[string]string, len(s.cols))
	for i, col := range s.cols {
		values[col] = raw[i].String
	}

	return dataset.Row{N: s.n, Values: values}, nil
}

// Close releases the result set and the database handle.
func (s *sqliteReader) Close() error {
	s.rows.Close()
	return s.db.Close()
}
