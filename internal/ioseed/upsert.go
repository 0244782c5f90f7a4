package ioseed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/MinhHuy1507/agriseed/pkg/dataset"
	"github.com/cheggaaa/pb/v3"
)

// collectRecords drains one dataset reader into validated observations.
// It returns the observations, the number of raw rows read and the
// number of rows dropped under the skip policy. With skipBadRows false
// the first invalid row aborts the dataset.
func collectRecords(
	r dataset.Reader,
	ds dataset.DatasetConfig,
	skipBadRows bool,
) ([]record, int, int, error) {
	var recs []record
	var read, skipped int

	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, read, skipped, err
		}
		read++

		parsed, err := parseRow(row, ds)
		if err != nil {
			if !skipBadRows {
				return nil, read, skipped, RowValidationError(ds.Name, err)
			}
			skipped++
			slog.Warn("Skipping invalid row",
				"dataset", ds.Name, "error", err)
			continue
		}
		recs = append(recs, parsed...)
	}

	return dedupe(recs), read, skipped, nil
}

// upsertRecords writes observations in batches, one transaction per
// batch. Committed batches stay committed when a later batch fails, so
// progress is never lost; the ON CONFLICT clause makes a re-run of the
// same data a no-op.
func (s *seeder) upsertRecords(
	ctx context.Context,
	ds dataset.DatasetConfig,
	recs []record,
	rep *reporter,
) error {
	if len(recs) == 0 {
		return nil
	}

	batchSize := s.cfg.Seed.BatchSize

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", fmt.Sprintf("Upserting %s: ", ds.Name))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := 0; i < len(recs); i += batchSize {
		end := min(i+batchSize, len(recs))
		batch := recs[i:end]

		if err := s.upsertBatch(ctx, ds, batch, rep.runID); err != nil {
			return err
		}
		if err := rep.batchCommitted(ctx, len(batch)); err != nil {
			return err
		}
		bar.Add(len(batch))
	}

	return nil
}

// upsertBatch writes one batch inside a single transaction using a
// multi-row INSERT ... ON CONFLICT DO UPDATE keyed on
// (province_code, year, metric).
func (s *seeder) upsertBatch(
	ctx context.Context,
	ds dataset.DatasetConfig,
	batch []record,
	runID string,
) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ConstraintError(ds.Name, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query, args := upsertQuery(batch, runID, s.clock.Now().UTC())
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return ConstraintError(ds.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ConstraintError(ds.Name, err)
	}
	return nil
}

// upsertQuery builds the multi-row upsert statement for one batch.
// Six parameters per row keeps the largest default batch (5,000 rows)
// well under PostgreSQL's 65,535 parameter limit.
func upsertQuery(
	batch []record,
	runID string,
	updatedAt time.Time,
) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*6)

	argIdx := 1
	for _, rec := range batch {
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d)",
			argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4, argIdx+5,
		))
		valueArgs = append(valueArgs,
			rec.provinceCode, rec.year, rec.metric, rec.value,
			runID, updatedAt,
		)
		argIdx += 6
	}

	query := fmt.Sprintf(
		`INSERT INTO stat_records
		   (province_code, year, metric, value, load_run_id, updated_at)
		 VALUES %s
		 ON CONFLICT (province_code, year, metric) DO UPDATE
		 SET value = EXCLUDED.value,
		     load_run_id = EXCLUDED.load_run_id,
		     updated_at = EXCLUDED.updated_at`,
		strings.Join(valueStrings, ", "),
	)

	return query, valueArgs
}
