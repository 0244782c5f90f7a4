package ioseed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MinhHuy1507/agriseed/pkg/agriseed"
	"github.com/MinhHuy1507/agriseed/pkg/db"
	"github.com/MinhHuy1507/agriseed/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// reporter tracks the LoadRun row for one seeding attempt. It is
// observational only: it records progress, never retries anything.
type reporter struct {
	pool  db.Pool
	clock clockwork.Clock

	runID     string
	startedAt time.Time
	datasets  int

	read     int
	upserted int
	skipped  int
	batches  int
}

func newReporter(pool db.Pool, clock clockwork.Clock) *reporter {
	return &reporter{pool: pool, clock: clock}
}

// start creates the LoadRun row with status running.
func (r *reporter) start(ctx context.Context) error {
	r.runID = uuid.NewString()
	r.startedAt = r.clock.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO load_runs (id, status, started_at)
		 VALUES ($1, $2, $3)`,
		r.runID, schema.StatusRunning, r.startedAt,
	)
	if err != nil {
		return RunRecordError("create", err)
	}

	slog.Info("Load run started", "run_id", r.runID)
	return nil
}

// datasetRead records the collection counters for one dataset. The
// numbers reach the database with the next batch commit or run
// finalization.
func (r *reporter) datasetRead(read, skipped int) {
	r.datasets++
	r.read += read
	r.skipped += skipped
}

// batchCommitted records one committed batch. Counters are persisted
// immediately so an interrupted run still shows how far it got.
func (r *reporter) batchCommitted(ctx context.Context, upserted int) error {
	r.upserted += upserted
	r.batches++

	_, err := r.pool.Exec(ctx,
		`UPDATE load_runs
		 SET records_read = $2, records_upserted = $3,
		     records_skipped = $4, batches_committed = $5
		 WHERE id = $1`,
		r.runID, r.read, r.upserted, r.skipped, r.batches,
	)
	if err != nil {
		return RunRecordError("update", err)
	}

	slog.Debug("Batch committed",
		"run_id", r.runID,
		"batch", r.batches,
		"upserted", upserted,
	)
	return nil
}

// complete finalizes the run as COMPLETED and emits the human-readable
// summary line external orchestration watches for.
func (r *reporter) complete(ctx context.Context) (*agriseed.RunSummary, error) {
	outcome := schema.OutcomeSuccess
	if r.skipped > 0 {
		outcome = schema.OutcomePartial
	}

	finishedAt := r.clock.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`UPDATE load_runs
		 SET status = $2, outcome = $3, finished_at = $4,
		     records_read = $5, records_upserted = $6,
		     records_skipped = $7, batches_committed = $8
		 WHERE id = $1`,
		r.runID, schema.StatusCompleted, outcome, finishedAt,
		r.read, r.upserted, r.skipped, r.batches,
	)
	if err != nil {
		return nil, RunRecordError("finalize", err)
	}

	summary := r.summary(outcome, finishedAt)

	slog.Info("Seeding complete",
		"run_id", summary.RunID,
		"outcome", summary.Outcome,
		"datasets", summary.Datasets,
		"records_read", summary.RecordsRead,
		"records_upserted", summary.RecordsUpserted,
		"records_skipped", summary.RecordsSkipped,
		"batches_committed", summary.BatchesCommitted,
		"duration", gnfmt.TimeString(summary.Elapsed.Seconds()),
	)
	gn.Info(`Seeding complete (%s)
Records read: %s, upserted: %s, skipped: %s
Batches committed: %d
Elapsed time: <em>%s</em>
`,
		summary.Outcome,
		humanize.Comma(int64(summary.RecordsRead)),
		humanize.Comma(int64(summary.RecordsUpserted)),
		humanize.Comma(int64(summary.RecordsSkipped)),
		summary.BatchesCommitted,
		gnfmt.TimeString(summary.Elapsed.Seconds()),
	)

	return summary, nil
}

// fail finalizes the run as FAILED. No further batches are attempted
// after this; re-invocation of the seeder is the retry mechanism.
func (r *reporter) fail(ctx context.Context, cause error) *agriseed.RunSummary {
	finishedAt := r.clock.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`UPDATE load_runs
		 SET status = $2, outcome = $3, error = $4, finished_at = $5,
		     records_read = $6, records_upserted = $7,
		     records_skipped = $8, batches_committed = $9
		 WHERE id = $1`,
		r.runID, schema.StatusFailed, schema.OutcomeFailed,
		cause.Error(), finishedAt,
		r.read, r.upserted, r.skipped, r.batches,
	)
	if err != nil {
		slog.Error("Could not finalize failed load run",
			"run_id", r.runID, "error", err)
	}

	summary := r.summary(schema.OutcomeFailed, finishedAt)
	slog.Error("Seeding failed",
		"run_id", summary.RunID,
		"error", cause,
		"records_upserted", summary.RecordsUpserted,
		"batches_committed", summary.BatchesCommitted,
	)

	return summary
}

func (r *reporter) summary(
	outcome string,
	finishedAt time.Time,
) *agriseed.RunSummary {
	return &agriseed.RunSummary{
		RunID:            r.runID,
		Outcome:          outcome,
		Datasets:         r.datasets,
		RecordsRead:      r.read,
		RecordsUpserted:  r.upserted,
		RecordsSkipped:   r.skipped,
		BatchesCommitted: r.batches,
		Elapsed:          finishedAt.Sub(r.startedAt),
	}
}

// String implements a short progress description used in debug logs.
func (r *reporter) String() string {
	return fmt.Sprintf("run %s: %d read, %d upserted, %d skipped",
		r.runID, r.read, r.upserted, r.skipped)
}
