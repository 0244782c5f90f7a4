// Package ioverify implements post-seed consistency checks.
package ioverify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MinhHuy1507/agriseed/pkg/agriseed"
	"github.com/MinhHuy1507/agriseed/pkg/db"
	"github.com/MinhHuy1507/agriseed/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"golang.org/x/sync/errgroup"
)

type verifier struct {
	pool db.Pool
}

// New creates a Verifier reading through the given pool.
func New(pool db.Pool) agriseed.Verifier {
	return &verifier{pool: pool}
}

// counts holds the table sizes gathered by the parallel count queries.
type counts struct {
	provinces   int64
	statRecords int64
	loadRuns    int64
}

// lastRun is the most recent LoadRun row, when one exists.
type lastRun struct {
	id      string
	status  string
	outcome string
}

// Verify runs the consistency checks and prints a report. It returns an
// error when a check fails, so exit codes reflect database health.
func (v *verifier) Verify(ctx context.Context) error {
	if v.pool == nil {
		return NotConnectedError()
	}

	cnt, err := v.countTables(ctx)
	if err != nil {
		return err
	}

	dups, err := v.duplicateKeys(ctx)
	if err != nil {
		return err
	}

	orphans, err := v.orphanProvinces(ctx)
	if err != nil {
		return err
	}

	run, err := v.latestRun(ctx)
	if err != nil {
		return err
	}

	gn.Info(`Verification report
Provinces:    %s
Observations: %s
Load runs:    %s
`,
		humanize.Comma(cnt.provinces),
		humanize.Comma(cnt.statRecords),
		humanize.Comma(cnt.loadRuns),
	)

	var problems []string
	if dups > 0 {
		problems = append(problems, fmt.Sprintf(
			"%d duplicate (province, year, metric) keys", dups))
	}
	if orphans > 0 {
		problems = append(problems, fmt.Sprintf(
			"%d observations reference unknown province codes", orphans))
	}
	if run != nil && run.status != schema.StatusCompleted {
		problems = append(problems, fmt.Sprintf(
			"last run %s finished with status %q", run.id, run.status))
	}

	if len(problems) > 0 {
		for _, p := range problems {
			slog.Warn("Verification problem", "problem", p)
		}
		return FailedError(problems)
	}

	if run == nil {
		gn.Info("No load runs recorded yet\n")
	} else {
		gn.Info("Last run <em>%s</em>: %s (%s)\n",
			run.id, run.status, run.outcome)
	}
	gn.Info("Database is consistent\n")

	return nil
}

// countTables gathers the three table counts concurrently.
func (v *verifier) countTables(ctx context.Context) (*counts, error) {
	var cnt counts

	g, ctx := errgroup.WithContext(ctx)
	count := func(table string, dst *int64) func() error {
		return func() error {
			query := fmt.Sprintf("SELECT count(*) FROM %s", table)
			if err := v.pool.QueryRow(ctx, query).Scan(dst); err != nil {
				return QueryError(table, err)
			}
			return nil
		}
	}

	g.Go(count("provinces", &cnt.provinces))
	g.Go(count("stat_records", &cnt.statRecords))
	g.Go(count("load_runs", &cnt.loadRuns))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &cnt, nil
}

// duplicateKeys counts (province_code, year, metric) keys appearing
// more than once. The unique index should make this impossible; a
// non-zero result means the schema drifted.
func (v *verifier) duplicateKeys(ctx context.Context) (int64, error) {
	var dups int64
	err := v.pool.QueryRow(ctx,
		`SELECT count(*) FROM (
		   SELECT province_code, year, metric
		   FROM stat_records
		   GROUP BY province_code, year, metric
		   HAVING count(*) > 1
		 ) d`,
	).Scan(&dups)
	if err != nil {
		return 0, QueryError("stat_records", err)
	}
	return dups, nil
}

// orphanProvinces counts observations whose province code has no row in
// the provinces reference table.
func (v *verifier) orphanProvinces(ctx context.Context) (int64, error) {
	var orphans int64
	err := v.pool.QueryRow(ctx,
		`SELECT count(*) FROM stat_records s
		 LEFT JOIN provinces p ON p.code = s.province_code
		 WHERE p.code IS NULL`,
	).Scan(&orphans)
	if err != nil {
		return 0, QueryError("stat_records", err)
	}
	return orphans, nil
}

// latestRun returns the most recent LoadRun, or nil when the table is
// empty.
func (v *verifier) latestRun(ctx context.Context) (*lastRun, error) {
	rows, err := v.pool.Query(ctx,
		`SELECT id, status, coalesce(outcome, '')
		 FROM load_runs
		 ORDER BY started_at DESC
		 LIMIT 1`,
	)
	if err != nil {
		return nil, QueryError("load_runs", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var run lastRun
	if err := rows.Scan(&run.id, &run.status, &run.outcome); err != nil {
		return nil, QueryError("load_runs", err)
	}
	return &run, rows.Err()
}
