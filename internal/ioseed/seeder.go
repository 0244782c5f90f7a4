// Package ioseed implements the seeding run: province reference data,
// batched idempotent upserts of dataset observations, and the LoadRun
// audit record.
package ioseed

import (
	"context"
	"errors"

	"github.com/MinhHuy1507/agriseed/pkg/agriseed"
	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/MinhHuy1507/agriseed/pkg/dataset"
	"github.com/MinhHuy1507/agriseed/pkg/db"
	"github.com/gnames/gn"
	"github.com/jonboulle/clockwork"
)

type seeder struct {
	cfg      config.Config
	pool     db.Pool
	manifest dataset.Manifest
	opener   dataset.Opener
	clock    clockwork.Clock
}

// New creates a Seeder writing through the given pool. The clock is
// injectable for tests; production callers pass
// clockwork.NewRealClock().
func New(
	cfg config.Config,
	pool db.Pool,
	manifest dataset.Manifest,
	opener dataset.Opener,
	clock clockwork.Clock,
) agriseed.Seeder {
	return &seeder{
		cfg:      cfg,
		pool:     pool,
		manifest: manifest,
		opener:   opener,
		clock:    clock,
	}
}

// Seed executes one run. The advisory lock makes runs mutually
// exclusive per database; the optional timeout bounds the whole run.
func (s *seeder) Seed(ctx context.Context) (*agriseed.RunSummary, error) {
	if s.pool == nil {
		return nil, NotConnectedError()
	}

	if s.cfg.Seed.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Seed.Timeout)
		defer cancel()
	}

	if err := tryRunLock(ctx, s.pool); err != nil {
		return nil, err
	}
	defer func() {
		// The lock must go away even when the run context expired.
		_ = releaseRunLock(context.WithoutCancel(ctx), s.pool)
	}()

	rep := newReporter(s.pool, s.clock)
	if err := rep.start(ctx); err != nil {
		return nil, err
	}

	if err := s.run(ctx, rep); err != nil {
		err = s.classify(ctx, err)
		// Finalization must outlive the expired run context.
		summary := rep.fail(context.WithoutCancel(ctx), err)
		return summary, err
	}

	return rep.complete(ctx)
}

// run performs the seeding work proper: provinces first, then each
// selected dataset through collect and upsert.
func (s *seeder) run(ctx context.Context, rep *reporter) error {
	n, err := seedProvinces(ctx, s.pool)
	if err != nil {
		return err
	}
	gn.Info("Provinces reference table is current (%d provinces)\n", n)

	manifest, err := s.manifest.Load()
	if err != nil {
		return err
	}

	selected, err := manifest.Filter(s.cfg.Seed.Datasets)
	if err != nil {
		return err
	}

	skipBadRows := s.cfg.Seed.OnBadRow == config.BadRowSkip

	for i, ds := range selected {
		gn.Info("Seeding dataset <em>%s</em> (%d/%d)\n",
			ds.Name, i+1, len(selected))

		if err := s.seedDataset(ctx, ds, rep, skipBadRows); err != nil {
			return err
		}
	}

	return nil
}

func (s *seeder) seedDataset(
	ctx context.Context,
	ds dataset.DatasetConfig,
	rep *reporter,
	skipBadRows bool,
) error {
	r, err := s.opener.Open(ctx, ds)
	if err != nil {
		return err
	}
	defer r.Close()

	recs, read, skipped, err := collectRecords(r, ds, skipBadRows)
	if err != nil {
		return err
	}
	rep.datasetRead(read, skipped)

	return s.upsertRecords(ctx, ds, recs, rep)
}

// classify maps context expiry onto the run error taxonomy. Errors that
// merely wrap a context error, like a cancelled query, count too; gn
// error values carry their cause in Err, which errors.Is cannot see
// through on its own.
func (s *seeder) classify(ctx context.Context, err error) error {
	cause := err
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		cause = gnErr.Err
	}

	switch {
	case errors.Is(cause, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded):
		return RunTimeoutError(s.cfg.Seed.Timeout)
	case errors.Is(cause, context.Canceled) ||
		errors.Is(ctx.Err(), context.Canceled):
		return CancelledError(err)
	default:
		return err
	}
}
