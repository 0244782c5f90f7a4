package ioseed

import (
	"fmt"
	"time"

	"github.com/MinhHuy1507/agriseed/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when a seeding run is
// attempted without database connection.
func NotConnectedError() error {
	msg := "Seeding attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ConcurrentRunError creates an error for when another seeding run
// holds the run lock.
func ConcurrentRunError() error {
	msg := `Another seeding run is already in progress

Only one seeding run may write to a database at a time.

<em>How to fix:</em>
  1. Wait for the running seeder to finish
  2. Check <em>load_runs</em> for the run currently marked 'running'
  3. Re-invoke <em>agriseed seed</em> afterwards`

	return &gn.Error{
		Code: errcode.SeedConcurrentRunError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("concurrent seeding run detected"),
	}
}

// LockError creates an error for a failed advisory lock operation.
func LockError(op string, err error) error {
	msg := "Could not %s the seeding run lock"
	vars := []any{op}

	return &gn.Error{
		Code: errcode.DBLockError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to %s advisory lock: %w", op, err),
	}
}

// RunTimeoutError creates an error for a run exceeding its ceiling.
func RunTimeoutError(ceiling time.Duration) error {
	msg := `Seeding run exceeded its time ceiling of <em>%s</em>

Committed batches stay in place; re-invoking the seeder safely
resumes the remaining work.

<em>How to fix:</em>
  1. Raise <em>seed.timeout</em> in config.yaml (0 disables the ceiling)
  2. Re-invoke <em>agriseed seed</em>`

	vars := []any{ceiling}

	return &gn.Error{
		Code: errcode.SeedRunTimeoutError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("run exceeded timeout of %s", ceiling),
	}
}

// CancelledError creates an error for an interrupted run.
func CancelledError(err error) error {
	msg := "Seeding run was cancelled"

	return &gn.Error{
		Code: errcode.SeedCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("run cancelled: %w", err),
	}
}

// RowValidationError creates an error for a row that failed validation
// under the fail policy.
func RowValidationError(datasetName string, err error) error {
	msg := `Dataset <em>%s</em> contains an invalid row

<em>Problem:</em> %v

<em>How to fix:</em>
  1. Repair the offending row in the dataset file, or
  2. Re-run with <em>--skip-bad-rows</em> to drop invalid rows`

	vars := []any{datasetName, err}

	return &gn.Error{
		Code: errcode.SeedRowValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("dataset %s: invalid row: %w",
			datasetName, err),
	}
}

// ConstraintError creates an error for a schema-level violation during
// upsert. These are fatal: they mean the schema and the seeder
// disagree.
func ConstraintError(datasetName string, err error) error {
	msg := `Database rejected a batch from dataset <em>%s</em>

<em>How to fix:</em>
  1. Make sure the schema is current: <em>agriseed create</em>
  2. Inspect the database error below`

	vars := []any{datasetName}

	return &gn.Error{
		Code: errcode.SeedConstraintError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("dataset %s: batch rejected: %w",
			datasetName, err),
	}
}

// ProvincesError creates an error for a failed province reference
// seeding.
func ProvincesError(err error) error {
	msg := "Could not seed the provinces reference table"

	return &gn.Error{
		Code: errcode.SeedProvincesError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to seed provinces: %w", err),
	}
}

// RunRecordError creates an error for a failed load_runs write.
func RunRecordError(op string, err error) error {
	msg := "Could not %s the load run record"
	vars := []any{op}

	return &gn.Error{
		Code: errcode.SeedRunRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to %s load run: %w", op, err),
	}
}
