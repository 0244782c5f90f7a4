package ioverify

import (
	"context"
	"testing"

	"github.com/MinhHuy1507/agriseed/pkg/errcode"
	"github.com/MinhHuy1507/agriseed/pkg/schema"
	"github.com/gnames/gn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, code, gnErr.Code)
}

func countRows(n int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}

// expectChecks sets up the expectations of a full verification pass.
// The table counts run concurrently, so matching is unordered.
func expectChecks(
	m pgxmock.PgxPoolIface,
	provinces, records, runs, dups, orphans int64,
	lastStatus string,
) {
	m.MatchExpectationsInOrder(false)

	m.ExpectQuery(`count\(\*\) FROM provinces`).
		WillReturnRows(countRows(provinces))
	m.ExpectQuery(`count\(\*\) FROM stat_records`).
		WillReturnRows(countRows(records))
	m.ExpectQuery(`count\(\*\) FROM load_runs`).
		WillReturnRows(countRows(runs))
	m.ExpectQuery(`HAVING count\(\*\) > 1`).
		WillReturnRows(countRows(dups))
	m.ExpectQuery("LEFT JOIN provinces").
		WillReturnRows(countRows(orphans))

	runRows := pgxmock.NewRows([]string{"id", "status", "outcome"})
	if lastStatus != "" {
		runRows.AddRow("3f0b7ad6", lastStatus, schema.OutcomeSuccess)
	}
	m.ExpectQuery("ORDER BY started_at").WillReturnRows(runRows)
}

func TestVerify_Consistent(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	expectChecks(pool, 63, 1260, 3, 0, 0, schema.StatusCompleted)

	v := New(pool)
	assert.NoError(t, v.Verify(context.Background()))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestVerify_EmptyDatabase(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	// No load runs at all is consistent, just not seeded yet.
	expectChecks(pool, 0, 0, 0, 0, 0, "")

	v := New(pool)
	assert.NoError(t, v.Verify(context.Background()))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestVerify_DuplicateKeys(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	expectChecks(pool, 63, 1260, 3, 2, 0, schema.StatusCompleted)

	v := New(pool)
	err = v.Verify(context.Background())
	requireCode(t, err, errcode.VerifyFailedError)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestVerify_OrphanProvinces(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	expectChecks(pool, 63, 1260, 3, 0, 5, schema.StatusCompleted)

	v := New(pool)
	err = v.Verify(context.Background())
	requireCode(t, err, errcode.VerifyFailedError)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestVerify_LastRunNotCompleted(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	expectChecks(pool, 63, 1260, 3, 0, 0, schema.StatusFailed)

	v := New(pool)
	err = v.Verify(context.Background())
	requireCode(t, err, errcode.VerifyFailedError)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestVerify_QueryFailure(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	pool.MatchExpectationsInOrder(false)
	pool.ExpectQuery(`count\(\*\) FROM provinces`).
		WillReturnRows(countRows(63))
	pool.ExpectQuery(`count\(\*\) FROM stat_records`).
		WillReturnError(assert.AnError)
	pool.ExpectQuery(`count\(\*\) FROM load_runs`).
		WillReturnRows(countRows(3))

	v := New(pool)
	err = v.Verify(context.Background())
	requireCode(t, err, errcode.VerifyQueryError)
}

func TestVerify_NilPool(t *testing.T) {
	v := New(nil)
	err := v.Verify(context.Background())
	requireCode(t, err, errcode.DBNotConnectedError)
}
