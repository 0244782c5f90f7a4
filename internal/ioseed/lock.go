package ioseed

import (
	"context"
	"log/slog"

	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/MinhHuy1507/agriseed/pkg/db"
)

// tryRunLock attempts the session-level advisory lock guarding
// concurrent seeding runs. pg_try_advisory_lock returns immediately,
// so a second run fails fast with ConcurrentRunError instead of
// queueing behind the first.
func tryRunLock(ctx context.Context, pool db.Pool) error {
	var acquired bool
	err := pool.QueryRow(ctx,
		"SELECT pg_try_advisory_lock($1)", config.RunLockKey,
	).Scan(&acquired)
	if err != nil {
		return LockError("acquire", err)
	}

	if !acquired {
		return ConcurrentRunError()
	}
	return nil
}

// releaseRunLock releases the advisory lock taken by tryRunLock.
// Session-level advisory locks also vanish when the connection closes,
// so a crashed run never wedges the database.
func releaseRunLock(ctx context.Context, pool db.Pool) error {
	var released bool
	err := pool.QueryRow(ctx,
		"SELECT pg_advisory_unlock($1)", config.RunLockKey,
	).Scan(&released)
	if err != nil {
		return LockError("release", err)
	}

	if !released {
		// The pool may serve the unlock from a different session than
		// the one holding the lock; the lock then lives until that
		// session closes with the pool at process exit.
		slog.Warn("Run lock was not held by the releasing session",
			"key", config.RunLockKey)
	}
	return nil
}
