package database

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

// LockKey hashes parts into an advisory lock key.
func LockKey(parts ...string) int64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}

	return int64(h.Sum64())
}

// LockTx serializes transactions sharing key until tx ends. SQLite
// transactions already hold the database write lock from BEGIN IMMEDIATE, so
// there is nothing more to take there.
func LockTx(ctx context.Context, tx *sql.Tx, dialect Dialect, key int64) error {
	if dialect != Postgres {
		return nil
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return fmt.Errorf("acquiring advisory lock: %w", err)
	}

	return nil
}
