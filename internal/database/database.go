package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL backend a store is talking to.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) driverName() string {
	if d == SQLite {
		return "sqlite"
	}

	return "pgx"
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(dialect Dialect, connStr string) (*sql.DB, error) {
	db, err := sql.Open(dialect.driverName(), connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if dialect == SQLite {
		// One writer at a time; readers share the WAL.
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)

		return db, nil
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// UTC normalizes a timestamp before it is written so that both backends compare
// stored instants consistently.
func UTC(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
