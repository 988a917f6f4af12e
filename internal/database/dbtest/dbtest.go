// Package dbtest opens throwaway migrated databases for store tests.
package dbtest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
)

// SQLite returns a migrated SQLite database in a temp directory. Writers take
// the database lock on BEGIN, matching production settings.
func SQLite(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "comptoir.db")
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate&_time_format=sqlite", path)

	db, err := database.New(database.SQLite, dsn)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, database.SQLite))

	return db
}

// Product is a catalog row inserted directly, bypassing the stock ledger.
type Product struct {
	Name       string
	CategoryID *uuid.UUID
	Cost       int64
	Price      int64
	OnHand     int
	Threshold  int
}

func InsertProduct(t *testing.T, db *sql.DB, p Product) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := database.UTC(time.Now())

	var category uuid.NullUUID
	if p.CategoryID != nil {
		category = uuid.NullUUID{UUID: *p.CategoryID, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO products (id, name, description, category_id, cost_price, sale_price, on_hand, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, '', $3, $4, $5, $6, $7, $8, $9)`,
		id, p.Name, category, p.Cost, p.Price, p.OnHand, p.Threshold, now, now,
	)
	require.NoError(t, err)

	return id
}

// OnHand reads a product's current quantity.
func OnHand(t *testing.T, db *sql.DB, productID uuid.UUID) int {
	t.Helper()

	var onHand int
	require.NoError(t, db.QueryRow(`SELECT on_hand FROM products WHERE id = $1`, productID).Scan(&onHand))

	return onHand
}

// CountRows counts rows in table matching where, which must be trusted SQL.
func CountRows(t *testing.T, db *sql.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))

	return n
}
