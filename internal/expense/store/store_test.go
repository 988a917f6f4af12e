package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/database/dbtest"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/expense/store"
)

var day = calendar.Date(2026, 3, 14)

func newService(t *testing.T) (*expense.Service, *sql.DB) {
	t.Helper()

	db := dbtest.SQLite(t)
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	cal := calendar.New(time.UTC, calendar.WithClock(func() time.Time { return now }))

	return expense.NewService(store.New(db, database.SQLite), cal), db
}

func insertSale(t *testing.T, db *sql.DB, total int64, completed bool, soldAt time.Time) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO sales (id, seller_id, sold_at, total, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $3, $3)`,
		uuid.New(), uuid.New(), database.UTC(soldAt), total, completed,
	)
	require.NoError(t, err)
}

func insertPrestation(t *testing.T, db *sql.DB, sector string, paid int64, at time.Time) {
	t.Helper()

	var sectorID uuid.UUID

	err := db.QueryRow(`SELECT id FROM sectors WHERE name = $1`, sector).Scan(&sectorID)
	if errors.Is(err, sql.ErrNoRows) {
		sectorID = uuid.New()
		_, err = db.Exec(`INSERT INTO sectors (id, name, commission_rate) VALUES ($1, $2, '0.3')`, sectorID, sector)
	}

	require.NoError(t, err)

	staffID, typeID := uuid.New(), uuid.New()
	ts := database.UTC(at)

	_, err = db.Exec(`INSERT INTO staff (id, first_name, last_name, sector_id, created_at) VALUES ($1, 'A', 'B', $2, $3)`, staffID, sectorID, ts)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO service_types (id, name, price) VALUES ($1, 'Coupe', $2)`, typeID, paid)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO prestations (id, staff_id, service_type_id, sector_id, paid_amount, performed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $6)`,
		uuid.New(), staffID, typeID, sectorID, paid, ts,
	)
	require.NoError(t, err)
}

func TestRecord_BoutiqueAllowance(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	insertSale(t, db, 50000, true, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	// Drafts and other days do not count.
	insertSale(t, db, 90000, false, time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC))
	insertSale(t, db, 90000, true, time.Date(2026, 3, 13, 11, 0, 0, 0, time.UTC))

	_, err := svc.Record(ctx, expense.RecordParams{Entity: expense.EntityBoutique, Description: "Loyer", Amount: 30000, SpentOn: &day})
	require.NoError(t, err)

	_, err = svc.Record(ctx, expense.RecordParams{Entity: expense.EntityBoutique, Description: "Transport", Amount: 25000, SpentOn: &day})

	var allowanceErr *expense.AllowanceError
	require.ErrorAs(t, err, &allowanceErr)
	assert.Equal(t, int64(20000), allowanceErr.Allowance.Remaining())

	_, err = svc.Record(ctx, expense.RecordParams{Entity: expense.EntityBoutique, Description: "Transport", Amount: 15000, SpentOn: &day})
	require.NoError(t, err)

	a, err := svc.Allowance(ctx, expense.EntityBoutique, "", day)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), a.Revenue)
	assert.Equal(t, int64(45000), a.Spent)
	assert.Equal(t, int64(5000), a.Remaining())
}

func TestRecord_SalonAllowancePerSector(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	insertPrestation(t, db, "women", 20000, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	insertPrestation(t, db, "men", 4000, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	_, err := svc.Record(ctx, expense.RecordParams{Entity: expense.EntitySalon, Sector: "women", Description: "Mèches", Amount: 10000, SpentOn: &day})
	require.NoError(t, err)

	_, err = svc.Record(ctx, expense.RecordParams{Entity: expense.EntitySalon, Sector: "men", Description: "Lames", Amount: 2001, SpentOn: &day})
	assert.ErrorIs(t, err, expense.ErrExceedsAllowance)

	women := "women"
	got, err := svc.List(ctx, expense.ListFilter{Sector: &women})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, day, got[0].SpentOn.UTC())
}

func TestRecord_ConcurrentSubmissionsStayWithinAllowance(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	insertSale(t, db, 10000, true, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))

	var g errgroup.Group

	for range 6 {
		g.Go(func() error {
			_, err := svc.Record(ctx, expense.RecordParams{Entity: expense.EntityBoutique, Description: "Sacs", Amount: 3000, SpentOn: &day})
			if err != nil && !assert.ErrorIs(t, err, expense.ErrExceedsAllowance) {
				return err
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())

	a, err := svc.Allowance(ctx, expense.EntityBoutique, "", day)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), a.Spent)
}
