package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/comptoir/internal/database/dbtest"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
	"github.com/MrJamesThe3rd/comptoir/internal/stock/store"
)

func TestLedger_AdjustPersists(t *testing.T) {
	db := dbtest.SQLite(t)
	ctx := context.Background()

	productID := dbtest.InsertProduct(t, db, dbtest.Product{Name: "Pagne", Price: 1500, OnHand: 5, Threshold: 2})
	ledger := stock.NewLedger(store.New(db))
	actor := uuid.New()

	_, err := ledger.Adjust(ctx, stock.AdjustParams{
		ProductID: productID, Quantity: 3, Type: stock.MovementInbound, Actor: actor, Reason: "delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, dbtest.OnHand(t, db, productID))

	_, err = ledger.Adjust(ctx, stock.AdjustParams{
		ProductID: productID, Quantity: 2, Type: stock.MovementAdjustDecrease, Actor: actor, Reason: "damaged",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, dbtest.OnHand(t, db, productID))

	movements, err := ledger.ListMovements(ctx, stock.MovementFilter{ProductID: &productID})
	require.NoError(t, err)
	require.Len(t, movements, 2)

	types := []stock.MovementType{movements[0].Type, movements[1].Type}
	assert.ElementsMatch(t, []stock.MovementType{stock.MovementInbound, stock.MovementAdjustDecrease}, types)
}

func TestLedger_OutboundBeyondOnHandLeavesStockUnchanged(t *testing.T) {
	db := dbtest.SQLite(t)
	ctx := context.Background()

	productID := dbtest.InsertProduct(t, db, dbtest.Product{Name: "Pagne", OnHand: 2, Threshold: 1})
	ledger := stock.NewLedger(store.New(db))

	_, err := ledger.Adjust(ctx, stock.AdjustParams{
		ProductID: productID, Quantity: 3, Type: stock.MovementAdjustDecrease, Actor: uuid.New(),
	})

	var insufficient *stock.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, "Pagne", insufficient.ProductName)

	assert.Equal(t, 2, dbtest.OnHand(t, db, productID))
	assert.Equal(t, 0, dbtest.CountRows(t, db, "stock_movements", "product_id = $1", productID))
}

func TestLedger_UnknownProduct(t *testing.T) {
	db := dbtest.SQLite(t)
	ledger := stock.NewLedger(store.New(db))

	_, err := ledger.Adjust(context.Background(), stock.AdjustParams{
		ProductID: uuid.New(), Quantity: 1, Type: stock.MovementInbound, Actor: uuid.New(),
	})
	assert.ErrorIs(t, err, stock.ErrNotFound)
}

func TestLedger_ConcurrentOutboundNeverNegative(t *testing.T) {
	db := dbtest.SQLite(t)
	ctx := context.Background()

	const (
		initial = 5
		workers = 12
	)

	productID := dbtest.InsertProduct(t, db, dbtest.Product{Name: "Parfum", OnHand: initial, Threshold: 0})
	ledger := stock.NewLedger(store.New(db))

	var (
		g         errgroup.Group
		succeeded = make(chan struct{}, workers)
	)

	for range workers {
		g.Go(func() error {
			_, err := ledger.Adjust(ctx, stock.AdjustParams{
				ProductID: productID, Quantity: 1, Type: stock.MovementSaleOutbound, Actor: uuid.New(),
			})
			if errors.Is(err, stock.ErrInsufficientStock) {
				return nil
			}

			if err != nil {
				return err
			}

			succeeded <- struct{}{}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	close(succeeded)

	assert.Len(t, succeeded, initial)
	assert.Equal(t, 0, dbtest.OnHand(t, db, productID))
	assert.Equal(t, initial, dbtest.CountRows(t, db, "stock_movements", "product_id = $1", productID))
}

func TestStore_ListMovementsByRange(t *testing.T) {
	db := dbtest.SQLite(t)
	ctx := context.Background()

	productID := dbtest.InsertProduct(t, db, dbtest.Product{Name: "Perruque", OnHand: 10, Threshold: 2})
	ledger := stock.NewLedger(store.New(db))

	early := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	late := time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{early, late} {
		_, err := ledger.Adjust(ctx, stock.AdjustParams{
			ProductID: productID, Quantity: 1, Type: stock.MovementAdjustDecrease, Actor: uuid.New(), MovedAt: at,
		})
		require.NoError(t, err)
	}

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	movements, err := store.New(db).ListMovements(ctx, stock.MovementFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.True(t, movements[0].MovedAt.Equal(late))
}
