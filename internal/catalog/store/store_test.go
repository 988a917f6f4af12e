package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/catalog/store"
	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/database/dbtest"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
	stockStore "github.com/MrJamesThe3rd/comptoir/internal/stock/store"
)

func newService(t *testing.T) (*catalog.Service, *store.Store) {
	t.Helper()

	db := dbtest.SQLite(t)
	s := store.New(db, database.SQLite)

	return catalog.NewService(s, stock.NewLedger(stockStore.New(db))), s
}

func TestCatalog_CreateWithInitialStock(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)

	category, err := svc.CreateCategory(ctx, "Robes", "")
	require.NoError(t, err)

	p, err := svc.Create(ctx, catalog.CreateParams{
		Name: "Robe wax", CategoryID: &category.ID, CostPrice: 800, SalePrice: 1500, InitialQuantity: 5, Actor: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, p.OnHand)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.OnHand)
	assert.Equal(t, "Robes", got.CategoryName)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, category.ID, *got.CategoryID)

	err = s.CreateCategory(ctx, &catalog.Category{ID: uuid.New(), Name: "Robes"})
	assert.ErrorIs(t, err, catalog.ErrDuplicateName)
}

func TestCatalog_CreateUnknownCategory(t *testing.T) {
	svc, _ := newService(t)
	missing := uuid.New()

	_, err := svc.Create(context.Background(), catalog.CreateParams{Name: "Sac", CategoryID: &missing})
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
}

func TestCatalog_ResolveIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	actor := uuid.New()

	first, created, err := svc.Resolve(ctx, catalog.ResolveParams{Name: "Foulard Soie", UnitPrice: 900, Quantity: 3, Actor: actor})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 3, first.OnHand)
	assert.Equal(t, int64(0), first.CostPrice)
	assert.Equal(t, int64(900), first.SalePrice)

	second, created, err := svc.Resolve(ctx, catalog.ResolveParams{Name: "foulard soie", UnitPrice: 1000, Quantity: 1, Actor: actor})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(900), second.SalePrice)
}

func TestCatalog_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	for _, p := range []catalog.CreateParams{
		{Name: "Robe longue", SalePrice: 100, InitialQuantity: 10},
		{Name: "Robe courte", SalePrice: 100, InitialQuantity: 1},
		{Name: "Sandales", SalePrice: 100},
	} {
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	}

	low, err := svc.List(ctx, catalog.ListFilter{LowStockOnly: true})
	require.NoError(t, err)
	assert.Len(t, low, 2)

	out, err := svc.List(ctx, catalog.ListFilter{OutOfStockOnly: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Sandales", out[0].Name)

	found, err := svc.Search(ctx, "ROBE", 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Robe courte", found[0].Name)

	named, err := svc.List(ctx, catalog.ListFilter{NameContains: "longue"})
	require.NoError(t, err)
	assert.Len(t, named, 1)
}

func TestCatalog_DeleteReferencedProduct(t *testing.T) {
	ctx := context.Background()
	db := dbtest.SQLite(t)
	svc := catalog.NewService(store.New(db, database.SQLite), stock.NewLedger(stockStore.New(db)))

	referenced := dbtest.InsertProduct(t, db, dbtest.Product{Name: "Sac", OnHand: 3})
	free := dbtest.InsertProduct(t, db, dbtest.Product{Name: "Ceinture", OnHand: 3})

	now := database.UTC(time.Now())
	saleID := uuid.New()

	_, err := db.Exec(`INSERT INTO sales (id, seller_id, sold_at, created_at, updated_at) VALUES ($1, $2, $3, $3, $3)`,
		saleID, uuid.New(), now)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, created_at) VALUES ($1, $2, $3, 1, 500, $4)`,
		uuid.New(), saleID, referenced, now)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, referenced), catalog.ErrReferenced)
	assert.NoError(t, svc.Delete(ctx, free))
	assert.ErrorIs(t, svc.Delete(ctx, free), catalog.ErrNotFound)

	_, err = svc.Get(ctx, free)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCatalog_DeleteRemovesMovements(t *testing.T) {
	ctx := context.Background()
	db := dbtest.SQLite(t)
	svc := catalog.NewService(store.New(db, database.SQLite), stock.NewLedger(stockStore.New(db)))

	p, err := svc.Create(ctx, catalog.CreateParams{Name: "Bracelet", SalePrice: 300, InitialQuantity: 2})
	require.NoError(t, err)
	require.Equal(t, 1, dbtest.CountRows(t, db, "stock_movements", "product_id = $1", p.ID))

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Equal(t, 0, dbtest.CountRows(t, db, "stock_movements", "product_id = $1", p.ID))
}

func TestCatalog_ReceiveRestocksOrCreates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	actor := uuid.New()

	existing, err := svc.Create(ctx, catalog.CreateParams{Name: "Sac cuir", CostPrice: 2000, SalePrice: 3500, InitialQuantity: 1, Actor: actor})
	require.NoError(t, err)

	p, created, err := svc.Receive(ctx, catalog.ReceiveParams{Name: "SAC CUIR", CostPrice: 2200, Quantity: 4, Actor: actor})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, p.ID)
	assert.Equal(t, 5, p.OnHand)

	got, err := svc.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2200), got.CostPrice)
	assert.Equal(t, int64(3500), got.SalePrice)

	fresh, created, err := svc.Receive(ctx, catalog.ReceiveParams{Name: "Ceinture", CostPrice: 700, SalePrice: 1200, Quantity: 3, Actor: actor})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 3, fresh.OnHand)

	_, _, err = svc.Receive(ctx, catalog.ReceiveParams{Name: "Ceinture", Quantity: 0, Actor: actor})
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}

func TestCatalogTx_InsertProductStartsAtZero(t *testing.T) {
	ctx := context.Background()
	_, s := newService(t)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	p := &catalog.Product{ID: uuid.New(), Name: "Chapeau", SalePrice: 1800, OnHand: 7, LowStockThreshold: 2}
	require.NoError(t, tx.InsertProduct(ctx, p))
	require.NoError(t, tx.UpdatePrices(ctx, p.ID, 900, 2000))
	require.NoError(t, tx.Commit())

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OnHand)
	assert.Equal(t, int64(900), got.CostPrice)
	assert.Equal(t, int64(2000), got.SalePrice)
}
