package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/comptoir/internal/catalog/store"
	"github.com/MrJamesThe3rd/comptoir/internal/database"
	"github.com/MrJamesThe3rd/comptoir/internal/database/dbtest"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/comptoir/internal/expense/store"
	"github.com/MrJamesThe3rd/comptoir/internal/report"
	"github.com/MrJamesThe3rd/comptoir/internal/report/store"
	"github.com/MrJamesThe3rd/comptoir/internal/sale"
	saleStore "github.com/MrJamesThe3rd/comptoir/internal/sale/store"
	"github.com/MrJamesThe3rd/comptoir/internal/salon"
	salonStore "github.com/MrJamesThe3rd/comptoir/internal/salon/store"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
	stockStore "github.com/MrJamesThe3rd/comptoir/internal/stock/store"
)

var (
	day = calendar.Date(2026, 3, 14)
	at  = time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)
)

type fixture struct {
	reports  *report.Service
	products *catalog.Service
	sales    *sale.Service
	salon    *salon.Service
	expenses *expense.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db := dbtest.SQLite(t)
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	cal := calendar.New(time.UTC, calendar.WithClock(func() time.Time { return now }))
	ledger := stock.NewLedger(stockStore.New(db))
	products := catalog.NewService(catalogStore.New(db, database.SQLite), ledger)

	return fixture{
		reports:  report.NewService(store.New(db), cal),
		products: products,
		sales:    sale.NewService(saleStore.New(db), ledger, products, sale.WithClock(func() time.Time { return now })),
		salon:    salon.NewService(salonStore.New(db), cal),
		expenses: expense.NewService(expenseStore.New(db, database.SQLite), cal),
	}
}

func TestBoutiqueReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seller := uuid.New()

	category, err := f.products.CreateCategory(ctx, "Robes", "")
	require.NoError(t, err)

	dress, err := f.products.Create(ctx, catalog.CreateParams{
		Name: "Robe wax", CategoryID: &category.ID, CostPrice: 6000, SalePrice: 10000, InitialQuantity: 5, Actor: seller,
	})
	require.NoError(t, err)

	_, err = f.products.Create(ctx, catalog.CreateParams{Name: "Sac", CostPrice: 2000, SalePrice: 3500, InitialQuantity: 1, Actor: seller})
	require.NoError(t, err)

	s, err := f.sales.Create(ctx, sale.CreateParams{Seller: seller, SoldAt: at, Lines: []sale.LineParams{{ProductID: dress.ID, Quantity: 2}}})
	require.NoError(t, err)

	_, err = f.sales.Finalize(ctx, s.ID)
	require.NoError(t, err)

	// A draft on the same day is ignored.
	_, err = f.sales.Create(ctx, sale.CreateParams{Seller: seller, SoldAt: at, Lines: []sale.LineParams{{ProductID: dress.ID, Quantity: 1}}})
	require.NoError(t, err)

	_, err = f.expenses.Record(ctx, expense.RecordParams{Entity: expense.EntityBoutique, Description: "Transport", Amount: 3000, SpentOn: &day})
	require.NoError(t, err)

	daily, err := f.reports.BoutiqueDaily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), daily.Revenue)
	assert.Equal(t, int64(12000), daily.Cost)
	assert.Equal(t, int64(8000), daily.Margin)
	assert.Equal(t, int64(3000), daily.Expenses)
	assert.Equal(t, int64(5000), daily.Net)
	assert.Equal(t, 1, daily.SaleCount)

	monthly, err := f.reports.MonthlyRevenue(ctx, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), monthly.Revenue)

	valuation, err := f.reports.StockValuation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3*6000+2000), valuation.TotalValue)
	assert.Equal(t, 2, valuation.ProductCount)
	assert.Equal(t, 1, valuation.LowStockCount)
	assert.Equal(t, "Robe wax", valuation.Top[0].Name)

	expenses, err := f.reports.MonthlyExpenses(ctx, expense.EntityBoutique, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), expenses.Total)
	require.Len(t, expenses.Rows, 1)
}

func TestSalonReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	women, err := f.salon.CreateSector(ctx, salon.SectorWomen, nil, decimal.RequireFromString("0.30"))
	require.NoError(t, err)

	_, err = f.salon.CreateSector(ctx, salon.SectorMen, nil, decimal.RequireFromString("0.40"))
	require.NoError(t, err)

	grace, err := f.salon.CreateStaff(ctx, salon.StaffParams{FirstName: "Grace", LastName: "Mbuyi", SectorID: women.ID})
	require.NoError(t, err)

	aline, err := f.salon.CreateStaff(ctx, salon.StaffParams{FirstName: "Aline", LastName: "Kabongo", SectorID: women.ID})
	require.NoError(t, err)

	braids, err := f.salon.CreateServiceType(ctx, salon.ServiceTypeParams{Name: "Tresses", Price: 10000})
	require.NoError(t, err)

	record := func(staff uuid.UUID, when time.Time) {
		_, _, err := f.salon.RecordPrestation(ctx, salon.PrestationParams{StaffID: staff, ServiceTypeID: braids.ID, PerformedAt: when})
		require.NoError(t, err)
	}

	record(grace.ID, at)
	record(grace.ID, at)
	record(aline.ID, at)
	record(aline.ID, at.AddDate(0, 0, -1))

	daily, err := f.reports.SalonDaily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), daily.Revenue)
	assert.Equal(t, int64(5000), daily.PreviousRevenue)
	require.NotNil(t, daily.Change)
	assert.Equal(t, "200", daily.Change.String())
	assert.Equal(t, 3, daily.Prestations)
	assert.Equal(t, 2, daily.StaffCount)
	require.Len(t, daily.Sectors, 2)

	period, err := f.reports.SalonRange(ctx, day.AddDate(0, 0, -1), day)
	require.NoError(t, err)
	assert.Equal(t, 4, period.Prestations)
	assert.Equal(t, int64(20000), period.Revenue)
	assert.Equal(t, int64(12000), period.Commissions)
	require.Len(t, period.ByStaff, 2)
	assert.Equal(t, 2, period.ByStaff[0].Prestations)
	assert.Equal(t, int64(20000), period.ByStaff[0].Paid)

	commissions, err := f.reports.MonthlyCommissions(ctx, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), commissions.Total)
	require.Len(t, commissions.ByStaff, 2)
	assert.Equal(t, int64(6000), commissions.ByStaff[0].Total)
}
