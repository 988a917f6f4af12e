package report_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/report"
)

func newService(ctrl *gomock.Controller) (*report.Service, *report.MockRepository) {
	repo := report.NewMockRepository(ctrl)
	return report.NewService(repo, calendar.New(time.FixedZone("WAT", 3600))), repo
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		previous int64
		current  int64
		want     string
	}{
		{"Growth", 10000, 15000, "50"},
		{"Decline", 20000, 15000, "-25"},
		{"Rounded", 3, 4, "33.33"},
		{"NoPrevious", 0, 15000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.PercentChange(tt.previous, tt.current)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestService_BoutiqueDaily(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newService(ctrl)
	day := calendar.Date(2026, 3, 14)

	// Local midnight in WAT is 23:00 UTC the day before.
	from := time.Date(2026, 3, 13, 23, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)

	repo.EXPECT().BoutiqueTotals(gomock.Any(), from, to).
		Return(report.BoutiqueTotals{Revenue: 50000, Cost: 30000, SaleCount: 4}, nil)
	repo.EXPECT().Expenses(gomock.Any(), expense.EntityBoutique, day, day.AddDate(0, 0, 1)).
		Return([]report.ExpenseRow{{Amount: 5000}, {Amount: 2500}}, nil)

	got, err := svc.BoutiqueDaily(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, int64(20000), got.Margin)
	assert.Equal(t, int64(7500), got.Expenses)
	assert.Equal(t, int64(12500), got.Net)
	assert.Equal(t, 4, got.SaleCount)
}

func TestService_StockValuation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newService(ctrl)
	bags := uuid.New()

	var products []report.ProductValue
	for i := 1; i <= 7; i++ {
		products = append(products, report.ProductValue{
			ProductID:    uuid.New(),
			Name:         fmt.Sprintf("Produit %d", i),
			CategoryID:   &bags,
			CategoryName: "Sacs",
			OnHand:       i,
			Threshold:    2,
			CostPrice:    1000,
		})
	}

	products = append(products, report.ProductValue{ProductID: uuid.New(), Name: "Vrac", OnHand: 0, Threshold: 2, CostPrice: 500})

	repo.EXPECT().ProductValues(gomock.Any()).Return(products, nil)

	got, err := svc.StockValuation(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(28000), got.TotalValue)
	assert.Equal(t, 8, got.ProductCount)
	assert.Equal(t, 3, got.LowStockCount)

	require.Len(t, got.Top, 5)
	assert.Equal(t, "Produit 7", got.Top[0].Name)
	assert.Equal(t, "Produit 3", got.Top[4].Name)

	require.Len(t, got.ByCategory, 2)
	assert.Equal(t, "Sacs", got.ByCategory[0].Name)
	assert.Equal(t, int64(28000), got.ByCategory[0].Value)
	assert.Nil(t, got.ByCategory[1].CategoryID)
}

func TestService_SalonDaily(t *testing.T) {
	day := calendar.Date(2026, 3, 14)

	tests := []struct {
		name       string
		yesterday  []report.SectorTotals
		wantChange string
	}{
		{
			name:       "ComparedToYesterday",
			yesterday:  []report.SectorTotals{{Name: "men", Gross: 8000}, {Name: "women", Gross: 12000}},
			wantChange: "50",
		},
		{
			name:      "NoRevenueYesterday",
			yesterday: []report.SectorTotals{{Name: "men"}, {Name: "women"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo := newService(ctrl)

			today := []report.SectorTotals{
				{Name: "men", Gross: 10000, Prestations: 2, Commissions: 3000},
				{Name: "women", Gross: 20000, Prestations: 3, Commissions: 6000},
			}

			from, to := time.Date(2026, 3, 13, 23, 0, 0, 0, time.UTC), time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
			repo.EXPECT().SectorTotals(gomock.Any(), from, to).Return(today, nil)
			repo.EXPECT().SectorTotals(gomock.Any(), from.AddDate(0, 0, -1), from).Return(tt.yesterday, nil)
			repo.EXPECT().StaffCount(gomock.Any()).Return(6, nil)
			repo.EXPECT().Expenses(gomock.Any(), expense.EntitySalon, day, day.AddDate(0, 0, 1)).
				Return([]report.ExpenseRow{{Amount: 1200}}, nil)

			got, err := svc.SalonDaily(context.Background(), day)
			require.NoError(t, err)

			assert.Equal(t, int64(15000), got.Revenue)
			assert.Equal(t, 5, got.Prestations)
			assert.Equal(t, 6, got.StaffCount)
			assert.Equal(t, int64(1200), got.Expenses)

			if tt.wantChange == "" {
				assert.Nil(t, got.Change)
				return
			}

			require.NotNil(t, got.Change)
			assert.Equal(t, tt.wantChange, got.Change.String())
		})
	}
}

func TestService_MonthlyCommissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newService(ctrl)

	repo.EXPECT().CommissionTotals(gomock.Any(), calendar.Date(2026, 2, 1), calendar.Date(2026, 3, 1)).
		Return([]report.StaffCommission{{Name: "Grace Mbuyi", Total: 9000}, {Name: "Aline Kabongo", Total: 4500}}, nil)

	got, err := svc.MonthlyCommissions(context.Background(), 2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, int64(13500), got.Total)
	assert.Len(t, got.ByStaff, 2)
}
