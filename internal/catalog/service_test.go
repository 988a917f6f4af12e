package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

type mocks struct {
	repo    *catalog.MockRepository
	tx      *catalog.MockTx
	ledger  *catalog.MockStockLedger
	stockTx *stock.MockTx
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		repo:    catalog.NewMockRepository(ctrl),
		tx:      catalog.NewMockTx(ctrl),
		ledger:  catalog.NewMockStockLedger(ctrl),
		stockTx: stock.NewMockTx(ctrl),
	}
}

func TestService_Create(t *testing.T) {
	actor := uuid.New()
	negative := -1

	type testCase struct {
		name       string
		params     catalog.CreateParams
		setupMock  func(m mocks)
		wantErr    error
		wantOnHand int
	}

	tests := []testCase{
		{
			name:   "WithoutInitialStock",
			params: catalog.CreateParams{Name: " Robe wax ", CostPrice: 800, SalePrice: 1500},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().InsertProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *catalog.Product) error {
						assert.Equal(t, "Robe wax", p.Name)
						assert.Equal(t, catalog.DefaultLowStockThreshold, p.LowStockThreshold)
						return nil
					})
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:   "InitialStockBookedAsInbound",
			params: catalog.CreateParams{Name: "Sac", CostPrice: 2000, SalePrice: 3500, InitialQuantity: 7, Actor: actor},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().InsertProduct(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Stock().Return(m.stockTx)

				applied := stock.Applied{Movement: &stock.Movement{Type: stock.MovementInbound}, Level: stock.Level{OnHand: 7, Threshold: 2}}
				m.ledger.EXPECT().AdjustTx(gomock.Any(), m.stockTx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ stock.Tx, params stock.AdjustParams) (stock.Applied, error) {
						assert.Equal(t, stock.MovementInbound, params.Type)
						assert.Equal(t, 7, params.Quantity)
						assert.Equal(t, actor, params.Actor)
						assert.Equal(t, "initial stock", params.Reason)
						return applied, nil
					})
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
				m.ledger.EXPECT().Settle(gomock.Any(), applied)
			},
			wantOnHand: 7,
		},
		{
			name:    "MissingName",
			params:  catalog.CreateParams{Name: "  ", SalePrice: 100},
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:    "NegativeThreshold",
			params:  catalog.CreateParams{Name: "Sac", LowStockThreshold: &negative},
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:   "InsertFails",
			params: catalog.CreateParams{Name: "Sac"},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().InsertProduct(gomock.Any(), gomock.Any()).Return(catalog.ErrCategoryNotFound)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: catalog.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			svc := catalog.NewService(m.repo, m.ledger)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.wantOnHand, got.OnHand)
		})
	}
}

func TestService_Resolve(t *testing.T) {
	actor := uuid.New()
	existing := &catalog.Product{ID: uuid.New(), Name: "Robe Wax", SalePrice: 1500}

	type testCase struct {
		name        string
		params      catalog.ResolveParams
		setupMock   func(m mocks)
		wantCreated bool
		wantErr     error
		check       func(t *testing.T, p *catalog.Product)
	}

	tests := []testCase{
		{
			name:   "MatchesExisting",
			params: catalog.ResolveParams{Name: "robe wax", UnitPrice: 1200, Quantity: 2, Actor: actor},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockName(gomock.Any(), "robe wax").Return(nil)
				m.tx.EXPECT().FindByName(gomock.Any(), "robe wax").Return(existing, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, p *catalog.Product) {
				assert.Equal(t, existing, p)
			},
		},
		{
			name:   "CreatesAdHocProduct",
			params: catalog.ResolveParams{Name: "Foulard", UnitPrice: 900, Quantity: 3, Actor: actor},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockName(gomock.Any(), "Foulard").Return(nil)
				m.tx.EXPECT().FindByName(gomock.Any(), "Foulard").Return(nil, catalog.ErrNotFound)
				m.tx.EXPECT().InsertProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *catalog.Product) error {
						assert.Equal(t, int64(0), p.CostPrice)
						assert.Equal(t, int64(900), p.SalePrice)
						return nil
					})
				m.tx.EXPECT().Stock().Return(m.stockTx)
				m.ledger.EXPECT().AdjustTx(gomock.Any(), m.stockTx, gomock.Any()).
					Return(stock.Applied{Movement: &stock.Movement{}, Level: stock.Level{OnHand: 3, Threshold: 2}}, nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
				m.ledger.EXPECT().Settle(gomock.Any(), gomock.Any())
			},
			wantCreated: true,
			check: func(t *testing.T, p *catalog.Product) {
				assert.Equal(t, "Foulard", p.Name)
				assert.Equal(t, 3, p.OnHand)
			},
		},
		{
			name:    "EmptyName",
			params:  catalog.ResolveParams{Name: " ", UnitPrice: 100, Quantity: 1},
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:   "LookupFails",
			params: catalog.ResolveParams{Name: "Foulard", UnitPrice: 900, Quantity: 1},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockName(gomock.Any(), "Foulard").Return(nil)
				m.tx.EXPECT().FindByName(gomock.Any(), "Foulard").Return(nil, errors.New("connection reset"))
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			svc := catalog.NewService(m.repo, m.ledger)
			got, created, err := svc.Resolve(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			tt.check(t, got)
		})
	}
}

func TestService_Search(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		limit     int
		wantLimit int
	}{
		{name: "DefaultLimit", query: "rob", limit: 0, wantLimit: 10},
		{name: "Capped", query: "rob", limit: 50, wantLimit: 10},
		{name: "Explicit", query: "rob", limit: 3, wantLimit: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			repo.EXPECT().SearchProducts(gomock.Any(), tt.query, tt.wantLimit).Return(nil, nil)

			_, err := catalog.NewService(repo, nil).Search(context.Background(), tt.query, tt.limit)
			assert.NoError(t, err)
		})
	}
}

func TestService_SearchBlankQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	got, err := catalog.NewService(catalog.NewMockRepository(ctrl), nil).Search(context.Background(), "  ", 5)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_UpdateKeepsOnHand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().GetProduct(gomock.Any(), id).
		Return(&catalog.Product{ID: id, Name: "Sac", OnHand: 4, LowStockThreshold: 2}, nil)
	repo.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *catalog.Product) error {
			assert.Equal(t, 4, p.OnHand)
			assert.Equal(t, "Sac cuir", p.Name)
			return nil
		})

	got, err := catalog.NewService(repo, nil).Update(context.Background(), id, catalog.UpdateParams{
		Name: "Sac cuir", CostPrice: 100, SalePrice: 200, LowStockThreshold: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), got.SalePrice)
}

func TestService_CreateCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)

	svc := catalog.NewService(repo, nil)

	got, err := svc.CreateCategory(context.Background(), " Bijoux ", "")
	require.NoError(t, err)
	assert.Equal(t, "Bijoux", got.Name)

	_, err = svc.CreateCategory(context.Background(), "", "")
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}

func TestProduct_Stock(t *testing.T) {
	p := catalog.Product{CostPrice: 250, OnHand: 2, LowStockThreshold: 2}

	assert.True(t, p.LowStock())
	assert.False(t, p.OutOfStock())
	assert.Equal(t, int64(500), p.StockValue())
}
