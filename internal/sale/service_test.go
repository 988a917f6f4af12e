package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/sale"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

type mocks struct {
	repo     *sale.MockRepository
	tx       *sale.MockTx
	ledger   *sale.MockStockLedger
	resolver *sale.MockProductResolver
	stockTx  *stock.MockTx
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		repo:     sale.NewMockRepository(ctrl),
		tx:       sale.NewMockTx(ctrl),
		ledger:   sale.NewMockStockLedger(ctrl),
		resolver: sale.NewMockProductResolver(ctrl),
		stockTx:  stock.NewMockTx(ctrl),
	}
}

func newService(m mocks) *sale.Service {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return sale.NewService(m.repo, m.ledger, m.resolver, sale.WithClock(func() time.Time { return now }))
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		collected int64
		total     int64
		want      sale.Status
	}{
		{"NothingCollected", 0, 10000, sale.StatusUnpaid},
		{"Partial", 4000, 10000, sale.StatusPartial},
		{"Exact", 10000, 10000, sale.StatusPaid},
		{"Overpaid", 12000, 10000, sale.StatusPaid},
		{"EmptySale", 0, 0, sale.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sale.DeriveStatus(tt.collected, tt.total))
		})
	}
}

func TestSale_Balance(t *testing.T) {
	s := &sale.Sale{Total: 10000, AmountCollected: 4000}
	assert.Equal(t, int64(6000), s.Balance())

	s.AmountCollected = 12000
	assert.Equal(t, int64(0), s.Balance())
}

func TestService_Create(t *testing.T) {
	productID := uuid.New()
	product := sale.ProductInfo{ID: productID, Name: "Robe wax", OnHand: 5, SalePrice: 1500}

	type testCase struct {
		name      string
		lines     []sale.LineParams
		setupMock func(m mocks)
		wantErr   error
		wantTotal int64
	}

	tests := []testCase{
		{
			name:  "CatalogPriceWhenUnset",
			lines: []sale.LineParams{{ProductID: productID, Quantity: 2}},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Product(gomock.Any(), productID).Return(product, nil)
				m.tx.EXPECT().InsertSale(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *sale.Sale) error {
						assert.Equal(t, int64(3000), s.Total)
						assert.Equal(t, sale.StatusUnpaid, s.PaymentStatus)
						assert.False(t, s.Completed)
						return nil
					})
				m.tx.EXPECT().InsertLine(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantTotal: 3000,
		},
		{
			name:  "QuantityAboveOnHand",
			lines: []sale.LineParams{{ProductID: productID, Quantity: 6, UnitPrice: 1000}},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Product(gomock.Any(), productID).Return(product, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: stock.ErrInsufficientStock,
		},
		{
			name:  "ZeroQuantity",
			lines: []sale.LineParams{{ProductID: productID, Quantity: 0}},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: sale.ErrInvalidLine,
		},
		{
			name:  "UnknownProduct",
			lines: []sale.LineParams{{ProductID: productID, Quantity: 1}},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Product(gomock.Any(), productID).Return(sale.ProductInfo{}, sale.ErrProductNotFound)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: sale.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMock(m)

			got, err := newService(m).Create(context.Background(), sale.CreateParams{
				Seller: uuid.New(),
				Lines:  tt.lines,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.Total)
			require.Len(t, got.Lines, len(tt.lines))
		})
	}
}

func TestService_AddLine_FinalizedSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	saleID := uuid.New()

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().LockSale(gomock.Any(), saleID).Return(&sale.Sale{ID: saleID, Completed: true}, nil)
	m.tx.EXPECT().Rollback().Return(nil)

	_, err := newService(m).AddLine(context.Background(), saleID, sale.LineParams{ProductID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, sale.ErrSaleFinalized)
}

func TestService_TotalChangeRederivesStatus(t *testing.T) {
	saleID := uuid.New()
	productID := uuid.New()
	existing := &sale.Line{SaleID: saleID, ProductID: productID, Quantity: 1, UnitPrice: 4000}

	type testCase struct {
		name      string
		collected int64
		call      func(svc *sale.Service) error
		wantTotal int64
		want      sale.Status
	}

	addLine := func(svc *sale.Service) error {
		_, err := svc.AddLine(context.Background(), saleID, sale.LineParams{ProductID: productID, Quantity: 2})
		return err
	}

	calculate := func(svc *sale.Service) error {
		_, err := svc.CalculateTotal(context.Background(), saleID)
		return err
	}

	tests := []testCase{
		{name: "AddLineAfterFullPayment", collected: 4000, call: addLine, wantTotal: 12000, want: sale.StatusPartial},
		{name: "AddLineWithoutPayment", collected: 0, call: addLine, wantTotal: 12000, want: sale.StatusUnpaid},
		{name: "AddLineStillCovered", collected: 12000, call: addLine, wantTotal: 12000, want: sale.StatusPaid},
		{name: "CalculateTotalAfterPayment", collected: 1000, call: calculate, wantTotal: 4000, want: sale.StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)

			lines := []*sale.Line{existing}

			m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
			m.tx.EXPECT().LockSale(gomock.Any(), saleID).
				Return(&sale.Sale{ID: saleID, Total: 4000, AmountCollected: tt.collected}, nil)

			if tt.wantTotal != existing.Subtotal() {
				m.tx.EXPECT().Product(gomock.Any(), productID).
					Return(sale.ProductInfo{ID: productID, Name: "Pagne", OnHand: 5, SalePrice: 4000}, nil)
				m.tx.EXPECT().InsertLine(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *sale.Line) error {
					lines = append(lines, l)
					return nil
				})
			}

			m.tx.EXPECT().Lines(gomock.Any(), saleID).DoAndReturn(func(context.Context, uuid.UUID) ([]*sale.Line, error) {
				return lines, nil
			})
			m.tx.EXPECT().UpdateTotal(gomock.Any(), saleID, tt.wantTotal).Return(nil)
			m.tx.EXPECT().SumPayments(gomock.Any(), saleID).Return(tt.collected, nil)
			m.tx.EXPECT().UpdatePaymentState(gomock.Any(), saleID, tt.collected, tt.want).Return(nil)
			m.tx.EXPECT().Commit().Return(nil)
			m.tx.EXPECT().Rollback().Return(nil)

			require.NoError(t, tt.call(newService(m)))
		})
	}
}

func TestService_Finalize(t *testing.T) {
	saleID := uuid.New()
	seller := uuid.New()
	soldAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	lines := []*sale.Line{
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: 1500},
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: 4000},
	}

	type testCase struct {
		name      string
		setupMock func(m mocks)
		want      bool
		wantErr   error
	}

	tests := []testCase{
		{
			name: "DebitsEveryLine",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockSale(gomock.Any(), saleID).
					Return(&sale.Sale{ID: saleID, SellerID: seller, SoldAt: soldAt, AmountCollected: 2000}, nil)
				m.tx.EXPECT().Lines(gomock.Any(), saleID).Return(lines, nil)
				m.tx.EXPECT().Stock().Return(m.stockTx).Times(2)
				m.ledger.EXPECT().AdjustTx(gomock.Any(), m.stockTx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ stock.Tx, params stock.AdjustParams) (stock.Applied, error) {
						assert.Equal(t, stock.MovementSaleOutbound, params.Type)
						assert.Equal(t, seller, params.Actor)
						assert.Equal(t, soldAt, params.MovedAt)
						assert.Contains(t, params.Reason, saleID.String())
						require.NotNil(t, params.SaleID)
						assert.Equal(t, saleID, *params.SaleID)
						return stock.Applied{}, nil
					}).Times(2)
				m.tx.EXPECT().MarkFinalized(gomock.Any(), saleID, int64(7000), sale.StatusPartial, gomock.Any()).Return(true, nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
				m.ledger.EXPECT().Settle(gomock.Any(), gomock.Any())
			},
			want: true,
		},
		{
			name: "AlreadyFinalized",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockSale(gomock.Any(), saleID).Return(&sale.Sale{ID: saleID, Completed: true}, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			want: false,
		},
		{
			name: "SecondLineShortRollsBack",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockSale(gomock.Any(), saleID).Return(&sale.Sale{ID: saleID, SellerID: seller}, nil)
				m.tx.EXPECT().Lines(gomock.Any(), saleID).Return(lines, nil)
				m.tx.EXPECT().Stock().Return(m.stockTx).Times(2)
				gomock.InOrder(
					m.ledger.EXPECT().AdjustTx(gomock.Any(), m.stockTx, gomock.Any()).Return(stock.Applied{}, nil),
					m.ledger.EXPECT().AdjustTx(gomock.Any(), m.stockTx, gomock.Any()).
						Return(stock.Applied{}, &stock.InsufficientStockError{Available: 0, Requested: 1}),
				)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: stock.ErrInsufficientStock,
		},
		{
			name: "UnknownSale",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockSale(gomock.Any(), saleID).Return(nil, sale.ErrNotFound)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: sale.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMock(m)

			got, err := newService(m).Finalize(context.Background(), saleID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_RecordPayment(t *testing.T) {
	saleID := uuid.New()

	type testCase struct {
		name       string
		params     sale.PaymentParams
		setupMock  func(m mocks)
		wantErr    error
		wantStatus sale.Status
	}

	tests := []testCase{
		{
			name:   "PartialThenStatusDerived",
			params: sale.PaymentParams{Amount: 4000, Mode: sale.ModeCash},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockSale(gomock.Any(), saleID).Return(&sale.Sale{ID: saleID, Total: 10000}, nil)
				m.tx.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().SumPayments(gomock.Any(), saleID).Return(int64(4000), nil)
				m.tx.EXPECT().UpdatePaymentState(gomock.Any(), saleID, int64(4000), sale.StatusPartial).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: sale.StatusPartial,
		},
		{
			name:    "ZeroAmount",
			params:  sale.PaymentParams{Amount: 0, Mode: sale.ModeCash},
			wantErr: sale.ErrInvalidAmount,
		},
		{
			name:    "UnknownMode",
			params:  sale.PaymentParams{Amount: 100, Mode: "barter"},
			wantErr: sale.ErrInvalidPaymentMode,
		},
		{
			name:   "StoreFailure",
			params: sale.PaymentParams{Amount: 100, Mode: sale.ModeBank},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockSale(gomock.Any(), saleID).Return(&sale.Sale{ID: saleID, Total: 10000}, nil)
				m.tx.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("insert payment: disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := newService(m).RecordPayment(context.Background(), saleID, tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(err, tt.wantErr) {
					return
				}

				assert.EqualError(t, err, tt.wantErr.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.Amount, got.Amount)
			assert.False(t, got.PaidAt.IsZero())
		})
	}
}

func TestService_Checkout_ResolvesFreeTextLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	seller := uuid.New()
	created := &catalog.Product{ID: uuid.New(), Name: "Foulard soie", SalePrice: 2500, OnHand: 1}

	m.resolver.EXPECT().Resolve(gomock.Any(), catalog.ResolveParams{
		Name: "Foulard soie", UnitPrice: 2500, Quantity: 1, Actor: seller,
	}).Return(created, true, nil)

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().Product(gomock.Any(), created.ID).
		Return(sale.ProductInfo{ID: created.ID, Name: created.Name, OnHand: 1, SalePrice: 2500}, nil)
	m.tx.EXPECT().InsertSale(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().InsertLine(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().SumPayments(gomock.Any(), gomock.Any()).Return(int64(1000), nil)
	m.tx.EXPECT().UpdatePaymentState(gomock.Any(), gomock.Any(), int64(1000), sale.StatusPartial).Return(nil)
	m.tx.EXPECT().Stock().Return(m.stockTx)
	m.ledger.EXPECT().AdjustTx(gomock.Any(), m.stockTx, gomock.Any()).Return(stock.Applied{}, nil)
	m.tx.EXPECT().MarkFinalized(gomock.Any(), gomock.Any(), int64(2500), sale.StatusPartial, gomock.Any()).Return(true, nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)
	m.ledger.EXPECT().Settle(gomock.Any(), gomock.Any())

	got, err := newService(m).Checkout(context.Background(), sale.CheckoutParams{
		Seller:  seller,
		Lines:   []sale.CheckoutLine{{Name: "Foulard soie", Quantity: 1, UnitPrice: 2500}},
		Deposit: &sale.PaymentParams{Amount: 1000, Mode: sale.ModeMobileMoney, Actor: seller},
	})
	require.NoError(t, err)

	assert.True(t, got.Sale.Completed)
	assert.Equal(t, sale.StatusPartial, got.Sale.PaymentStatus)
	assert.Equal(t, int64(1500), got.Sale.Balance())
	require.Len(t, got.Created, 1)
	assert.Equal(t, created.ID, got.Created[0].ID)
}

func TestService_Checkout_MergesRepeatedNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	seller := uuid.New()

	m.resolver.EXPECT().Resolve(gomock.Any(), catalog.ResolveParams{
		Name: "Bic", UnitPrice: 300, Quantity: 3, Actor: seller,
	}).Return(nil, false, errors.New("catalog unavailable")).Times(1)

	_, err := newService(m).Checkout(context.Background(), sale.CheckoutParams{
		Seller: seller,
		Lines: []sale.CheckoutLine{
			{Name: "Bic", Quantity: 2, UnitPrice: 300},
			{Name: "BIC ", Quantity: 1, UnitPrice: 300},
		},
	})
	assert.EqualError(t, err, `resolve "Bic": catalog unavailable`)
}

func TestService_Checkout_RejectsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	_, err := newService(m).Checkout(context.Background(), sale.CheckoutParams{Seller: uuid.New()})
	assert.ErrorIs(t, err, sale.ErrInvalidLine)
}
