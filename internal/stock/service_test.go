package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

type recordingNotifier struct {
	levels []stock.Level
}

func (n *recordingNotifier) LowStock(_ context.Context, level stock.Level) {
	n.levels = append(n.levels, level)
}

func TestLedger_Adjust(t *testing.T) {
	productID := uuid.New()
	actor := uuid.New()
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    stock.AdjustParams
		setupMock func(repo *stock.MockRepository, tx *stock.MockTx)
		wantErr   error
		wantMsg   string
		wantLow   int
	}

	tests := []testCase{
		{
			name:    "ZeroQuantity",
			params:  stock.AdjustParams{ProductID: productID, Quantity: 0, Type: stock.MovementInbound, Actor: actor},
			wantErr: stock.ErrInvalidQuantity,
		},
		{
			name:    "UnknownType",
			params:  stock.AdjustParams{ProductID: productID, Quantity: 1, Type: "gift", Actor: actor},
			wantErr: stock.ErrInvalidMovementType,
		},
		{
			name:   "Inbound",
			params: stock.AdjustParams{ProductID: productID, Quantity: 4, Type: stock.MovementInbound, Actor: actor},
			setupMock: func(repo *stock.MockRepository, tx *stock.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Increase(gomock.Any(), productID, 4).
					Return(stock.Level{ProductID: productID, ProductName: "Robe", OnHand: 9, Threshold: 2}, nil)
				tx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m *stock.Movement) error {
						assert.Equal(t, stock.MovementInbound, m.Type)
						assert.Equal(t, 4, m.Quantity)
						assert.Equal(t, fixed, m.MovedAt)
						assert.Equal(t, actor, m.ActorID)
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:   "OutboundReachesThreshold",
			params: stock.AdjustParams{ProductID: productID, Quantity: 3, Type: stock.MovementAdjustDecrease, Actor: actor, Reason: "damaged"},
			setupMock: func(repo *stock.MockRepository, tx *stock.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Decrease(gomock.Any(), productID, 3).
					Return(stock.Level{ProductID: productID, ProductName: "Robe", OnHand: 2, Threshold: 2}, true, nil)
				tx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantLow: 1,
		},
		{
			name:   "InsufficientStock",
			params: stock.AdjustParams{ProductID: productID, Quantity: 6, Type: stock.MovementSaleOutbound, Actor: actor},
			setupMock: func(repo *stock.MockRepository, tx *stock.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Decrease(gomock.Any(), productID, 6).
					Return(stock.Level{ProductID: productID, ProductName: "Robe", OnHand: 5, Threshold: 2}, false, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: stock.ErrInsufficientStock,
		},
		{
			name:   "MovementInsertFails",
			params: stock.AdjustParams{ProductID: productID, Quantity: 1, Type: stock.MovementAdjustIncrease, Actor: actor},
			setupMock: func(repo *stock.MockRepository, tx *stock.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Increase(gomock.Any(), productID, 1).Return(stock.Level{OnHand: 6, Threshold: 2}, nil)
				tx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantMsg: "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := stock.NewMockRepository(ctrl)
			tx := stock.NewMockTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, tx)
			}

			notifier := &recordingNotifier{}
			ledger := stock.NewLedger(repo,
				stock.WithNotifier(notifier),
				stock.WithClock(func() time.Time { return fixed }),
			)

			got, err := ledger.Adjust(context.Background(), tt.params)
			if tt.wantErr != nil || tt.wantMsg != "" {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				assert.Contains(t, err.Error(), tt.wantMsg)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Len(t, notifier.levels, tt.wantLow)
		})
	}
}

func TestLedger_InsufficientStockDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	productID := uuid.New()

	tx := stock.NewMockTx(ctrl)
	tx.EXPECT().Decrease(gomock.Any(), productID, 8).
		Return(stock.Level{ProductID: productID, ProductName: "Sac", OnHand: 3}, false, nil)

	ledger := stock.NewLedger(stock.NewMockRepository(ctrl))

	_, err := ledger.AdjustTx(context.Background(), tx, stock.AdjustParams{
		ProductID: productID,
		Quantity:  8,
		Type:      stock.MovementSaleOutbound,
		Actor:     uuid.New(),
	})

	var insufficient *stock.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, productID, insufficient.ProductID)
	assert.Equal(t, "Sac", insufficient.ProductName)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 8, insufficient.Requested)
}

func TestLedger_Settle(t *testing.T) {
	notifier := &recordingNotifier{}
	ledger := stock.NewLedger(nil, stock.WithNotifier(notifier))

	ledger.Settle(context.Background(),
		stock.Applied{Movement: &stock.Movement{Type: stock.MovementSaleOutbound}, Level: stock.Level{OnHand: 10, Threshold: 2}},
		stock.Applied{Movement: &stock.Movement{Type: stock.MovementSaleOutbound}, Level: stock.Level{OnHand: 0, Threshold: 2}},
	)

	require.Len(t, notifier.levels, 1)
	assert.Equal(t, 0, notifier.levels[0].OnHand)
}

func TestMovementType(t *testing.T) {
	tests := []struct {
		typ      stock.MovementType
		valid    bool
		outbound bool
	}{
		{typ: stock.MovementInbound, valid: true},
		{typ: stock.MovementAdjustIncrease, valid: true},
		{typ: stock.MovementSaleOutbound, valid: true, outbound: true},
		{typ: stock.MovementAdjustDecrease, valid: true, outbound: true},
		{typ: "transfer"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.typ.Valid())
			assert.Equal(t, tt.outbound, tt.typ.Outbound())
		})
	}
}
