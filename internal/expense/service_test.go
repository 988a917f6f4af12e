package expense_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
)

var today = calendar.Date(2026, 3, 14)

func newService(ctrl *gomock.Controller) (*expense.Service, *expense.MockRepository, *expense.MockTx) {
	repo := expense.NewMockRepository(ctrl)
	tx := expense.NewMockTx(ctrl)
	now := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)

	return expense.NewService(repo, calendar.New(time.UTC, calendar.WithClock(func() time.Time { return now }))), repo, tx
}

func TestService_Record(t *testing.T) {
	type testCase struct {
		name      string
		params    expense.RecordParams
		setupMock func(repo *expense.MockRepository, tx *expense.MockTx)
		wantErr   error
	}

	boutiqueDay := func(spent int64) func(repo *expense.MockRepository, tx *expense.MockTx) {
		return func(repo *expense.MockRepository, tx *expense.MockTx) {
			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().Lock(gomock.Any(), expense.EntityBoutique, "", today).Return(nil)
			tx.EXPECT().BoutiqueRevenue(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(50000), nil)
			tx.EXPECT().Spent(gomock.Any(), expense.EntityBoutique, "", today).Return(spent, nil)
			tx.EXPECT().Rollback().Return(nil)
		}
	}

	tests := []testCase{
		{
			name:   "WithinAllowance",
			params: expense.RecordParams{Entity: expense.EntityBoutique, Description: "Transport", Amount: 15000},
			setupMock: func(repo *expense.MockRepository, tx *expense.MockTx) {
				boutiqueDay(30000)(repo, tx)
				tx.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:      "AboveAllowance",
			params:    expense.RecordParams{Entity: expense.EntityBoutique, Description: "Transport", Amount: 25000},
			setupMock: boutiqueDay(30000),
			wantErr:   expense.ErrExceedsAllowance,
		},
		{
			name:   "SalonUsesHalfOfSectorRevenue",
			params: expense.RecordParams{Entity: expense.EntitySalon, Sector: "women", Description: "Mèches", Amount: 5001},
			setupMock: func(repo *expense.MockRepository, tx *expense.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Lock(gomock.Any(), expense.EntitySalon, "women", today).Return(nil)
				tx.EXPECT().SalonRevenue(gomock.Any(), "women", gomock.Any(), gomock.Any()).Return(int64(10000), nil)
				tx.EXPECT().Spent(gomock.Any(), expense.EntitySalon, "women", today).Return(int64(0), nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: expense.ErrExceedsAllowance,
		},
		{
			name:    "ZeroAmount",
			params:  expense.RecordParams{Entity: expense.EntityBoutique, Amount: 0},
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name:    "SalonWithoutSector",
			params:  expense.RecordParams{Entity: expense.EntitySalon, Amount: 100},
			wantErr: expense.ErrSectorRequired,
		},
		{
			name:    "UnknownEntity",
			params:  expense.RecordParams{Entity: "kiosk", Amount: 100},
			wantErr: expense.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo, tx := newService(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, tx)
			}

			got, err := svc.Record(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, today, got.SpentOn)
			assert.Equal(t, tt.params.Amount, got.Amount)
		})
	}
}

func TestService_Record_SpentOnMapsToLocalDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)
	tx := expense.NewMockTx(ctrl)

	kinshasa := time.FixedZone("WAT", 3600)
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, kinshasa)
	svc := expense.NewService(repo, calendar.New(kinshasa, calendar.WithClock(func() time.Time { return now })))

	// 23:30 UTC on the 14th is already the 15th in Kinshasa.
	spent := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	localDay := calendar.Date(2026, 3, 15)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Lock(gomock.Any(), expense.EntityBoutique, "", localDay).Return(nil)
	tx.EXPECT().BoutiqueRevenue(gomock.Any(),
		time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC), time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)).
		Return(int64(10000), nil)
	tx.EXPECT().Spent(gomock.Any(), expense.EntityBoutique, "", localDay).Return(int64(0), nil)
	tx.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.Record(context.Background(), expense.RecordParams{
		Entity: expense.EntityBoutique, Description: "Cintres", Amount: 2000, SpentOn: &spent,
	})
	require.NoError(t, err)
	assert.Equal(t, localDay, got.SpentOn)
}

func TestAllowanceError_CarriesRemaining(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, tx := newService(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().BoutiqueRevenue(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(50000), nil)
	tx.EXPECT().Spent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(30000), nil)
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Record(context.Background(), expense.RecordParams{Entity: expense.EntityBoutique, Amount: 25000})

	var allowanceErr *expense.AllowanceError
	require.ErrorAs(t, err, &allowanceErr)
	assert.Equal(t, int64(20000), allowanceErr.Allowance.Remaining())
	assert.Equal(t, int64(25000), allowanceErr.Requested)
}

func TestAllowance_Remaining(t *testing.T) {
	assert.Equal(t, int64(200), expense.Allowance{Budget: 500, Spent: 300}.Remaining())
	assert.Equal(t, int64(0), expense.Allowance{Budget: 500, Spent: 700}.Remaining())
}
