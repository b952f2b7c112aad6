package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/matching"
)

func TestService_Suggest(t *testing.T) {
	type testCase struct {
		name      string
		detail    string
		setupMock func(m *matching.MockRepository)
		want      string
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Match",
			detail: "  Uber Eats pedido  ",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "Uber Eats pedido").Return("Comida", nil)
			},
			want: "Comida",
		},
		{
			name:   "Blank",
			detail: "   ",
		},
		{
			name:   "RepoError",
			detail: "Uber",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "Uber").Return("", errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := matching.NewService(repo).Suggest(context.Background(), tt.detail)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().CreateMapping(gomock.Any(), "lider", "Supermercado").Return(nil)

	svc := matching.NewService(repo)

	require.NoError(t, svc.Learn(context.Background(), " lider ", "Supermercado"))
	assert.ErrorIs(t, svc.Learn(context.Background(), "", "Supermercado"), matching.ErrEmptyPattern)
}

func TestMemoryStore_LongestPatternWins(t *testing.T) {
	ctx := context.Background()
	svc := matching.NewService(matching.NewMemoryStore())

	require.NoError(t, svc.Learn(ctx, "uber", "Transporte"))
	require.NoError(t, svc.Learn(ctx, "uber eats", "Comida"))

	got, err := svc.Suggest(ctx, "UBER EATS *PEDIDO")
	require.NoError(t, err)
	assert.Equal(t, "Comida", got)

	got, err = svc.Suggest(ctx, "Uber viaje")
	require.NoError(t, err)
	assert.Equal(t, "Transporte", got)

	got, err = svc.Suggest(ctx, "Farmacia")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	svc := matching.NewService(matching.NewMemoryStore())

	n, err := svc.Seed(ctx, []ledger.Transaction{
		{Kind: ledger.KindExpense, Detail: "Lider", Category: "Supermercado"},
		{Kind: ledger.KindExpense, Detail: "Lider Express", Category: "Otro"},
		{Kind: ledger.KindExpense, Detail: "Copec", Category: "Auto", Voided: true},
		{Kind: ledger.KindTransfer, Detail: "Pago deuda"},
		{Kind: ledger.KindIncome, Detail: "Sueldo", Category: "Trabajo"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := svc.Suggest(ctx, "lider express")
	require.NoError(t, err)
	assert.Equal(t, "Supermercado", got)

	got, err = svc.Suggest(ctx, "Copec")
	require.NoError(t, err)
	assert.Empty(t, got)
}
