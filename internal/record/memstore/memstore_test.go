package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
	"github.com/MrJamesThe3rd/duo/internal/record/memstore"
)

func TestStore_RowsFollowHeaders(t *testing.T) {
	ctx := context.Background()
	s := memstore.New([]string{"id", "kind"})

	require.NoError(t, s.Append(ctx, ledger.Row{"id": "1", "kind": "income", "extra": "dropped"}))

	rows, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Row{{"id": "1", "kind": "income"}}, rows)

	require.NoError(t, s.Update(ctx, 0, ledger.Row{"id": "1", "kind": "expense"}))
	assert.Error(t, s.Update(ctx, 3, ledger.Row{}))

	rows, err = s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "expense", rows[0]["kind"])
}

func TestStore_ServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	svc := record.NewService(memstore.New([]string{"id", "note"}), record.Options{
		Participants: ledger.Participants{"A", "B"},
		BaseCurrency: "CLP",
		Now:          func() time.Time { return day.Add(20 * time.Hour) },
	})

	created, err := svc.Create(ctx, record.CreateParams{
		Kind:          ledger.KindExpense,
		Detail:        "Arriendo",
		Category:      "Hogar",
		Date:          day,
		Person:        "A",
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "Transferencia",
		IsShared:      true,
		Actor:         "A",
	})
	require.NoError(t, err)

	snap, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Contains(t, snap.Headers, ledger.ColVoided)
	assert.Equal(t, "id", snap.Headers[0])
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, created.ID, snap.Transactions[0].ID)

	settlement := ledger.Settle(snap.Active(), svc.Participants())
	assert.Equal(t, []ledger.Transfer{{From: "B", To: "A", Amount: 50}}, settlement.Transfers)

	_, err = svc.Void(ctx, created.ID, "B")
	require.NoError(t, err)

	snap, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Active())
	assert.Empty(t, ledger.Settle(snap.Active(), svc.Participants()).Transfers)
}
