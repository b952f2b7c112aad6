package record_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

func TestFilter_Match(t *testing.T) {
	june := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	before := from.AddDate(0, 0, -1)

	expense := ledger.Transaction{Kind: ledger.KindExpense, Person: "Ana", PaymentMethod: "Efectivo", Date: &june}
	transfer := ledger.Transaction{Kind: ledger.KindTransfer, OriginPerson: "Beto", DestPerson: "Ana", Date: &june}
	voided := ledger.Transaction{Kind: ledger.KindIncome, Person: "Ana", Voided: true, Date: &june}
	undated := ledger.Transaction{Kind: ledger.KindIncome, Person: "Ana"}
	old := ledger.Transaction{Kind: ledger.KindIncome, Person: "Ana", Date: &before}

	type testCase struct {
		name   string
		filter record.Filter
		tx     ledger.Transaction
		want   bool
	}

	tests := []testCase{
		{name: "EmptyMatchesActive", tx: expense, want: true},
		{name: "EmptyExcludesVoided", tx: voided, want: false},
		{name: "IncludeVoided", filter: record.Filter{IncludeVoided: true}, tx: voided, want: true},
		{name: "PersonMatchesDestination", filter: record.Filter{Person: "Ana"}, tx: transfer, want: true},
		{name: "PersonMatchesOrigin", filter: record.Filter{Person: "Beto"}, tx: transfer, want: true},
		{name: "PersonMismatch", filter: record.Filter{Person: "Beto"}, tx: expense, want: false},
		{name: "Kind", filter: record.Filter{Kind: ledger.KindTransfer}, tx: expense, want: false},
		{name: "PaymentMethodIgnoresCase", filter: record.Filter{PaymentMethod: "efectivo"}, tx: expense, want: true},
		{name: "RangeInclusive", filter: record.Filter{From: &from, To: &to}, tx: expense, want: true},
		{name: "BeforeRange", filter: record.Filter{From: &from}, tx: old, want: false},
		{name: "UndatedOutsideRange", filter: record.Filter{To: &to}, tx: undated, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.tx))
		})
	}
}

func TestHistory(t *testing.T) {
	txs := []ledger.Transaction{
		{ID: "a", CreatedAt: "2024-06-01 10:00:00"},
		{ID: "b", CreatedAt: "2024-06-02 10:00:00"},
		{ID: "c", CreatedAt: "2024-05-01 10:00:00", ModifiedAt: "2024-06-03 08:00:00"},
	}

	got := record.History(txs)

	ids := make([]string, 0, len(got))
	for _, tx := range got {
		ids = append(ids, tx.ID)
	}

	assert.Equal(t, []string{"c", "b", "a"}, ids)
	assert.Equal(t, "a", txs[0].ID)
}
