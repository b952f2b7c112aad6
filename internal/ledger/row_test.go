package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

func TestMergeHeaders(t *testing.T) {
	type args struct {
		existing []string
		expected []string
	}

	type testCase struct {
		name      string
		args      args
		wantMerge []string
		wantAdded []string
	}

	tests := []testCase{
		{
			name:      "EmptySheet",
			args:      args{existing: nil, expected: []string{"id", "kind", "date"}},
			wantMerge: []string{"id", "kind", "date"},
			wantAdded: []string{"id", "kind", "date"},
		},
		{
			name:      "AppendsMissingKeepsOrder",
			args:      args{existing: []string{"date", "extra", "id"}, expected: []string{"id", "kind", "date", "voided"}},
			wantMerge: []string{"date", "extra", "id", "kind", "voided"},
			wantAdded: []string{"kind", "voided"},
		},
		{
			name:      "AlreadyComplete",
			args:      args{existing: []string{"kind", "id"}, expected: []string{"id", "kind"}},
			wantMerge: []string{"kind", "id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, added := ledger.MergeHeaders(tt.args.existing, tt.args.expected)
			assert.Equal(t, tt.wantMerge, merged)
			assert.Equal(t, tt.wantAdded, added)

			again, addedAgain := ledger.MergeHeaders(merged, tt.args.expected)
			assert.Equal(t, merged, again)
			assert.Empty(t, addedAgain)
		})
	}
}

func TestToRow(t *testing.T) {
	date := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	row := ledger.ToRow(ledger.Transaction{
		ID:             "abc",
		Kind:           ledger.KindExpense,
		Date:           &date,
		Person:         "A",
		AmountBase:     9500,
		AmountOriginal: decimal.RequireFromString("10.5"),
		Currency:       "USD",
		IsShared:       true,
		ShareA:         60,
		ShareB:         40,
	})

	assert.Equal(t, "abc", row[ledger.ColID])
	assert.Equal(t, "expense", row[ledger.ColKind])
	assert.Equal(t, "2024-02-29", row[ledger.ColDate])
	assert.Equal(t, "9500", row[ledger.ColAmountBase])
	assert.Equal(t, "10.5", row[ledger.ColAmountOriginal])
	assert.Equal(t, "TRUE", row[ledger.ColIsShared])
	assert.Equal(t, "60", row[ledger.ColShareA])
	assert.Equal(t, "40", row[ledger.ColShareB])
	assert.Equal(t, "FALSE", row[ledger.ColVoided])

	for _, col := range ledger.Columns {
		assert.Contains(t, row, col)
	}
}

func TestRowValuesRoundTrip(t *testing.T) {
	headers := []string{"id", "", "kind", "detail"}
	row := ledger.RowFromValues(headers, []string{"1", "skip", "income"})

	assert.Equal(t, ledger.Row{"id": "1", "kind": "income", "detail": ""}, row)
	assert.Equal(t, []string{"1", "", "income", ""}, row.Values(headers))
}
