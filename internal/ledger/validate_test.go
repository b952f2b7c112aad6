package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

func TestValidate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	expense := func(mod func(tx *ledger.Transaction)) ledger.Transaction {
		tx := ledger.Transaction{
			ID:            "id-1",
			Kind:          ledger.KindExpense,
			Detail:        "Groceries",
			Category:      "Food",
			Date:          &today,
			Person:        "A",
			AmountBase:    1000,
			PaymentMethod: "Efectivo",
		}
		if mod != nil {
			mod(&tx)
		}

		return tx
	}

	transfer := func(mod func(tx *ledger.Transaction)) ledger.Transaction {
		tx := ledger.Transaction{
			ID:           "id-2",
			Kind:         ledger.KindTransfer,
			Detail:       "Pay back",
			Date:         &today,
			OriginPerson: "A",
			DestPerson:   "B",
			AmountBase:   500,
		}
		if mod != nil {
			mod(&tx)
		}

		return tx
	}

	type testCase struct {
		name       string
		tx         ledger.Transaction
		wantFields []string
	}

	tests := []testCase{
		{name: "ValidExpense", tx: expense(nil)},
		{name: "ValidTransfer", tx: transfer(nil)},
		{
			name: "ValidSharedExpense",
			tx:   expense(func(tx *ledger.Transaction) { tx.IsShared, tx.ShareA, tx.ShareB = true, 60, 40 }),
		},
		{
			name:       "TransferToSelf",
			tx:         transfer(func(tx *ledger.Transaction) { tx.DestPerson = "A" }),
			wantFields: []string{ledger.ColDestPerson},
		},
		{
			name:       "TransferDetailTooShort",
			tx:         transfer(func(tx *ledger.Transaction) { tx.Detail = "Pay" }),
			wantFields: []string{ledger.ColDetail},
		},
		{
			name:       "ZeroAmount",
			tx:         expense(func(tx *ledger.Transaction) { tx.AmountBase = 0 }),
			wantFields: []string{ledger.ColAmountBase},
		},
		{
			name:       "FutureDate",
			tx:         expense(func(tx *ledger.Transaction) { tx.Date = &tomorrow }),
			wantFields: []string{ledger.ColDate},
		},
		{
			name: "MissingExpenseFields",
			tx: expense(func(tx *ledger.Transaction) {
				tx.Category = ""
				tx.PaymentMethod = ""
				tx.Person = "C"
			}),
			wantFields: []string{ledger.ColPerson, ledger.ColCategory, ledger.ColPaymentMethod},
		},
		{
			name:       "SharedIncome",
			tx:         expense(func(tx *ledger.Transaction) { tx.Kind, tx.IsShared, tx.ShareA, tx.ShareB = ledger.KindIncome, true, 50, 50 }),
			wantFields: []string{ledger.ColIsShared},
		},
		{
			name:       "SharesNotResolved",
			tx:         expense(func(tx *ledger.Transaction) { tx.IsShared, tx.ShareA, tx.ShareB = true, 3, 2 }),
			wantFields: []string{ledger.ColShareA},
		},
		{
			name:       "UnknownKind",
			tx:         expense(func(tx *ledger.Transaction) { tx.Kind = "loan" }),
			wantFields: []string{ledger.ColKind},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ledger.Validate(tt.tx, ledger.Participants{"A", "B"}, now)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ledger.ErrInvariantViolation)

			var verrs ledger.ValidationErrors
			require.True(t, errors.As(err, &verrs))

			fields := make([]string, 0, len(verrs))
			for _, v := range verrs {
				fields = append(fields, v.Field)
			}

			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
