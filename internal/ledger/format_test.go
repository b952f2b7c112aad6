package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

func TestFormatAmount_ParsesBack(t *testing.T) {
	for _, amount := range []int64{0, 1, 12, 999, 1000, 45678, 100000, 1234567, 9876543210} {
		got, ok := ledger.ParseAmount(ledger.FormatAmount(amount))
		assert.True(t, ok)
		assert.Equal(t, amount, got)
	}
}

func TestFormatMoney(t *testing.T) {
	got := ledger.FormatMoney(decimal.RequireFromString("12.5"), "USD")
	assert.Contains(t, got, "12.50")
}

func TestKnownCurrency(t *testing.T) {
	assert.True(t, ledger.KnownCurrency("usd"))
	assert.True(t, ledger.KnownCurrency("CLP"))
	assert.False(t, ledger.KnownCurrency("XYZW"))
}
