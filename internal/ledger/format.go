package ledger

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.MustParse("es-CL"))

// FormatAmount renders a base-currency amount the way it is shown to users,
// with a currency sign and grouped thousands. ParseAmount reads it back.
func FormatAmount(amount int64) string {
	return displayPrinter.Sprintf("$%d", amount)
}

// FormatMoney renders an amount in its own currency.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := *money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()

	return cur.Formatter().Format(minor)
}

// KnownCurrency reports whether code is an ISO 4217 currency.
func KnownCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}
