package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RatePoint is the value of one unit of a foreign currency in the base
// currency on a given date.
type RatePoint struct {
	Date time.Time
	Rate decimal.Decimal
}

// RateSource looks up exchange rates around a date.
//
//go:generate mockgen -source=currency.go -destination=rate_source_mock.go -package=ledger
type RateSource interface {
	Lookup(ctx context.Context, currency string, date time.Time) ([]RatePoint, error)
}

// RateOrigin tells which path a conversion took.
type RateOrigin string

const (
	RateIdentity RateOrigin = "identity"
	RateExact    RateOrigin = "exact"
	RateLatest   RateOrigin = "latest"
	RateFallback RateOrigin = "fallback"
)

// Conversion is the result of normalizing an entered amount.
type Conversion struct {
	AmountBase     int64
	AmountOriginal decimal.Decimal
	Currency       string
	Rate           decimal.Decimal
	Origin         RateOrigin
}

// CurrencyNormalizer converts entered amounts to the base currency.
type CurrencyNormalizer struct {
	Base     string
	Source   RateSource
	Fallback decimal.Decimal
}

// Convert never fails: when the rate source cannot answer, the configured
// fallback rate is used.
func (n CurrencyNormalizer) Convert(ctx context.Context, amount decimal.Decimal, currency string, date time.Time) Conversion {
	amount = amount.Abs()
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if currency == "" || currency == n.Base {
		return Conversion{
			AmountBase:     amount.Round(0).IntPart(),
			AmountOriginal: amount,
			Currency:       n.Base,
			Rate:           decimal.NewFromInt(1),
			Origin:         RateIdentity,
		}
	}

	rate, origin := n.rate(ctx, currency, date)

	return Conversion{
		AmountBase:     amount.Mul(rate).Round(0).IntPart(),
		AmountOriginal: amount,
		Currency:       currency,
		Rate:           rate,
		Origin:         origin,
	}
}

func (n CurrencyNormalizer) rate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, RateOrigin) {
	if n.Source == nil {
		return n.Fallback, RateFallback
	}

	series, err := n.Source.Lookup(ctx, currency, date)
	if err == nil && len(series) == 0 {
		err = fmt.Errorf("empty rate series for %s: %w", currency, ErrSourceUnavailable)
	}

	if err != nil {
		slog.Warn("rate lookup failed, using fallback rate",
			"currency", currency, "date", date.Format(time.DateOnly), "fallback", n.Fallback.String(), "error", err)

		return n.Fallback, RateFallback
	}

	return PickRate(series, date)
}

// PickRate selects the entry for date when present, otherwise the most
// recent entry of the series. series must not be empty.
func PickRate(series []RatePoint, date time.Time) (decimal.Decimal, RateOrigin) {
	y, m, d := date.Date()

	latest := series[0]
	for _, p := range series {
		py, pm, pd := p.Date.Date()
		if py == y && pm == m && pd == d {
			return p.Rate, RateExact
		}

		if p.Date.After(latest.Date) {
			latest = p
		}
	}

	return latest.Rate, RateLatest
}
