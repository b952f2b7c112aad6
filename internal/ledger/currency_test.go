package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

func TestCurrencyNormalizer_Convert(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	type args struct {
		amount   string
		currency string
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *ledger.MockRateSource)
		wantBase   int64
		wantOrigin ledger.RateOrigin
	}

	tests := []testCase{
		{
			name: "BaseCurrencyIsIdentity",
			args: args{amount: "1500", currency: "CLP"},
			setupMock: func(m *ledger.MockRateSource) {
				m.EXPECT().Lookup(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantBase:   1500,
			wantOrigin: ledger.RateIdentity,
		},
		{
			name:       "EmptyCurrencyIsBase",
			args:       args{amount: "99", currency: ""},
			wantBase:   99,
			wantOrigin: ledger.RateIdentity,
		},
		{
			name: "ExactDate",
			args: args{amount: "12.5", currency: "usd"},
			setupMock: func(m *ledger.MockRateSource) {
				m.EXPECT().
					Lookup(gomock.Any(), "USD", date).
					Return([]ledger.RatePoint{
						{Date: date.AddDate(0, 0, 1), Rate: decimal.NewFromInt(910)},
						{Date: date, Rate: decimal.NewFromInt(900)},
					}, nil)
			},
			wantBase:   11250,
			wantOrigin: ledger.RateExact,
		},
		{
			name: "MostRecentWhenDateMissing",
			args: args{amount: "10", currency: "USD"},
			setupMock: func(m *ledger.MockRateSource) {
				m.EXPECT().
					Lookup(gomock.Any(), "USD", date).
					Return([]ledger.RatePoint{
						{Date: date.AddDate(0, 0, -2), Rate: decimal.NewFromInt(890)},
						{Date: date.AddDate(0, 0, -1), Rate: decimal.RequireFromString("895.5")},
					}, nil)
			},
			wantBase:   8955,
			wantOrigin: ledger.RateLatest,
		},
		{
			name: "LookupFailsUsesFallback",
			args: args{amount: "10", currency: "USD"},
			setupMock: func(m *ledger.MockRateSource) {
				m.EXPECT().
					Lookup(gomock.Any(), "USD", date).
					Return(nil, errors.New("connection refused"))
			},
			wantBase:   9500,
			wantOrigin: ledger.RateFallback,
		},
		{
			name: "EmptySeriesUsesFallback",
			args: args{amount: "2", currency: "EUR"},
			setupMock: func(m *ledger.MockRateSource) {
				m.EXPECT().Lookup(gomock.Any(), "EUR", date).Return([]ledger.RatePoint{}, nil)
			},
			wantBase:   1900,
			wantOrigin: ledger.RateFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := ledger.NewMockRateSource(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(source)
			}

			n := ledger.CurrencyNormalizer{
				Base:     "CLP",
				Source:   source,
				Fallback: decimal.NewFromInt(950),
			}

			got := n.Convert(context.Background(), decimal.RequireFromString(tt.args.amount), tt.args.currency, date)

			assert.Equal(t, tt.wantBase, got.AmountBase)
			assert.Equal(t, tt.wantOrigin, got.Origin)
			assert.True(t, got.AmountOriginal.Equal(decimal.RequireFromString(tt.args.amount)))
		})
	}
}

func TestCurrencyNormalizer_NoSource(t *testing.T) {
	n := ledger.CurrencyNormalizer{Base: "CLP", Fallback: decimal.NewFromInt(1000)}

	got := n.Convert(context.Background(), decimal.NewFromInt(3), "USD", time.Now())
	assert.Equal(t, int64(3000), got.AmountBase)
	assert.Equal(t, ledger.RateFallback, got.Origin)
	assert.Equal(t, "USD", got.Currency)
}
