package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/rates"
)

const dolarResponse = `{
	"version": "1.7.0",
	"codigo": "dolar",
	"serie": [
		{"fecha": "2024-06-10T04:00:00.000Z", "valor": 940.25},
		{"fecha": "2024-06-07T04:00:00.000Z", "valor": 921.5},
		{"fecha": "bad", "valor": 1},
		{"fecha": "2024-06-06T04:00:00.000Z"}
	]
}`

func TestClient_Lookup(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dolarResponse))
	}))
	defer srv.Close()

	client := rates.New(srv.URL+"/api/", nil, time.Second)

	points, err := client.Lookup(context.Background(), "usd", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "/api/dolar/10-06-2024", gotPath)
	require.Len(t, points, 2)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.True(t, decimal.RequireFromString("940.25").Equal(points[0].Rate))
}

func TestClient_LookupFailures(t *testing.T) {
	type testCase struct {
		name    string
		handler http.HandlerFunc
	}

	tests := []testCase{
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "NotJSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
		{
			name: "NoSeries",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"codigo": "dolar"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := rates.New(srv.URL, nil, time.Second).Lookup(context.Background(), "USD", time.Now())
			assert.ErrorIs(t, err, ledger.ErrSourceUnavailable)
		})
	}
}

func TestClient_FeedsCurrencyNormalizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(dolarResponse))
	}))
	defer srv.Close()

	n := ledger.CurrencyNormalizer{
		Base:     "CLP",
		Source:   rates.New(srv.URL, nil, time.Second),
		Fallback: decimal.NewFromInt(1),
	}

	got := n.Convert(context.Background(), decimal.NewFromInt(20), "USD", time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, ledger.RateLatest, got.Origin)
	assert.Equal(t, int64(18805), got.AmountBase)
}
