// Package rates fetches daily exchange rates from a JSON indicator service
// laid out like mindicador.cl: GET {base}/{indicator}/{dd-mm-yyyy} returns
// {"serie": [{"fecha": "...", "valor": 940.25}, ...]}.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

const (
	seriesPath = "$.serie[*]"
	datePath   = "$.fecha"
	valuePath  = "$.valor"
)

// DefaultIndicators maps ISO currency codes to the indicator names the
// service expects.
var DefaultIndicators = map[string]string{
	"USD": "dolar",
	"EUR": "euro",
	"UF":  "uf",
	"CLF": "uf",
	"UTM": "utm",
}

type Client struct {
	baseURL    string
	indicators map[string]string
	http       *http.Client
}

func New(baseURL string, indicators map[string]string, timeout time.Duration) *Client {
	if len(indicators) == 0 {
		indicators = DefaultIndicators
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		indicators: indicators,
		http:       &http.Client{Timeout: timeout},
	}
}

// Lookup returns the series published for currency around date. Failures of
// any kind are reported as ledger.ErrSourceUnavailable.
func (c *Client) Lookup(ctx context.Context, currency string, date time.Time) ([]ledger.RatePoint, error) {
	indicator, ok := c.indicators[strings.ToUpper(currency)]
	if !ok {
		indicator = strings.ToLower(currency)
	}

	addr := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(indicator), date.Format("02-01-2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ledger.ErrSourceUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ledger.ErrSourceUnavailable, indicator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: %s", ledger.ErrSourceUnavailable, indicator, resp.Status)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ledger.ErrSourceUnavailable, indicator, err)
	}

	points, err := ParseSeries(jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ledger.ErrSourceUnavailable, indicator, err)
	}

	return points, nil
}

// ParseSeries extracts the rate points of a decoded response. Entries
// missing a date or a value are skipped.
func ParseSeries(jobj any) ([]ledger.RatePoint, error) {
	jval, err := jsonpath.Get(seriesPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", seriesPath, err)
	}

	entries, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("reading %s: not a list", seriesPath)
	}

	points := make([]ledger.RatePoint, 0, len(entries))

	for _, entry := range entries {
		date, ok := dateOf(entry)
		if !ok {
			continue
		}

		rate, ok := valueOf(entry)
		if !ok {
			continue
		}

		points = append(points, ledger.RatePoint{Date: date, Rate: rate})
	}

	return points, nil
}

func dateOf(entry any) (time.Time, bool) {
	s, ok := first(jsonpath.Get(datePath, entry)).(string)
	if !ok {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if t, err = time.Parse(time.DateOnly, s); err != nil {
			return time.Time{}, false
		}
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func valueOf(entry any) (decimal.Decimal, bool) {
	switch v := first(jsonpath.Get(valuePath, entry)).(type) {
	case float64:
		return decimal.NewFromFloat(v), v > 0
	case string:
		return ledger.ParseDecimal(v)
	default:
		return decimal.Zero, false
	}
}

// first unwraps single-element results, since jsonpath may answer either a
// value or a list holding it.
func first(jval any, err error) any {
	if err != nil {
		return nil
	}

	if list, ok := jval.([]any); ok {
		if len(list) == 0 {
			return nil
		}

		return list[0]
	}

	return jval
}
