package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/duo/internal/auth"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

// Actor returns the authenticated participant, or claimed when the API runs
// without authentication.
func Actor(r *http.Request, claimed string) string {
	if person, ok := auth.Actor(r.Context()); ok {
		return person
	}

	return claimed
}

// ParseDate reads a YYYY-MM-DD value as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %w", ledger.ErrMalformedField, s, err)
	}

	return t, nil
}

// Filter builds a record filter from the query string.
func Filter(r *http.Request, loc *time.Location) (record.Filter, error) {
	q := r.URL.Query()

	f := record.Filter{
		Person:        q.Get("person"),
		Kind:          ledger.Kind(q.Get("kind")),
		PaymentMethod: q.Get("payment_method"),
	}

	if f.Kind != "" && !f.Kind.Valid() {
		return f, fmt.Errorf("%w: kind %q", ledger.ErrMalformedField, f.Kind)
	}

	if s := q.Get("from"); s != "" {
		t, err := ParseDate(s, loc)
		if err != nil {
			return f, err
		}

		f.From = &t
	}

	if s := q.Get("to"); s != "" {
		t, err := ParseDate(s, loc)
		if err != nil {
			return f, err
		}

		f.To = &t
	}

	if s := q.Get("include_voided"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return f, fmt.Errorf("%w: include_voided %q", ledger.ErrMalformedField, s)
		}

		f.IncludeVoided = v
	}

	return f, nil
}
