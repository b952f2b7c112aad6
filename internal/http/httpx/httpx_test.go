package httpx_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/auth"
	"github.com/MrJamesThe3rd/duo/internal/http/httpx"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

func TestStatusOf(t *testing.T) {
	type testCase struct {
		name string
		err  error
		want int
	}

	tests := []testCase{
		{name: "NotFound", err: fmt.Errorf("edit: %w", record.ErrNotFound), want: http.StatusNotFound},
		{name: "Invariant", err: ledger.ValidationErrors{{Field: "detail", Reason: "too short"}}, want: http.StatusUnprocessableEntity},
		{name: "KindChange", err: record.ErrKindChange, want: http.StatusUnprocessableEntity},
		{name: "Malformed", err: &ledger.FieldError{Field: "date", Raw: "x"}, want: http.StatusBadRequest},
		{name: "SourceDown", err: fmt.Errorf("%w: reading rows: %w", ledger.ErrSourceUnavailable, errors.New("timeout")), want: http.StatusServiceUnavailable},
		{name: "Other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpx.StatusOf(tt.err))
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.Error(rec, errors.New("password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?person=Ana&kind=expense&from=2024-06-01&to=2024-06-30&include_voided=true", nil)

	f, err := httpx.Filter(req, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "Ana", f.Person)
	assert.Equal(t, ledger.KindExpense, f.Kind)
	assert.True(t, f.IncludeVoided)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *f.To)

	for _, query := range []string{"kind=loan", "from=01-06-2024", "include_voided=maybe"} {
		_, err := httpx.Filter(httptest.NewRequest(http.MethodGet, "/?"+query, nil), time.UTC)
		assert.ErrorIs(t, err, ledger.ErrMalformedField, query)
	}
}

func TestActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "Beto", httpx.Actor(req, "Beto"))

	req = req.WithContext(auth.WithActor(req.Context(), "Ana"))
	assert.Equal(t, "Ana", httpx.Actor(req, "Beto"))
}
