package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/auth"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

var people = ledger.Participants{"Ana", "Beto"}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewIssuer("s3cret", "duo", time.Hour, people)

	token, err := issuer.Issue("Beto")
	require.NoError(t, err)

	person, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "Beto", person)
}

func TestIssuer_Rejects(t *testing.T) {
	issuer := auth.NewIssuer("s3cret", "duo", time.Hour, people)

	_, err := issuer.Issue("Carla")
	assert.ErrorIs(t, err, auth.ErrUnknownParticipant)

	other, err := auth.NewIssuer("other", "duo", time.Hour, people).Issue("Ana")
	require.NoError(t, err)

	_, err = issuer.Verify(other)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, err := auth.NewIssuer("s3cret", "duo", -time.Minute, people).Issue("Ana")
	require.NoError(t, err)

	_, err = issuer.Verify(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	wrongIssuer, err := auth.NewIssuer("s3cret", "someone-else", time.Hour, people).Issue("Ana")
	require.NoError(t, err)

	_, err = issuer.Verify(wrongIssuer)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestIssuer_Middleware(t *testing.T) {
	issuer := auth.NewIssuer("s3cret", "duo", time.Hour, people)
	token, err := issuer.Issue("Ana")
	require.NoError(t, err)

	var seen string

	handler := issuer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.Actor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		name   string
		header string
		want   int
	}

	tests := []testCase{
		{name: "Valid", header: "Bearer " + token, want: http.StatusNoContent},
		{name: "Missing", header: "", want: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Token " + token, want: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusNoContent {
				assert.Equal(t, "Ana", seen)
			} else {
				assert.Empty(t, seen)
			}
		})
	}
}
