// Package auth issues and verifies the bearer tokens that identify which
// participant is acting on the ledger.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

var (
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrInvalidToken       = errors.New("invalid token")
)

type ctxKey struct{}

type Issuer struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	participants ledger.Participants
	now          func() time.Time
}

func NewIssuer(secret, issuer string, ttl time.Duration, participants ledger.Participants) *Issuer {
	return &Issuer{
		secret:       []byte(secret),
		issuer:       issuer,
		ttl:          ttl,
		participants: participants,
		now:          time.Now,
	}
}

// Issue signs a token whose subject is person.
func (i *Issuer) Issue(person string) (string, error) {
	if !i.participants.Contains(person) {
		return "", fmt.Errorf("%w: %s", ErrUnknownParticipant, person)
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   person,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify returns the participant a token was issued to.
func (i *Issuer) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !i.participants.Contains(claims.Subject) {
		return "", fmt.Errorf("%w: %w: %s", ErrInvalidToken, ErrUnknownParticipant, claims.Subject)
	}

	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// acting participant in the request context.
func (i *Issuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		person, err := i.Verify(strings.TrimSpace(token))
		if err != nil {
			slog.Debug("rejected token", "error", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), person)))
	})
}

func WithActor(ctx context.Context, person string) context.Context {
	return context.WithValue(ctx, ctxKey{}, person)
}

// Actor returns the participant authenticated for the request, if any.
func Actor(ctx context.Context) (string, bool) {
	person, ok := ctx.Value(ctxKey{}).(string)
	return person, ok && person != ""
}
