// Package matching suggests a category for a record from its detail text,
// based on patterns learned from earlier records.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

var ErrEmptyPattern = errors.New("pattern and category are required")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, detail string) (string, error)
	CreateMapping(ctx context.Context, pattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest learned pattern contained in
// detail, or an empty string when nothing matches.
func (s *Service) Suggest(ctx context.Context, detail string) (string, error) {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, detail)
}

// Learn remembers that details containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, pattern, category string) error {
	pattern, category = strings.TrimSpace(pattern), strings.TrimSpace(category)
	if pattern == "" || category == "" {
		return ErrEmptyPattern
	}

	return s.repo.CreateMapping(ctx, pattern, category)
}

// Seed learns the category of every active expense and income whose detail
// has no suggestion yet. It returns the number of mappings created.
func (s *Service) Seed(ctx context.Context, txs []ledger.Transaction) (int, error) {
	var n int

	for _, t := range ledger.Active(txs) {
		if t.Kind == ledger.KindTransfer || t.Detail == "" || t.Category == "" {
			continue
		}

		existing, err := s.Suggest(ctx, t.Detail)
		if err != nil {
			return n, fmt.Errorf("suggesting for %q: %w", t.Detail, err)
		}

		if existing != "" {
			continue
		}

		if err := s.Learn(ctx, t.Detail, t.Category); err != nil {
			return n, fmt.Errorf("learning %q: %w", t.Detail, err)
		}

		n++
	}

	return n, nil
}
