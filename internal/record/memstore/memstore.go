// Package memstore keeps the ledger rows in process memory.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

type Store struct {
	mu      sync.RWMutex
	headers []string
	rows    []ledger.Row
}

func New(headers []string, rows ...ledger.Row) *Store {
	s := &Store{headers: slices.Clone(headers)}
	for _, r := range rows {
		s.rows = append(s.rows, maps.Clone(r))
	}

	return s
}

func (s *Store) Headers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.headers), nil
}

func (s *Store) SetHeaders(_ context.Context, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.headers = slices.Clone(headers)

	return nil
}

func (s *Store) ReadAll(_ context.Context) ([]ledger.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ledger.Row, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, s.project(r))
	}

	return out, nil
}

func (s *Store) Append(_ context.Context, row ledger.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, s.project(row))

	return nil
}

func (s *Store) Update(_ context.Context, rowIndex int, row ledger.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rowIndex < 0 || rowIndex >= len(s.rows) {
		return fmt.Errorf("row %d out of range (%d rows)", rowIndex, len(s.rows))
	}

	s.rows[rowIndex] = s.project(row)

	return nil
}

// project keeps only the header columns, the way a sheet stores a row.
func (s *Store) project(row ledger.Row) ledger.Row {
	return ledger.RowFromValues(s.headers, row.Values(s.headers))
}
