// Package store keeps the ledger rows in Postgres, one jsonb document per
// row plus an ordered header table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

const schema = `
	CREATE TABLE IF NOT EXISTS ledger_headers (
		position INTEGER PRIMARY KEY,
		name     TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ledger_rows (
		id         BIGSERIAL PRIMARY KEY,
		data       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

var ErrRowNotFound = errors.New("row not found")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (ledger.Row, error) {
	var raw []byte

	if err := s.Scan(&raw); err != nil {
		return nil, err
	}

	row := ledger.Row{}
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decoding row: %w", err)
	}

	return row, nil
}

func (s *Store) Headers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM ledger_headers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying headers: %w", err)
	}
	defer rows.Close()

	var headers []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning header: %w", err)
		}

		headers = append(headers, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating headers: %w", err)
	}

	return headers, nil
}

func (s *Store) SetHeaders(ctx context.Context, headers []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_headers`); err != nil {
		return fmt.Errorf("clearing headers: %w", err)
	}

	for i, name := range headers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ledger_headers (position, name) VALUES ($1, $2)`, i, name,
		); err != nil {
			return fmt.Errorf("inserting header %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing headers: %w", err)
	}

	return nil
}

func (s *Store) ReadAll(ctx context.Context) ([]ledger.Row, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM ledger_rows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var out []ledger.Row

	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return out, nil
}

func (s *Store) Append(ctx context.Context, row ledger.Row) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encoding row: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `INSERT INTO ledger_rows (data) VALUES ($1)`, data); err != nil {
		return fmt.Errorf("appending row: %w", err)
	}

	return nil
}

// Update replaces the row at the given 0-based position in insertion order.
func (s *Store) Update(ctx context.Context, rowIndex int, row ledger.Row) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encoding row: %w", err)
	}

	query := `
		UPDATE ledger_rows
		SET data = $1, updated_at = NOW()
		WHERE id = (SELECT id FROM ledger_rows ORDER BY id OFFSET $2 LIMIT 1)
	`

	result, err := s.db.ExecContext(ctx, query, data, rowIndex)
	if err != nil {
		return fmt.Errorf("updating row %d: %w", rowIndex, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("updating row %d: %w", rowIndex, ErrRowNotFound)
	}

	return nil
}
