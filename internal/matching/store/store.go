package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const schema = `
	CREATE TABLE IF NOT EXISTS category_mappings (
		id         BIGSERIAL PRIMARY KEY,
		pattern    TEXT NOT NULL,
		category   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

func (s *Store) FindMatch(ctx context.Context, detail string) (string, error) {
	query := `
		SELECT category
		FROM category_mappings
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, detail).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, pattern, category string) error {
	query := `
		INSERT INTO category_mappings (pattern, category, created_at)
		VALUES ($1, $2, NOW())
	`

	if _, err := s.db.ExecContext(ctx, query, pattern, category); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
