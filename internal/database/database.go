package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Migrator creates the tables a store needs.
type Migrator interface {
	EnsureSchema(ctx context.Context) error
}

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema runs every migrator in order and stops at the first failure.
func EnsureSchema(ctx context.Context, migrators ...Migrator) error {
	for _, m := range migrators {
		if err := m.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	return nil
}
