package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Baseline schema per dialect. Tables are created on startup if absent.
//
//go:embed migrations
var migrations embed.FS

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(ctx context.Context, db *DB) error {
	var dialect goose.Dialect
	switch db.Dialect {
	case SQLite:
		dialect = goose.DialectSQLite3
	case Postgres:
		dialect = goose.DialectPostgres
	default:
		return fmt.Errorf("creating schema: unknown dialect %q", db.Dialect)
	}

	fsys, err := fs.Sub(migrations, "migrations/"+string(db.Dialect))
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
