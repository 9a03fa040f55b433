package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour of the connected store.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DefaultURL is used when no connection string is configured.
const DefaultURL = "sqlite:///./sql_app.db"

// DB is a database handle that knows which dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the store named by databaseURL. sqlite:// URLs, bare paths
// and ":memory:" open an embedded SQLite file; postgres:// URLs connect to
// PostgreSQL.
func Open(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		databaseURL = DefaultURL
	}

	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return openPostgres(databaseURL)
	case strings.Contains(databaseURL, "://") && !strings.HasPrefix(databaseURL, "sqlite://"):
		return nil, fmt.Errorf("unsupported database url scheme: %q", databaseURL)
	default:
		return openSQLite(sqlitePath(databaseURL))
	}
}

// sqlitePath turns sqlite:///./file.db into ./file.db and sqlite:////abs.db
// into /abs.db. Anything without the scheme is already a path.
func sqlitePath(url string) string {
	if rest, ok := strings.CutPrefix(url, "sqlite:///"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(url, "sqlite://"); ok {
		return rest
	}
	return url
}

func openSQLite(path string) (*DB, error) {
	// Pragmas go in the DSN so every pooled connection gets them.
	pragmas := []string{
		"busy_timeout(5000)",
		"foreign_keys(1)",
		"synchronous(NORMAL)",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "journal_mode(WAL)")
	}
	dsn := path + "?_pragma=" + strings.Join(pragmas, "&_pragma=") + "&_time_format=sqlite"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: an in-memory database lives on a single connection, and
	// SQLite allows only one writer anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &DB{DB: db, Dialect: SQLite}, nil
}

func openPostgres(url string) (*DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &DB{DB: db, Dialect: Postgres}, nil
}
