package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erazemk/dostava/internal/db"
)

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("record not found")

// UnitOfWork is one transaction bound to one logical request. Every read and
// write of that request goes through it; Commit makes the writes durable and
// Release discards them if Commit was never reached.
type UnitOfWork struct {
	tx        *sql.Tx
	dialect   db.Dialect
	committed bool
}

// Begin opens a unit of work. Callers must defer Release.
func Begin(ctx context.Context, database *db.DB) (*UnitOfWork, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &UnitOfWork{tx: tx, dialect: database.Dialect}, nil
}

// Commit makes every write of the unit durable.
func (u *UnitOfWork) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	u.committed = true
	return nil
}

// Release rolls back unless the unit was committed. Safe to call more than once.
func (u *UnitOfWork) Release() error {
	if u.committed {
		return nil
	}
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

func (u *UnitOfWork) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return u.tx.ExecContext(ctx, u.rebind(query), args...)
}

func (u *UnitOfWork) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return u.tx.QueryContext(ctx, u.rebind(query), args...)
}

func (u *UnitOfWork) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return u.tx.QueryRowContext(ctx, u.rebind(query), args...)
}

// rebind rewrites ? placeholders to $1, $2, ... for PostgreSQL.
func (u *UnitOfWork) rebind(query string) string {
	if u.dialect != db.Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
