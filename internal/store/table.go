package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Filter holds exact-match conditions keyed by column name. Conditions are
// combined with AND.
type Filter map[string]any

type scanner interface {
	Scan(dest ...any) error
}

// table maps a record type onto a SQL table. The select list is always
// key, columns..., fixed...; scan must read in that order.
type table[T any] struct {
	name string
	// what the record is called in error messages
	noun string
	key  string
	// written on insert and on every save
	columns []string
	// written on insert only
	fixed      []string
	filterable []string

	scan        func(scanner) (T, error)
	values      func(T) []any
	fixedValues func(T) []any
	setID       func(*T, int64)
	id          func(T) int64
}

func (t table[T]) selectList() string {
	cols := append([]string{t.key}, t.columns...)
	cols = append(cols, t.fixed...)
	return strings.Join(cols, ", ")
}

func get[T any](ctx context.Context, u *UnitOfWork, t table[T], id int64) (*T, error) {
	row := u.queryRow(ctx,
		`SELECT `+t.selectList()+` FROM `+t.name+` WHERE `+t.key+` = ?`, id,
	)
	rec, err := t.scan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", t.noun, err)
	}
	return &rec, nil
}

func list[T any](ctx context.Context, u *UnitOfWork, t table[T], filter Filter, offset, limit int) ([]T, error) {
	query := `SELECT ` + t.selectList() + ` FROM ` + t.name + ` WHERE 1=1`
	var args []any

	// Sorted so the generated SQL is stable.
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !slices.Contains(t.filterable, k) {
			return nil, fmt.Errorf("listing %ss: cannot filter on %q", t.noun, k)
		}
		query += ` AND ` + k + ` = ?`
		args = append(args, filter[k])
	}

	query += ` ORDER BY ` + t.key + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := u.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", t.noun, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.noun, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// add inserts rec and sets its identity from the store.
func add[T any](ctx context.Context, u *UnitOfWork, t table[T], rec *T) error {
	cols := append(slices.Clone(t.columns), t.fixed...)
	args := t.values(*rec)
	if t.fixedValues != nil {
		args = append(args, t.fixedValues(*rec)...)
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	var id int64
	err := u.queryRow(ctx,
		`INSERT INTO `+t.name+` (`+strings.Join(cols, ", ")+`) VALUES (`+marks+`) RETURNING `+t.key,
		args...,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("creating %s: %w", t.noun, err)
	}
	t.setID(rec, id)
	return nil
}

// save writes every mutable column of rec. Identity and fixed columns are
// never touched.
func save[T any](ctx context.Context, u *UnitOfWork, t table[T], rec T) error {
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = c + ` = ?`
	}
	args := append(t.values(rec), t.id(rec))

	res, err := u.exec(ctx,
		`UPDATE `+t.name+` SET `+strings.Join(sets, ", ")+` WHERE `+t.key+` = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("updating %s: %w", t.noun, err)
	}
	return expectRow(res, t.noun, t.id(rec))
}

func remove[T any](ctx context.Context, u *UnitOfWork, t table[T], id int64) error {
	res, err := u.exec(ctx, `DELETE FROM `+t.name+` WHERE `+t.key+` = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", t.noun, err)
	}
	return expectRow(res, t.noun, id)
}

func expectRow(res sql.Result, noun string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", noun, id, ErrNotFound)
	}
	return nil
}

func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.UTC()
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
