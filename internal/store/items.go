package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/dostava/internal/model"
)

var items = table[model.Item]{
	name:    "items",
	noun:    "item",
	key:     "id",
	columns: []string{"name", "description", "price"},
	scan: func(s scanner) (model.Item, error) {
		var item model.Item
		var description sql.NullString
		if err := s.Scan(&item.ID, &item.Name, &description, &item.Price); err != nil {
			return item, err
		}
		item.Description = stringPtr(description)
		return item, nil
	},
	values: func(i model.Item) []any {
		return []any{i.Name, nullString(i.Description), i.Price}
	},
	setID: func(i *model.Item, id int64) { i.ID = id },
	id:    func(i model.Item) int64 { return i.ID },
}

// GetItem returns an item by ID, or nil if there is none.
func GetItem(ctx context.Context, u *UnitOfWork, id int64) (*model.Item, error) {
	return get(ctx, u, items, id)
}

// ListItems returns a page of items ordered by ID.
func ListItems(ctx context.Context, u *UnitOfWork, offset, limit int) ([]model.Item, error) {
	return list(ctx, u, items, nil, offset, limit)
}

// AddItem inserts item and fills in its ID.
func AddItem(ctx context.Context, u *UnitOfWork, item *model.Item) error {
	return add(ctx, u, items, item)
}

// SaveItem overwrites the stored item with the same ID.
func SaveItem(ctx context.Context, u *UnitOfWork, item model.Item) error {
	return save(ctx, u, items, item)
}

// DeleteItem removes an item. Returns ErrNotFound if it doesn't exist.
func DeleteItem(ctx context.Context, u *UnitOfWork, id int64) error {
	return remove(ctx, u, items, id)
}
