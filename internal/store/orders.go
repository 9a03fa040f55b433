package store

import (
	"context"

	"github.com/erazemk/dostava/internal/model"
)

var orders = table[model.Order]{
	name:       "orders",
	noun:       "order",
	key:        "order_id",
	columns:    []string{"order_status", "total_price", "updated_at"},
	fixed:      []string{"created_at"},
	filterable: []string{"order_status"},
	scan: func(s scanner) (model.Order, error) {
		var o model.Order
		var status string
		if err := s.Scan(&o.ID, &status, &o.TotalPrice, &o.UpdatedAt, &o.CreatedAt); err != nil {
			return o, err
		}
		o.OrderStatus = model.OrderStatus(status)
		o.CreatedAt = o.CreatedAt.UTC()
		o.UpdatedAt = o.UpdatedAt.UTC()
		return o, nil
	},
	values: func(o model.Order) []any {
		return []any{string(o.OrderStatus), o.TotalPrice, o.UpdatedAt.UTC()}
	},
	fixedValues: func(o model.Order) []any { return []any{o.CreatedAt.UTC()} },
	setID:       func(o *model.Order, id int64) { o.ID = id },
	id:          func(o model.Order) int64 { return o.ID },
}

// GetOrder returns an order by ID, or nil if there is none.
func GetOrder(ctx context.Context, u *UnitOfWork, id int64) (*model.Order, error) {
	return get(ctx, u, orders, id)
}

// ListOrders returns a page of orders ordered by ID, optionally filtered on
// order_status.
func ListOrders(ctx context.Context, u *UnitOfWork, filter Filter, offset, limit int) ([]model.Order, error) {
	return list(ctx, u, orders, filter, offset, limit)
}

// AddOrder inserts o and fills in its ID.
func AddOrder(ctx context.Context, u *UnitOfWork, o *model.Order) error {
	return add(ctx, u, orders, o)
}

// SaveOrder overwrites the stored order with the same ID.
func SaveOrder(ctx context.Context, u *UnitOfWork, o model.Order) error {
	return save(ctx, u, orders, o)
}

// DeleteOrder removes an order.
func DeleteOrder(ctx context.Context, u *UnitOfWork, id int64) error {
	return remove(ctx, u, orders, id)
}
