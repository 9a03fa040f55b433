package service

import (
	"context"

	"github.com/erazemk/dostava/internal/events"
	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/store"
)

// OrderFilter narrows an order listing. An empty status matches everything.
type OrderFilter struct {
	OrderStatus string
}

func (f OrderFilter) conditions() store.Filter {
	if f.OrderStatus == "" {
		return nil
	}
	return store.Filter{"order_status": f.OrderStatus}
}

// Orders manages customer orders.
type Orders struct {
	core
}

// NewOrders creates the order service.
func NewOrders(cfg Config) *Orders {
	return &Orders{core: newCore(cfg, "Order")}
}

// Create validates in and stores a new order.
func (s *Orders) Create(ctx context.Context, u *store.UnitOfWork, in model.OrderCreate) (*model.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	o := in.Record()
	o.CreatedAt = s.timestamp()
	o.UpdatedAt = o.CreatedAt
	if err := store.AddOrder(ctx, u, &o); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Created, o.ID); err != nil {
		return nil, err
	}
	s.published(ctx, events.Created, o.ID)
	return &o, nil
}

// Get returns one order.
func (s *Orders) Get(ctx context.Context, u *store.UnitOfWork, id int64) (*model.Order, error) {
	o, err := store.GetOrder(ctx, u, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, s.notFound()
	}
	return o, nil
}

// List returns a page of orders in identity order.
func (s *Orders) List(ctx context.Context, u *store.UnitOfWork, filter OrderFilter, offset, limit int) ([]model.Order, error) {
	offset, limit, err := s.page(offset, limit)
	if err != nil {
		return nil, err
	}
	return store.ListOrders(ctx, u, filter.conditions(), offset, limit)
}

// Update applies the fields present in in and refreshes updated_at.
func (s *Orders) Update(ctx context.Context, u *store.UnitOfWork, id int64, in model.OrderUpdate) (*model.Order, error) {
	stored, err := s.Get(ctx, u, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	o := in.Apply(*stored)
	o.UpdatedAt = s.touched(stored.UpdatedAt)
	if err := store.SaveOrder(ctx, u, o); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Updated, id); err != nil {
		return nil, err
	}
	s.published(ctx, events.Updated, id)
	return &o, nil
}

// Delete removes an order.
func (s *Orders) Delete(ctx context.Context, u *store.UnitOfWork, id int64) (*Deleted, error) {
	if _, err := s.Get(ctx, u, id); err != nil {
		return nil, err
	}
	if err := store.DeleteOrder(ctx, u, id); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Deleted, id); err != nil {
		return nil, err
	}
	s.published(ctx, events.Deleted, id)
	return &Deleted{OK: true, Message: "Order deleted successfully"}, nil
}
