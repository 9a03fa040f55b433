package service

import (
	"context"

	"github.com/erazemk/dostava/internal/events"
	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/store"
)

// Items manages catalogue items.
type Items struct {
	core
}

// NewItems creates the item service.
func NewItems(cfg Config) *Items {
	return &Items{core: newCore(cfg, "Item")}
}

// Create validates in and stores a new item.
func (s *Items) Create(ctx context.Context, u *store.UnitOfWork, in model.ItemCreate) (*model.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item := in.Record()
	if err := store.AddItem(ctx, u, &item); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Created, item.ID); err != nil {
		return nil, err
	}
	s.published(ctx, events.Created, item.ID)
	return &item, nil
}

// Get returns one item.
func (s *Items) Get(ctx context.Context, u *store.UnitOfWork, id int64) (*model.Item, error) {
	item, err := store.GetItem(ctx, u, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, s.notFound()
	}
	return item, nil
}

// List returns a page of items in identity order.
func (s *Items) List(ctx context.Context, u *store.UnitOfWork, offset, limit int) ([]model.Item, error) {
	offset, limit, err := s.page(offset, limit)
	if err != nil {
		return nil, err
	}
	return store.ListItems(ctx, u, offset, limit)
}

// Update replaces name and price, and description when it was sent.
func (s *Items) Update(ctx context.Context, u *store.UnitOfWork, id int64, in model.ItemCreate) (*model.Item, error) {
	stored, err := s.Get(ctx, u, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item := in.Apply(*stored)
	if err := store.SaveItem(ctx, u, item); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Updated, id); err != nil {
		return nil, err
	}
	s.published(ctx, events.Updated, id)
	return &item, nil
}

// Delete removes an item.
func (s *Items) Delete(ctx context.Context, u *store.UnitOfWork, id int64) (*Deleted, error) {
	if _, err := s.Get(ctx, u, id); err != nil {
		return nil, err
	}
	if err := store.DeleteItem(ctx, u, id); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Deleted, id); err != nil {
		return nil, err
	}
	s.published(ctx, events.Deleted, id)
	return &Deleted{OK: true}, nil
}
