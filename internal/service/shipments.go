package service

import (
	"context"

	"github.com/erazemk/dostava/internal/events"
	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/store"
)

// ShipmentFilter narrows a shipment listing. Empty fields match everything.
type ShipmentFilter struct {
	Status  string
	Carrier string
}

func (f ShipmentFilter) conditions() store.Filter {
	cond := store.Filter{}
	if f.Status != "" {
		cond["status"] = f.Status
	}
	if f.Carrier != "" {
		cond["carrier"] = f.Carrier
	}
	return cond
}

// Shipments manages tracked shipments.
type Shipments struct {
	core
}

// NewShipments creates the shipment service.
func NewShipments(cfg Config) *Shipments {
	return &Shipments{core: newCore(cfg, "Shipment")}
}

// Create validates in and stores a new shipment. Both timestamps are set to
// the current time.
func (s *Shipments) Create(ctx context.Context, u *store.UnitOfWork, in model.ShipmentCreate) (*model.Shipment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sh := in.Record()
	sh.EstimatedDelivery = asStored(sh.EstimatedDelivery)
	sh.CreatedAt = s.timestamp()
	sh.UpdatedAt = sh.CreatedAt
	if err := store.AddShipment(ctx, u, &sh); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Created, sh.ID); err != nil {
		return nil, err
	}
	s.published(ctx, events.Created, sh.ID)
	return &sh, nil
}

// Get returns one shipment.
func (s *Shipments) Get(ctx context.Context, u *store.UnitOfWork, id int64) (*model.Shipment, error) {
	sh, err := store.GetShipment(ctx, u, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, s.notFound()
	}
	return sh, nil
}

// GetByTrackingNumber returns the lowest-ID shipment with the given tracking number.
func (s *Shipments) GetByTrackingNumber(ctx context.Context, u *store.UnitOfWork, trackingNumber string) (*model.Shipment, error) {
	sh, err := store.FindShipmentByTrackingNumber(ctx, u, trackingNumber)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, s.notFound()
	}
	return sh, nil
}

// List returns a page of shipments in identity order.
func (s *Shipments) List(ctx context.Context, u *store.UnitOfWork, filter ShipmentFilter, offset, limit int) ([]model.Shipment, error) {
	offset, limit, err := s.page(offset, limit)
	if err != nil {
		return nil, err
	}
	return store.ListShipments(ctx, u, filter.conditions(), offset, limit)
}

// Update applies the fields present in in and refreshes updated_at.
func (s *Shipments) Update(ctx context.Context, u *store.UnitOfWork, id int64, in model.ShipmentUpdate) (*model.Shipment, error) {
	stored, err := s.Get(ctx, u, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sh := in.Apply(*stored)
	sh.EstimatedDelivery = asStored(sh.EstimatedDelivery)
	sh.UpdatedAt = s.touched(stored.UpdatedAt)
	if err := store.SaveShipment(ctx, u, sh); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Updated, id); err != nil {
		return nil, err
	}
	s.published(ctx, events.Updated, id)
	return &sh, nil
}

// Delete removes a shipment.
func (s *Shipments) Delete(ctx context.Context, u *store.UnitOfWork, id int64) (*Deleted, error) {
	if _, err := s.Get(ctx, u, id); err != nil {
		return nil, err
	}
	if err := store.DeleteShipment(ctx, u, id); err != nil {
		return nil, err
	}
	if err := s.commit(u, events.Deleted, id); err != nil {
		return nil, err
	}
	s.published(ctx, events.Deleted, id)
	return &Deleted{OK: true, Message: "Shipment deleted successfully"}, nil
}
