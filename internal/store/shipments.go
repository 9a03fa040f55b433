package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/dostava/internal/model"
)

var shipments = table[model.Shipment]{
	name: "shipments",
	noun: "shipment",
	key:  "id",
	columns: []string{
		"tracking_number", "carrier", "status", "origin_address",
		"destination_address", "weight_kg", "description",
		"estimated_delivery", "updated_at",
	},
	fixed:      []string{"created_at"},
	filterable: []string{"status", "carrier", "tracking_number"},
	scan: func(s scanner) (model.Shipment, error) {
		var sh model.Shipment
		var status string
		var description sql.NullString
		var estimated sql.NullTime
		err := s.Scan(&sh.ID, &sh.TrackingNumber, &sh.Carrier, &status,
			&sh.OriginAddress, &sh.DestinationAddress, &sh.WeightKg,
			&description, &estimated, &sh.UpdatedAt, &sh.CreatedAt)
		if err != nil {
			return sh, err
		}
		sh.Status = model.ShipmentStatus(status)
		sh.Description = stringPtr(description)
		sh.EstimatedDelivery = timePtr(estimated)
		sh.CreatedAt = sh.CreatedAt.UTC()
		sh.UpdatedAt = sh.UpdatedAt.UTC()
		return sh, nil
	},
	values: func(sh model.Shipment) []any {
		return []any{
			sh.TrackingNumber, sh.Carrier, string(sh.Status), sh.OriginAddress,
			sh.DestinationAddress, sh.WeightKg, nullString(sh.Description),
			nullTime(sh.EstimatedDelivery), sh.UpdatedAt.UTC(),
		}
	},
	fixedValues: func(sh model.Shipment) []any { return []any{sh.CreatedAt.UTC()} },
	setID:       func(sh *model.Shipment, id int64) { sh.ID = id },
	id:          func(sh model.Shipment) int64 { return sh.ID },
}

// GetShipment returns a shipment by ID, or nil if there is none.
func GetShipment(ctx context.Context, u *UnitOfWork, id int64) (*model.Shipment, error) {
	return get(ctx, u, shipments, id)
}

// ListShipments returns a page of shipments ordered by ID. filter may match on
// status, carrier and tracking_number.
func ListShipments(ctx context.Context, u *UnitOfWork, filter Filter, offset, limit int) ([]model.Shipment, error) {
	return list(ctx, u, shipments, filter, offset, limit)
}

// FindShipmentByTrackingNumber returns the first shipment with the given
// tracking number, or nil.
func FindShipmentByTrackingNumber(ctx context.Context, u *UnitOfWork, trackingNumber string) (*model.Shipment, error) {
	found, err := list(ctx, u, shipments, Filter{"tracking_number": trackingNumber}, 0, 1)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

// AddShipment inserts sh and fills in its ID.
func AddShipment(ctx context.Context, u *UnitOfWork, sh *model.Shipment) error {
	return add(ctx, u, shipments, sh)
}

// SaveShipment overwrites the stored shipment with the same ID. created_at is
// never rewritten.
func SaveShipment(ctx context.Context, u *UnitOfWork, sh model.Shipment) error {
	return save(ctx, u, shipments, sh)
}

// DeleteShipment removes a shipment.
func DeleteShipment(ctx context.Context, u *UnitOfWork, id int64) error {
	return remove(ctx, u, shipments, id)
}
