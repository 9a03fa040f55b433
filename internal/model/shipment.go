package model

import "time"

// ShipmentStatus is the delivery state of a shipment.
type ShipmentStatus string

// Shipment statuses.
const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentInTransit ShipmentStatus = "in_transit"
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentFailed    ShipmentStatus = "failed"
	ShipmentReturned  ShipmentStatus = "returned"
)

// ShipmentStatuses lists every allowed shipment status.
var ShipmentStatuses = []string{
	string(ShipmentPending),
	string(ShipmentInTransit),
	string(ShipmentDelivered),
	string(ShipmentFailed),
	string(ShipmentReturned),
}

// ValidateShipmentStatus accepts only the values in ShipmentStatuses.
func ValidateShipmentStatus(v string) (ShipmentStatus, error) {
	if err := oneOf("status", v, ShipmentStatuses); err != nil {
		return "", err
	}
	return ShipmentStatus(v), nil
}

// Shipment is a tracked parcel moving between two addresses.
type Shipment struct {
	ID                 int64          `json:"id"`
	TrackingNumber     string         `json:"tracking_number"`
	Carrier            string         `json:"carrier"`
	Status             ShipmentStatus `json:"status"`
	OriginAddress      string         `json:"origin_address"`
	DestinationAddress string         `json:"destination_address"`
	WeightKg           float64        `json:"weight_kg"`
	Description        *string        `json:"description"`
	EstimatedDelivery  *time.Time     `json:"estimated_delivery"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// ShipmentCreate is the payload for creating a shipment.
type ShipmentCreate struct {
	TrackingNumber     Optional[string]    `json:"tracking_number,omitzero"`
	Carrier            Optional[string]    `json:"carrier,omitzero"`
	Status             Optional[string]    `json:"status,omitzero"`
	OriginAddress      Optional[string]    `json:"origin_address,omitzero"`
	DestinationAddress Optional[string]    `json:"destination_address,omitzero"`
	WeightKg           Optional[float64]   `json:"weight_kg,omitzero"`
	Description        Optional[string]    `json:"description,omitzero"`
	EstimatedDelivery  Optional[time.Time] `json:"estimated_delivery,omitzero"`
}

// Validate checks required fields and the status value.
func (c ShipmentCreate) Validate() error {
	if err := firstError(
		required("tracking_number", c.TrackingNumber),
		required("carrier", c.Carrier),
		notNull("status", c.Status),
		required("origin_address", c.OriginAddress),
		required("destination_address", c.DestinationAddress),
		required("weight_kg", c.WeightKg),
	); err != nil {
		return err
	}
	if c.Status.Present() {
		if _, err := ValidateShipmentStatus(c.Status.Value); err != nil {
			return err
		}
	}
	return nil
}

// Record builds a new, unsaved shipment. Status defaults to pending.
func (c ShipmentCreate) Record() Shipment {
	s := Shipment{
		TrackingNumber:     c.TrackingNumber.Value,
		Carrier:            c.Carrier.Value,
		Status:             ShipmentPending,
		OriginAddress:      c.OriginAddress.Value,
		DestinationAddress: c.DestinationAddress.Value,
		WeightKg:           c.WeightKg.Value,
		Description:        c.Description.Ptr(),
		EstimatedDelivery:  c.EstimatedDelivery.Ptr(),
	}
	if c.Status.Present() {
		s.Status = ShipmentStatus(c.Status.Value)
	}
	return s
}

// ShipmentUpdate is a partial shipment payload. Only keys present in the
// request body are applied.
type ShipmentUpdate struct {
	TrackingNumber     Optional[string]    `json:"tracking_number,omitzero"`
	Carrier            Optional[string]    `json:"carrier,omitzero"`
	Status             Optional[string]    `json:"status,omitzero"`
	OriginAddress      Optional[string]    `json:"origin_address,omitzero"`
	DestinationAddress Optional[string]    `json:"destination_address,omitzero"`
	WeightKg           Optional[float64]   `json:"weight_kg,omitzero"`
	Description        Optional[string]    `json:"description,omitzero"`
	EstimatedDelivery  Optional[time.Time] `json:"estimated_delivery,omitzero"`
}

// Validate rejects nulls on non-nullable fields and unknown statuses.
func (u ShipmentUpdate) Validate() error {
	if err := firstError(
		notNull("tracking_number", u.TrackingNumber),
		notNull("carrier", u.Carrier),
		notNull("status", u.Status),
		notNull("origin_address", u.OriginAddress),
		notNull("destination_address", u.DestinationAddress),
		notNull("weight_kg", u.WeightKg),
	); err != nil {
		return err
	}
	if u.Status.Present() {
		if _, err := ValidateShipmentStatus(u.Status.Value); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns a copy of stored with the present fields overwritten.
// Timestamps are left to the caller.
func (u ShipmentUpdate) Apply(stored Shipment) Shipment {
	out := stored
	if u.TrackingNumber.Set {
		out.TrackingNumber = u.TrackingNumber.Value
	}
	if u.Carrier.Set {
		out.Carrier = u.Carrier.Value
	}
	if u.Status.Set {
		out.Status = ShipmentStatus(u.Status.Value)
	}
	if u.OriginAddress.Set {
		out.OriginAddress = u.OriginAddress.Value
	}
	if u.DestinationAddress.Set {
		out.DestinationAddress = u.DestinationAddress.Value
	}
	if u.WeightKg.Set {
		out.WeightKg = u.WeightKg.Value
	}
	if u.Description.Set {
		out.Description = u.Description.Ptr()
	}
	if u.EstimatedDelivery.Set {
		out.EstimatedDelivery = u.EstimatedDelivery.Ptr()
	}
	return out
}
