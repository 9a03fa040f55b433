package model

import "time"

// OrderStatus is the processing state of an order.
type OrderStatus string

// Order statuses.
const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every allowed order status.
var OrderStatuses = []string{
	string(OrderPending),
	string(OrderConfirmed),
	string(OrderProcessing),
	string(OrderShipped),
	string(OrderDelivered),
	string(OrderCancelled),
}

// ValidateOrderStatus accepts only the values in OrderStatuses.
func ValidateOrderStatus(v string) (OrderStatus, error) {
	if err := oneOf("order_status", v, OrderStatuses); err != nil {
		return "", err
	}
	return OrderStatus(v), nil
}

// Order is a customer order. It carries no links to other resources.
type Order struct {
	ID          int64       `json:"order_id"`
	OrderStatus OrderStatus `json:"order_status"`
	TotalPrice  float64     `json:"total_price"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderCreate is the payload for creating an order.
type OrderCreate struct {
	OrderStatus Optional[string]  `json:"order_status,omitzero"`
	TotalPrice  Optional[float64] `json:"total_price,omitzero"`
}

// Validate checks total_price and the status value.
func (c OrderCreate) Validate() error {
	if err := firstError(
		notNull("order_status", c.OrderStatus),
		required("total_price", c.TotalPrice),
	); err != nil {
		return err
	}
	if c.OrderStatus.Present() {
		if _, err := ValidateOrderStatus(c.OrderStatus.Value); err != nil {
			return err
		}
	}
	return nil
}

// Record builds a new, unsaved order. Status defaults to pending.
func (c OrderCreate) Record() Order {
	o := Order{
		OrderStatus: OrderPending,
		TotalPrice:  c.TotalPrice.Value,
	}
	if c.OrderStatus.Present() {
		o.OrderStatus = OrderStatus(c.OrderStatus.Value)
	}
	return o
}

// OrderUpdate is a partial order payload.
type OrderUpdate struct {
	OrderStatus Optional[string]  `json:"order_status,omitzero"`
	TotalPrice  Optional[float64] `json:"total_price,omitzero"`
}

// Validate rejects nulls and unknown statuses.
func (u OrderUpdate) Validate() error {
	if err := firstError(
		notNull("order_status", u.OrderStatus),
		notNull("total_price", u.TotalPrice),
	); err != nil {
		return err
	}
	if u.OrderStatus.Present() {
		if _, err := ValidateOrderStatus(u.OrderStatus.Value); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns a copy of stored with the present fields overwritten.
func (u OrderUpdate) Apply(stored Order) Order {
	out := stored
	if u.OrderStatus.Set {
		out.OrderStatus = OrderStatus(u.OrderStatus.Value)
	}
	if u.TotalPrice.Set {
		out.TotalPrice = u.TotalPrice.Value
	}
	return out
}
