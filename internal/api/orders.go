package api

import (
	"context"
	"net/http"

	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/service"
	"github.com/erazemk/dostava/internal/store"
)

// OrdersHandler handles order endpoints.
type OrdersHandler struct {
	handler
	Orders *service.Orders
}

// List handles GET /orders/, optionally filtered by order_status.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := pageParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filter := service.OrderFilter{OrderStatus: r.URL.Query().Get("order_status")}

	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) ([]model.Order, error) {
		return h.Orders.List(ctx, u, filter, offset, limit)
	})
}

// Create handles POST /orders/.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderCreate
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Order, error) {
		return h.Orders.Create(ctx, u, req)
	})
}

// Get handles GET /orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Order, error) {
		return h.Orders.Get(ctx, u, id)
	})
}

// Update handles PATCH /orders/{id}.
func (h *OrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req model.OrderUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Order, error) {
		return h.Orders.Update(ctx, u, id, req)
	})
}

// Delete handles DELETE /orders/{id}.
func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*service.Deleted, error) {
		return h.Orders.Delete(ctx, u, id)
	})
}
