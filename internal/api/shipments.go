package api

import (
	"context"
	"net/http"

	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/service"
	"github.com/erazemk/dostava/internal/store"
)

// ShipmentsHandler handles shipment endpoints.
type ShipmentsHandler struct {
	handler
	Shipments *service.Shipments
}

// List handles GET /shipments/. Supports status and carrier filters.
func (h *ShipmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := pageParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	filter := service.ShipmentFilter{Status: q.Get("status"), Carrier: q.Get("carrier")}

	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) ([]model.Shipment, error) {
		return h.Shipments.List(ctx, u, filter, offset, limit)
	})
}

// Create handles POST /shipments/.
func (h *ShipmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ShipmentCreate
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return h.Shipments.Create(ctx, u, req)
	})
}

// Get handles GET /shipments/{id}.
func (h *ShipmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return h.Shipments.Get(ctx, u, id)
	})
}

// Track handles GET /shipments/tracking/{tracking_number}.
func (h *ShipmentsHandler) Track(w http.ResponseWriter, r *http.Request) {
	tn := r.PathValue("tracking_number")
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return h.Shipments.GetByTrackingNumber(ctx, u, tn)
	})
}

// Update handles PATCH /shipments/{id}.
func (h *ShipmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req model.ShipmentUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return h.Shipments.Update(ctx, u, id, req)
	})
}

// Delete handles DELETE /shipments/{id}.
func (h *ShipmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*service.Deleted, error) {
		return h.Shipments.Delete(ctx, u, id)
	})
}
