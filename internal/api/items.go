package api

import (
	"context"
	"net/http"

	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/service"
	"github.com/erazemk/dostava/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	handler
	Items *service.Items
}

// List handles GET /items/.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := pageParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) ([]model.Item, error) {
		return h.Items.List(ctx, u, offset, limit)
	})
}

// Create handles POST /items/.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItemCreate
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Item, error) {
		return h.Items.Create(ctx, u, req)
	})
}

// Get handles GET /items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Item, error) {
		return h.Items.Get(ctx, u, id)
	})
}

// Update handles PUT /items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req model.ItemCreate
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*model.Item, error) {
		return h.Items.Update(ctx, u, id, req)
	})
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(&h.handler, w, r, func(ctx context.Context, u *store.UnitOfWork) (*service.Deleted, error) {
		return h.Items.Delete(ctx, u, id)
	})
}
