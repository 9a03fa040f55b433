package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/dostava/internal/db"
	"github.com/erazemk/dostava/internal/store"
)

// handler carries what every resource handler needs.
type handler struct {
	db  *db.DB
	log *zap.Logger
}

// fail writes err as a {"detail": ...} response. Unexpected errors are logged
// and hidden from the client.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		jsonError(h.log, w, status, http.StatusText(status))
		return
	}
	jsonError(h.log, w, status, err.Error())
}

// respond runs fn in a unit of work of its own and writes the result. The
// unit is released on every path; fn commits it when it writes.
func respond[T any](h *handler, w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, u *store.UnitOfWork) (T, error)) {
	ctx := r.Context()
	u, err := store.Begin(ctx, h.db)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer func() {
		if err := u.Release(); err != nil {
			h.log.Warn("releasing unit of work", zap.Error(err))
		}
	}()

	out, err := fn(ctx, u)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(h.log, w, http.StatusOK, out)
}
