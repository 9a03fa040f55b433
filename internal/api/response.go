package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/service"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(log *zap.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Warn("encoding response", zap.Error(err))
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(log *zap.Logger, w http.ResponseWriter, status int, message string) {
	jsonResponse(log, w, status, map[string]string{"detail": message})
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a JSON request body into the given target. Malformed
// bodies are reported as validation errors.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(target); err != nil {
		return &model.ValidationError{Field: "body", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &model.ValidationError{Field: "body", Reason: "invalid JSON: unexpected data after the top-level value"}
	}
	return nil
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &model.ValidationError{Field: "id", Value: raw, Reason: "must be an integer"}
	}
	return id, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.ValidationError{Field: name, Value: raw, Reason: "must be an integer"}
	}
	return n, nil
}

// pageParams reads skip and limit.
func pageParams(r *http.Request) (offset, limit int, err error) {
	if offset, err = queryInt(r, "skip", 0); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit", service.DefaultLimit); err != nil {
		return 0, 0, err
	}
	return offset, limit, nil
}
