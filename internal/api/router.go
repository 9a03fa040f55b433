package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/dostava/internal/db"
	"github.com/erazemk/dostava/internal/service"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to dostava"

// Services are the resource services the router dispatches to.
type Services struct {
	Items     *service.Items
	Shipments *service.Shipments
	Orders    *service.Orders
}

// NewRouter creates the API router with all endpoints registered under prefix
// ("" or "/api"-style). The returned handler includes request ID, logging,
// panic recovery and CORS middleware.
func NewRouter(database *db.DB, svc Services, prefix string, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	base := handler{db: database, log: log}
	itemsHandler := &ItemsHandler{handler: base, Items: svc.Items}
	shipmentsHandler := &ShipmentsHandler{handler: base, Shipments: svc.Shipments}
	ordersHandler := &OrdersHandler{handler: base, Orders: svc.Orders}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(log, w, http.StatusOK, map[string]string{"message": WelcomeMessage})
	})

	// Collections answer with and without the trailing slash.
	collection := func(method, path string, h http.HandlerFunc) {
		mux.HandleFunc(method+" "+prefix+path, h)
		mux.HandleFunc(method+" "+prefix+path+"/{$}", h)
	}

	// Items.
	collection("GET", "/items", itemsHandler.List)
	collection("POST", "/items", itemsHandler.Create)
	mux.HandleFunc("GET "+prefix+"/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT "+prefix+"/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE "+prefix+"/items/{id}", itemsHandler.Delete)

	// Shipments.
	collection("GET", "/shipments", shipmentsHandler.List)
	collection("POST", "/shipments", shipmentsHandler.Create)
	mux.HandleFunc("GET "+prefix+"/shipments/tracking/{tracking_number}", shipmentsHandler.Track)
	mux.HandleFunc("GET "+prefix+"/shipments/{id}", shipmentsHandler.Get)
	mux.HandleFunc("PATCH "+prefix+"/shipments/{id}", shipmentsHandler.Update)
	mux.HandleFunc("DELETE "+prefix+"/shipments/{id}", shipmentsHandler.Delete)

	// Orders.
	collection("GET", "/orders", ordersHandler.List)
	collection("POST", "/orders", ordersHandler.Create)
	mux.HandleFunc("GET "+prefix+"/orders/{id}", ordersHandler.Get)
	mux.HandleFunc("PATCH "+prefix+"/orders/{id}", ordersHandler.Update)
	mux.HandleFunc("DELETE "+prefix+"/orders/{id}", ordersHandler.Delete)

	var h http.Handler = mux
	h = CORSMiddleware(h)
	h = RecoverMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)
	h = RequestIDMiddleware(h)
	return h
}
