package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcalzada-xor/iwbind/internal/adapters/web/middleware"
)

// SetupRoutes builds the router. ctx bounds the rate limiter sweeper.
func SetupRoutes(ctx context.Context, s *Server) http.Handler {
	r := mux.NewRouter()

	// Open and close rebuild every panel, so they are throttled.
	windowLimiter := middleware.NewRateLimiter(ctx, 30, time.Minute)
	limit := middleware.RateLimitMiddleware(windowLimiter)

	api := r.PathPrefix("/api").Subrouter()

	win := path(api, "/window")
	win.Methods(http.MethodGet).HandlerFunc(s.WindowHandler.HandleGet)
	win.Methods(http.MethodPost).Handler(limit(http.HandlerFunc(s.WindowHandler.HandleOpen)))
	win.Methods(http.MethodDelete).Handler(limit(http.HandlerFunc(s.WindowHandler.HandleClose)))

	path(api, "/window/text").Methods(http.MethodGet).HandlerFunc(s.WindowHandler.HandleText)
	path(api, "/indicators").Methods(http.MethodGet).HandlerFunc(s.IndicatorHandler.HandleList)

	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// path gives tpl its own subrouter that answers 405 itself. Sibling routes
// sharing the /api prefix would otherwise turn a method mismatch into a 404.
func path(api *mux.Router, tpl string) *mux.Router {
	sub := api.Path(tpl).Subrouter()
	sub.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	return sub
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
