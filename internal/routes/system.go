package routes

import (
	"net/http"

	"github.com/dukerupert/tantuka/internal/handler"
	"github.com/dukerupert/tantuka/internal/router"
)

// RegisterSystemRoutes registers the welcome, health and metrics endpoints.
func RegisterSystemRoutes(r *router.Router, deps SystemDeps) {
	r.Get("/{$}", func(w http.ResponseWriter, req *http.Request) {
		handler.WriteMessage(w, req, http.StatusOK, "Welcome to Tantuka E-Commerce API")
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.Ping != nil {
			if err := deps.Ping(req.Context()); err != nil {
				handler.WriteJSON(w, req, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		handler.WriteJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Metrics != nil {
		r.Get("/metrics", deps.Metrics.ServeHTTP)
	}
}
