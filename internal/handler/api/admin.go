package api

import (
	"net/http"
	"time"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/handler"
)

// AdminHandler serves the read-only admin views. Every route is mounted
// behind Authenticate and RequireAdmin.
type AdminHandler struct {
	dashboard domain.DashboardService
	now       func() time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(dashboard domain.DashboardService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, now: time.Now}
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, stats)
}

// Orders handles GET /api/v1/admin/orders
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := handler.Pagination(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	orders, err := h.dashboard.ListOrders(r.Context(), skip, limit)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, orders)
}

// SystemHealth handles GET /api/v1/admin/system-health. A degraded store is
// reported in the body with a 200 so the admin panel can render it.
func (h *AdminHandler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, r, http.StatusOK, h.dashboard.Health(r.Context()))
}

// Summary handles GET /api/v1/admin-dashboard/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context(), h.now())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, summary)
}
