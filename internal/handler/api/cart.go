package api

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/handler"
	"github.com/dukerupert/tantuka/internal/middleware"
	"github.com/dukerupert/tantuka/internal/telemetry"
)

// CartHandler serves the authenticated user's cart.
type CartHandler struct {
	carts domain.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts domain.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addCartItemRequest struct {
	VariantID int64 `json:"variant_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"gt=0"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity" validate:"gt=0"`
}

type addCartItemResponse struct {
	Message string `json:"message"`
	ItemID  int64  `json:"item_id"`
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	view, err := h.carts.GetCartWithDetails(r.Context(), user.ID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		subtotal, _ := view.Subtotal.Float64()
		telemetry.Business.CartValue.Observe(subtotal)
		telemetry.Business.CartSize.Observe(float64(view.TotalItems))
	}

	handler.WriteJSON(w, r, http.StatusOK, view)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req addCartItemRequest
	if err := handler.DecodeAndValidate(r, "cart.add_item", &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	line, err := h.carts.AddItem(r.Context(), user.ID, req.VariantID, req.Quantity)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartItemsAdd.WithLabelValues(strconv.FormatInt(req.VariantID, 10)).Inc()
	}

	handler.WriteJSON(w, r, http.StatusCreated, addCartItemResponse{
		Message: "Item added to cart",
		ItemID:  line.ID,
	})
}

// UpdateItem handles PUT /api/v1/cart/items/{item_id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	itemID, err := handler.PathID(r, "item_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := handler.DecodeAndValidate(r, "cart.update_item", &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if _, err := h.carts.UpdateItem(r.Context(), user.ID, itemID, req.Quantity); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartUpdated.WithLabelValues("update").Inc()
	}

	handler.WriteMessage(w, r, http.StatusOK, "Cart item updated")
}

// RemoveItem handles DELETE /api/v1/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	itemID, err := handler.PathID(r, "item_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if err := h.carts.RemoveItem(r.Context(), user.ID, itemID); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartUpdated.WithLabelValues("remove").Inc()
	}

	handler.WriteMessage(w, r, http.StatusOK, "Item removed from cart")
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	if err := h.carts.Clear(r.Context(), user.ID); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartCleared.Inc()
	}

	handler.WriteMessage(w, r, http.StatusOK, "Cart cleared")
}
