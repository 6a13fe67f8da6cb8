package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/handler"
	"github.com/dukerupert/tantuka/internal/telemetry"
)

// ProductHandler serves the product catalog. Reads are public; writes are
// mounted behind RequireAdmin.
type ProductHandler struct {
	products domain.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products domain.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	products, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.ProductSearches.WithLabelValues(filterType(filter)).Inc()
	}

	handler.WriteJSON(w, r, http.StatusOK, products)
}

// Get handles GET /api/v1/products/{product_id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "product_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.ProductViews.WithLabelValues("id").Inc()
	}

	handler.WriteJSON(w, r, http.StatusOK, product)
}

// GetBySlug handles GET /api/v1/products/slug/{slug}
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.ProductViews.WithLabelValues("slug").Inc()
	}

	handler.WriteJSON(w, r, http.StatusOK, product)
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := handler.DecodeAndValidate(r, "product.create", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.ProductsCreated.Inc()
	}

	handler.WriteJSON(w, r, http.StatusCreated, product)
}

// Update handles PUT /api/v1/products/{product_id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "product_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	var input domain.ProductUpdate
	if err := handler.DecodeAndValidate(r, "product.update", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/{product_id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "product_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddVariant handles POST /api/v1/products/{product_id}/variants
func (h *ProductHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "product_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	var input domain.VariantInput
	if err := handler.DecodeAndValidate(r, "product.add_variant", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	variant, err := h.products.AddVariant(r.Context(), id, input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, variant)
}

// AddImage handles POST /api/v1/products/{product_id}/images
func (h *ProductHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "product_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	var input domain.ImageInput
	if err := handler.DecodeAndValidate(r, "product.add_image", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	image, err := h.products.AddImage(r.Context(), id, input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, image)
}

// GenerateSlug handles POST /api/v1/products/generate-slug?name=...
func (h *ProductHandler) GenerateSlug(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		handler.RespondError(w, r, domain.NewValidationError("product.generate_slug", "name", "is required"))
		return
	}

	slug, err := h.products.GenerateUniqueSlug(r.Context(), name)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, slugResponse{Slug: slug})
}

type slugResponse struct {
	Slug string `json:"slug"`
}

func parseProductFilter(r *http.Request) (domain.ProductFilter, error) {
	const op = "product.list"

	skip, limit, err := handler.Pagination(r)
	if err != nil {
		return domain.ProductFilter{}, err
	}

	q := r.URL.Query()
	filter := domain.ProductFilter{
		Skip:      skip,
		Limit:     limit,
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	var verr error
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			verr = domain.AddFieldError(verr, "category_id", "must be an integer")
		} else {
			filter.CategoryID = &id
		}
	}
	if raw := strings.TrimSpace(q.Get("search")); raw != "" {
		filter.Search = &raw
	}
	filter.IsActive, verr = queryBool(q.Get("is_active"), "is_active", verr)
	filter.IsFeatured, verr = queryBool(q.Get("is_featured"), "is_featured", verr)
	filter.MinPrice, verr = queryDecimal(q.Get("min_price"), "min_price", verr)
	filter.MaxPrice, verr = queryDecimal(q.Get("max_price"), "max_price", verr)

	if ve, ok := verr.(*domain.ValidationError); ok {
		ve.Op = op
		return domain.ProductFilter{}, ve
	}
	return filter, nil
}

func queryBool(raw, name string, prev error) (*bool, error) {
	if raw == "" {
		return nil, prev
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.AddFieldError(prev, name, "must be true or false")
	}
	return &v, prev
}

func queryDecimal(raw, name string, prev error) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, prev
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.AddFieldError(prev, name, "must be a number")
	}
	return &v, prev
}

func filterType(f domain.ProductFilter) string {
	switch {
	case f.Search != nil:
		return "search"
	case f.CategoryID != nil:
		return "category"
	case f.MinPrice != nil || f.MaxPrice != nil:
		return "price"
	default:
		return "none"
	}
}
