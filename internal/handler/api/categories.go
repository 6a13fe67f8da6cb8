package api

import (
	"net/http"
	"strings"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/handler"
)

// CategoryHandler serves the category tree.
type CategoryHandler struct {
	categories domain.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories domain.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := handler.Pagination(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	categories, err := h.categories.ListCategories(r.Context(), skip, limit)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, categories)
}

// Tree handles GET /api/v1/categories/tree
func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.categories.GetCategoryTree(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, tree)
}

// Get handles GET /api/v1/categories/{category_id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "category_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	category, err := h.categories.GetCategory(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, category)
}

// GetBySlug handles GET /api/v1/categories/slug/{slug}
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetCategoryBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, category)
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CategoryInput
	if err := handler.DecodeAndValidate(r, "category.create", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusCreated, category)
}

// Update handles PUT /api/v1/categories/{category_id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "category_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	var input domain.CategoryUpdate
	if err := handler.DecodeAndValidate(r, "category.update", &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), id, input)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, category)
}

// Delete handles DELETE /api/v1/categories/{category_id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "category_id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateSlug handles POST /api/v1/categories/generate-slug?name=...
func (h *CategoryHandler) GenerateSlug(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		handler.RespondError(w, r, domain.NewValidationError("category.generate_slug", "name", "is required"))
		return
	}

	slug, err := h.categories.GenerateUniqueSlug(r.Context(), name)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.WriteJSON(w, r, http.StatusOK, slugResponse{Slug: slug})
}
