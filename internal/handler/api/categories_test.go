package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/tantuka/internal/domain"
)

func TestCategoryHandler_ListAndTree(t *testing.T) {
	parent := int64(1)
	categories := &mockCategoryService{
		ListCategoriesFunc: func(ctx context.Context, skip, limit int32) ([]domain.Category, error) {
			assert.Equal(t, int32(2), skip)
			assert.Equal(t, int32(10), limit)
			return []domain.Category{{ID: 3, Name: "Shoes", Slug: "shoes"}}, nil
		},
		GetCategoryTreeFunc: func(ctx context.Context) ([]domain.CategoryNode, error) {
			return domain.BuildCategoryTree([]domain.Category{
				{ID: 1, Name: "Clothing", Slug: "clothing"},
				{ID: 2, Name: "Shirts", Slug: "shirts", ParentID: &parent},
			}), nil
		},
	}
	h := NewCategoryHandler(categories)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/api/v1/categories?skip=2&limit=10", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"shoes"`)

	rec = httptest.NewRecorder()
	h.Tree(rec, newRequest(http.MethodGet, "/api/v1/categories/tree", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var tree []domain.CategoryNode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, "shirts", tree[0].Subcategories[0].Slug)
}

func TestCategoryHandler_Get(t *testing.T) {
	categories := &mockCategoryService{
		GetCategoryFunc: func(ctx context.Context, id int64) (*domain.Category, error) {
			if id != 3 {
				return nil, domain.WithOp(domain.ErrCategoryNotFound, "category.get")
			}
			return &domain.Category{ID: 3, Name: "Shoes", Slug: "shoes"}, nil
		},
		GetCategoryBySlugFunc: func(ctx context.Context, slug string) (*domain.Category, error) {
			if slug != "shoes" {
				return nil, domain.WithOp(domain.ErrCategoryNotFound, "category.get_by_slug")
			}
			return &domain.Category{ID: 3, Name: "Shoes", Slug: "shoes"}, nil
		},
	}
	h := NewCategoryHandler(categories)

	tests := []struct {
		name       string
		call       http.HandlerFunc
		key, value string
		wantStatus int
	}{
		{"by id", h.Get, "category_id", "3", http.StatusOK},
		{"unknown id", h.Get, "category_id", "4", http.StatusNotFound},
		{"by slug", h.GetBySlug, "slug", "shoes", http.StatusOK},
		{"unknown slug", h.GetBySlug, "slug", "hats", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/api/v1/categories/x", "", nil)
			req.SetPathValue(tt.key, tt.value)
			rec := httptest.NewRecorder()
			tt.call(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCategoryHandler_Write(t *testing.T) {
	categories := &mockCategoryService{
		CreateCategoryFunc: func(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
			if input.Slug == "taken" {
				return nil, domain.WithOp(domain.ErrDuplicateCategory, "category.create")
			}
			return &domain.Category{ID: 5, Name: input.Name, Slug: "clothing-apparel"}, nil
		},
		UpdateCategoryFunc: func(ctx context.Context, id int64, input domain.CategoryUpdate) (*domain.Category, error) {
			if input.ParentID != nil && *input.ParentID == id {
				return nil, domain.WithOp(domain.ErrCategoryOwnAncestor, "category.update")
			}
			return &domain.Category{ID: id, Name: *input.Name, Slug: "renamed"}, nil
		},
		DeleteCategoryFunc: func(ctx context.Context, id int64) error {
			if id == 1 {
				return domain.WithOp(domain.ErrCategoryHasChildren, "category.delete")
			}
			return nil
		},
	}
	h := NewCategoryHandler(categories)

	call := func(fn http.HandlerFunc, method, id, body string) *httptest.ResponseRecorder {
		req := newRequest(method, "/api/v1/categories/"+id, body, nil)
		if id != "" {
			req.SetPathValue("category_id", id)
		}
		rec := httptest.NewRecorder()
		fn(rec, req)
		return rec
	}

	rec := call(h.Create, http.MethodPost, "", `{"name":"Clothing & Apparel"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"clothing-apparel"`)

	rec = call(h.Create, http.MethodPost, "", `{"name":"Shoes","slug":"taken"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(h.Create, http.MethodPost, "", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h.Update, http.MethodPut, "5", `{"name":"Garments"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(h.Update, http.MethodPut, "5", `{"name":"Garments","parent_id":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "A category cannot be its own parent", decodeError(t, rec).Error.Message)

	rec = call(h.Delete, http.MethodDelete, "5", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(h.Delete, http.MethodDelete, "1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryHandler_GenerateSlug(t *testing.T) {
	categories := &mockCategoryService{
		GenerateUniqueSlugFunc: func(ctx context.Context, name string) (string, error) {
			assert.Equal(t, "Clothing & Apparel", name)
			return "clothing-apparel-1", nil
		},
	}

	rec := httptest.NewRecorder()
	NewCategoryHandler(categories).GenerateSlug(rec, newRequest(http.MethodPost, "/api/v1/categories/generate-slug?name=Clothing+%26+Apparel", "", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slug":"clothing-apparel-1"}`, rec.Body.String())
}
