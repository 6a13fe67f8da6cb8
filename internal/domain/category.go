package domain

import (
	"context"
	"time"
)

var (
	ErrCategoryNotFound    = &Error{Code: ENOTFOUND, Message: "Category not found"}
	ErrDuplicateCategory   = &Error{Code: ECONFLICT, Message: "A category with this slug already exists"}
	ErrCategoryHasChildren = &Error{Code: EINVALID, Message: "Cannot delete a category with subcategories"}
	ErrCategoryOwnAncestor = &Error{Code: EINVALID, Message: "A category cannot be its own parent"}
)

// Category groups products. Categories form a tree through ParentID.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	ParentID    *int64    `json:"parent_id"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryNode is a category with its subcategories, used by the tree view.
type CategoryNode struct {
	Category
	Subcategories []CategoryNode `json:"subcategories"`
}

// BuildCategoryTree arranges a flat list into root nodes with nested children.
// Categories whose parent is not in the list are treated as roots.
func BuildCategoryTree(categories []Category) []CategoryNode {
	present := make(map[int64]bool, len(categories))
	children := make(map[int64][]Category)
	for _, c := range categories {
		present[c.ID] = true
	}

	var roots []Category
	for _, c := range categories {
		if c.ParentID == nil || !present[*c.ParentID] || *c.ParentID == c.ID {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(c Category, seen map[int64]bool) CategoryNode
	build = func(c Category, seen map[int64]bool) CategoryNode {
		node := CategoryNode{Category: c, Subcategories: []CategoryNode{}}
		seen[c.ID] = true
		for _, child := range children[c.ID] {
			if seen[child.ID] {
				continue
			}
			node.Subcategories = append(node.Subcategories, build(child, seen))
		}
		return node
	}

	tree := make([]CategoryNode, 0, len(roots))
	seen := make(map[int64]bool, len(categories))
	for _, root := range roots {
		tree = append(tree, build(root, seen))
	}
	return tree
}

// CategoryInput creates a category. An empty Slug asks the service to derive one.
type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,max=120"`
	ParentID    *int64  `json:"parent_id"`
	Description *string `json:"description"`
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
	ParentID    *int64  `json:"parent_id"`
	Description *string `json:"description"`
}

// CategoryService provides catalog operations on categories.
type CategoryService interface {
	ListCategories(ctx context.Context, skip, limit int32) ([]Category, error)
	GetCategoryTree(ctx context.Context) ([]CategoryNode, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, input CategoryUpdate) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	GenerateUniqueSlug(ctx context.Context, name string) (string, error)
}
