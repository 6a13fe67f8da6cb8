package service

import (
	"context"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/repository"
)

type categoryService struct {
	store repository.Store
}

// NewCategoryService creates a CategoryService backed by store.
func NewCategoryService(store repository.Store) domain.CategoryService {
	return &categoryService{store: store}
}

func (s *categoryService) ListCategories(ctx context.Context, skip, limit int32) ([]domain.Category, error) {
	skip, limit = page(skip, limit)

	rows, err := s.store.ListCategories(ctx, repository.ListParams{Offset: skip, Limit: limit})
	if err != nil {
		return nil, storeError(err, "category.list", "failed to list categories")
	}

	categories := make([]domain.Category, len(rows))
	for i, row := range rows {
		categories[i] = *toDomainCategory(row)
	}
	return categories, nil
}

func (s *categoryService) GetCategoryTree(ctx context.Context) ([]domain.CategoryNode, error) {
	rows, err := s.store.ListAllCategories(ctx)
	if err != nil {
		return nil, storeError(err, "category.tree", "failed to list categories")
	}

	categories := make([]domain.Category, len(rows))
	for i, row := range rows {
		categories[i] = *toDomainCategory(row)
	}
	return domain.BuildCategoryTree(categories), nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	const op = "category.get"

	row, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.WithOp(domain.ErrCategoryNotFound, op)
		}
		return nil, storeError(err, op, "failed to get category")
	}
	return toDomainCategory(row), nil
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const op = "category.get_by_slug"

	row, err := s.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.WithOp(domain.ErrCategoryNotFound, op)
		}
		return nil, storeError(err, op, "failed to get category")
	}
	return toDomainCategory(row), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	const op = "category.create"

	create := func(q repository.Querier, slug string) (repository.Category, error) {
		if _, err := lookupCategory(ctx, q, op, input.ParentID); err != nil {
			return repository.Category{}, err
		}
		return q.CreateCategory(ctx, repository.CreateCategoryParams{
			Name:        input.Name,
			Slug:        slug,
			ParentID:    input.ParentID,
			Description: input.Description,
		})
	}

	var (
		row repository.Category
		err error
	)
	if input.Slug == "" {
		row, err = createWithDerivedSlug(ctx, s.store, op, "category", input.Name,
			repository.ConstraintCategorySlug, s.store.CategorySlugExists, create)
	} else {
		if err := domain.ValidateSlug(op, input.Slug); err != nil {
			return nil, err
		}
		err = s.store.ExecTx(ctx, func(q repository.Querier) error {
			var err error
			row, err = create(q, input.Slug)
			return err
		})
		if repository.IsUniqueViolation(err, repository.ConstraintCategorySlug) {
			return nil, domain.WithOp(domain.ErrDuplicateCategory, op)
		}
	}
	if err != nil {
		return nil, storeError(err, op, "failed to create category")
	}

	return toDomainCategory(row), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, input domain.CategoryUpdate) (*domain.Category, error) {
	const op = "category.update"

	if input.Slug != nil {
		if err := domain.ValidateSlug(op, *input.Slug); err != nil {
			return nil, err
		}
	}

	var row repository.Category
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		current, err := q.GetCategoryByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrCategoryNotFound, op)
			}
			return err
		}

		params := repository.UpdateCategoryParams{
			ID:          current.ID,
			Name:        current.Name,
			Slug:        current.Slug,
			ParentID:    current.ParentID,
			Description: current.Description,
		}
		if input.Name != nil {
			params.Name = *input.Name
		}
		if input.Slug != nil {
			params.Slug = *input.Slug
		}
		if input.Description != nil {
			params.Description = input.Description
		}
		if input.ParentID != nil {
			if err := checkParent(ctx, q, op, id, *input.ParentID); err != nil {
				return err
			}
			params.ParentID = input.ParentID
		}

		row, err = q.UpdateCategory(ctx, params)
		if repository.IsUniqueViolation(err, repository.ConstraintCategorySlug) {
			return domain.WithOp(domain.ErrDuplicateCategory, op)
		}
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to update category")
	}

	return toDomainCategory(row), nil
}

// checkParent rejects a parent that does not exist or that would make id its
// own ancestor.
func checkParent(ctx context.Context, q repository.Querier, op string, id, parentID int64) error {
	seen := map[int64]bool{}
	for current := &parentID; current != nil; {
		if *current == id {
			return domain.WithOp(domain.ErrCategoryOwnAncestor, op)
		}
		if seen[*current] {
			return nil
		}
		seen[*current] = true

		c, err := q.GetCategoryByID(ctx, *current)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrCategoryNotFound, op)
			}
			return err
		}
		current = c.ParentID
	}
	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	const op = "category.delete"

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetCategoryByID(ctx, id); err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrCategoryNotFound, op)
			}
			return err
		}

		children, err := q.CountChildCategories(ctx, id)
		if err != nil {
			return err
		}
		if children > 0 {
			return domain.WithOp(domain.ErrCategoryHasChildren, op)
		}

		_, err = q.DeleteCategory(ctx, id)
		return err
	})
	if err != nil {
		return storeError(err, op, "failed to delete category")
	}

	return nil
}

func (s *categoryService) GenerateUniqueSlug(ctx context.Context, name string) (string, error) {
	return generateUniqueSlug(ctx, "category.generate_slug", name, s.store.CategorySlugExists)
}

func toDomainCategory(c repository.Category) *domain.Category {
	return &domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		ParentID:    c.ParentID,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
