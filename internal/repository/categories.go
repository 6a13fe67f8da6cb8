package repository

import (
	"context"
)

const categoryColumns = `id, name, slug, parent_id, description, created_at`

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var i Category
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.ParentID,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

func (q *Queries) queryCategories(ctx context.Context, sql string, args ...interface{}) ([]Category, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		i, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createCategory = `-- name: CreateCategory :one
INSERT INTO categories (name, slug, parent_id, description)
VALUES ($1, $2, $3, $4)
RETURNING ` + categoryColumns

type CreateCategoryParams struct {
	Name        string
	Slug        string
	ParentID    *int64
	Description *string
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, createCategory, arg.Name, arg.Slug, arg.ParentID, arg.Description)
	return scanCategory(row)
}

const getCategoryByID = `-- name: GetCategoryByID :one
SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	return scanCategory(q.db.QueryRow(ctx, getCategoryByID, id))
}

const getCategoryBySlug = `-- name: GetCategoryBySlug :one
SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`

func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	return scanCategory(q.db.QueryRow(ctx, getCategoryBySlug, slug))
}

const listCategories = `-- name: ListCategories :many
SELECT ` + categoryColumns + ` FROM categories
ORDER BY id
OFFSET $1 LIMIT $2`

func (q *Queries) ListCategories(ctx context.Context, arg ListParams) ([]Category, error) {
	return q.queryCategories(ctx, listCategories, arg.Offset, arg.Limit)
}

const listAllCategories = `-- name: ListAllCategories :many
SELECT ` + categoryColumns + ` FROM categories ORDER BY id`

func (q *Queries) ListAllCategories(ctx context.Context) ([]Category, error) {
	return q.queryCategories(ctx, listAllCategories)
}

const updateCategory = `-- name: UpdateCategory :one
UPDATE categories
SET name = $2,
    slug = $3,
    parent_id = $4,
    description = $5
WHERE id = $1
RETURNING ` + categoryColumns

type UpdateCategoryParams struct {
	ID          int64
	Name        string
	Slug        string
	ParentID    *int64
	Description *string
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, updateCategory, arg.ID, arg.Name, arg.Slug, arg.ParentID, arg.Description)
	return scanCategory(row)
}

const deleteCategory = `-- name: DeleteCategory :execrows
DELETE FROM categories WHERE id = $1`

func (q *Queries) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCategory, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countChildCategories = `-- name: CountChildCategories :one
SELECT COUNT(*) FROM categories WHERE parent_id = $1`

func (q *Queries) CountChildCategories(ctx context.Context, parentID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countChildCategories, parentID).Scan(&count)
	return count, err
}

const categorySlugExists = `-- name: CategorySlugExists :one
SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`

func (q *Queries) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, categorySlugExists, slug).Scan(&exists)
	return exists, err
}

const countCategories = `-- name: CountCategories :one
SELECT COUNT(*) FROM categories`

func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countCategories).Scan(&count)
	return count, err
}

const countProductsPerCategory = `-- name: CountProductsPerCategory :many
SELECT c.id, c.name, COUNT(p.id) AS product_count
FROM categories c
LEFT JOIN products p ON p.category_id = c.id
GROUP BY c.id, c.name
ORDER BY c.id`

type CountProductsPerCategoryRow struct {
	CategoryID   int64
	CategoryName string
	ProductCount int64
}

func (q *Queries) CountProductsPerCategory(ctx context.Context) ([]CountProductsPerCategoryRow, error) {
	rows, err := q.db.Query(ctx, countProductsPerCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CountProductsPerCategoryRow{}
	for rows.Next() {
		var i CountProductsPerCategoryRow
		if err := rows.Scan(&i.CategoryID, &i.CategoryName, &i.ProductCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
