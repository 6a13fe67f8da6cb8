package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const productColumns = `id, name, slug, description, category_id, brand, base_price, discount_percent, is_active, is_featured, metadata, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Description,
		&i.CategoryID,
		&i.Brand,
		&i.BasePrice,
		&i.DiscountPercent,
		&i.IsActive,
		&i.IsFeatured,
		&i.Metadata,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryProducts(ctx context.Context, sql string, args ...interface{}) ([]Product, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
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

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (name, slug, description, category_id, brand, base_price, discount_percent, is_active, is_featured, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + productColumns

type CreateProductParams struct {
	Name            string
	Slug            string
	Description     *string
	CategoryID      *int64
	Brand           *string
	BasePrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	IsActive        bool
	IsFeatured      bool
	Metadata        []byte
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.Name,
		arg.Slug,
		arg.Description,
		arg.CategoryID,
		arg.Brand,
		arg.BasePrice,
		arg.DiscountPercent,
		arg.IsActive,
		arg.IsFeatured,
		arg.Metadata,
	)
	return scanProduct(row)
}

const getProductByID = `-- name: GetProductByID :one
SELECT ` + productColumns + ` FROM products WHERE id = $1`

func (q *Queries) GetProductByID(ctx context.Context, id int64) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, getProductByID, id))
}

const getProductBySlug = `-- name: GetProductBySlug :one
SELECT ` + productColumns + ` FROM products WHERE slug = $1`

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, getProductBySlug, slug))
}

// ListProductsParams filters a product listing. Nil pointers disable a filter.
// SortBy must be one of the columns in productSortColumns; anything else sorts
// by created_at.
type ListProductsParams struct {
	Offset     int32
	Limit      int32
	CategoryID *int64
	Search     *string
	IsActive   *bool
	IsFeatured *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     string
	SortDesc   bool
}

var productSortColumns = map[string]string{
	"name":             "name",
	"base_price":       "base_price",
	"discount_percent": "discount_percent",
	"created_at":       "created_at",
	"updated_at":       "updated_at",
}

func buildListProducts(arg ListProductsParams) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if arg.CategoryID != nil {
		add("category_id = $%d", *arg.CategoryID)
	}
	if arg.Search != nil && *arg.Search != "" {
		args = append(args, *arg.Search)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%' OR brand ILIKE '%%' || $%d || '%%')",
			n, n, n))
	}
	if arg.IsActive != nil {
		add("is_active = $%d", *arg.IsActive)
	}
	if arg.IsFeatured != nil {
		add("is_featured = $%d", *arg.IsFeatured)
	}
	if arg.MinPrice != nil {
		add("base_price >= $%d", *arg.MinPrice)
	}
	if arg.MaxPrice != nil {
		add("base_price <= $%d", *arg.MaxPrice)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(" FROM products")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	column, ok := productSortColumns[arg.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if arg.SortDesc {
		direction = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, id %s", column, direction, direction)

	args = append(args, arg.Offset, arg.Limit)
	fmt.Fprintf(&sb, " OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	return sb.String(), args
}

func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]Product, error) {
	sql, args := buildListProducts(arg)
	return q.queryProducts(ctx, sql, args...)
}

const listFeaturedProducts = `-- name: ListFeaturedProducts :many
SELECT ` + productColumns + ` FROM products
WHERE is_featured AND is_active
ORDER BY created_at DESC, id DESC
LIMIT $1`

func (q *Queries) ListFeaturedProducts(ctx context.Context, limit int32) ([]Product, error) {
	return q.queryProducts(ctx, listFeaturedProducts, limit)
}

const updateProduct = `-- name: UpdateProduct :one
UPDATE products
SET name = $2,
    slug = $3,
    description = $4,
    category_id = $5,
    brand = $6,
    base_price = $7,
    discount_percent = $8,
    is_active = $9,
    is_featured = $10,
    metadata = $11,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + productColumns

type UpdateProductParams struct {
	ID              int64
	Name            string
	Slug            string
	Description     *string
	CategoryID      *int64
	Brand           *string
	BasePrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	IsActive        bool
	IsFeatured      bool
	Metadata        []byte
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct,
		arg.ID,
		arg.Name,
		arg.Slug,
		arg.Description,
		arg.CategoryID,
		arg.Brand,
		arg.BasePrice,
		arg.DiscountPercent,
		arg.IsActive,
		arg.IsFeatured,
		arg.Metadata,
	)
	return scanProduct(row)
}

const deleteProduct = `-- name: DeleteProduct :execrows
DELETE FROM products WHERE id = $1`

func (q *Queries) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const productSlugExists = `-- name: ProductSlugExists :one
SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`

func (q *Queries) ProductSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, productSlugExists, slug).Scan(&exists)
	return exists, err
}

const countProducts = `-- name: CountProducts :one
SELECT COUNT(*) FROM products`

func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countProducts).Scan(&count)
	return count, err
}

const getProductDistribution = `-- name: GetProductDistribution :one
SELECT
    COUNT(*) FILTER (WHERE is_active)     AS active,
    COUNT(*) FILTER (WHERE NOT is_active) AS inactive,
    COUNT(*) FILTER (WHERE is_featured)   AS featured
FROM products`

type ProductDistributionRow struct {
	Active   int64
	Inactive int64
	Featured int64
}

func (q *Queries) GetProductDistribution(ctx context.Context) (ProductDistributionRow, error) {
	var i ProductDistributionRow
	err := q.db.QueryRow(ctx, getProductDistribution).Scan(&i.Active, &i.Inactive, &i.Featured)
	return i, err
}

// variants

const variantColumns = `id, product_id, sku, variant_name, price, stock_qty, attributes, is_active`

func scanVariant(row interface{ Scan(...any) error }) (ProductVariant, error) {
	var i ProductVariant
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.Sku,
		&i.VariantName,
		&i.Price,
		&i.StockQty,
		&i.Attributes,
		&i.IsActive,
	)
	return i, err
}

const createVariant = `-- name: CreateVariant :one
INSERT INTO product_variants (product_id, sku, variant_name, price, stock_qty, attributes, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + variantColumns

type CreateVariantParams struct {
	ProductID   int64
	Sku         string
	VariantName *string
	Price       decimal.Decimal
	StockQty    int32
	Attributes  []byte
	IsActive    bool
}

func (q *Queries) CreateVariant(ctx context.Context, arg CreateVariantParams) (ProductVariant, error) {
	row := q.db.QueryRow(ctx, createVariant,
		arg.ProductID,
		arg.Sku,
		arg.VariantName,
		arg.Price,
		arg.StockQty,
		arg.Attributes,
		arg.IsActive,
	)
	return scanVariant(row)
}

const getActiveVariant = `-- name: GetActiveVariant :one
SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1 AND is_active`

func (q *Queries) GetActiveVariant(ctx context.Context, id int64) (ProductVariant, error) {
	return scanVariant(q.db.QueryRow(ctx, getActiveVariant, id))
}

const listVariantsByProductIDs = `-- name: ListVariantsByProductIDs :many
SELECT ` + variantColumns + ` FROM product_variants
WHERE product_id = ANY($1::bigint[])
ORDER BY product_id, id`

func (q *Queries) ListVariantsByProductIDs(ctx context.Context, productIDs []int64) ([]ProductVariant, error) {
	rows, err := q.db.Query(ctx, listVariantsByProductIDs, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductVariant{}
	for rows.Next() {
		i, err := scanVariant(rows)
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

const countVariants = `-- name: CountVariants :one
SELECT COUNT(*) FROM product_variants`

func (q *Queries) CountVariants(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countVariants).Scan(&count)
	return count, err
}

// images

const imageColumns = `id, product_id, image_url, alt_text, is_primary, sort_order`

func scanImage(row interface{ Scan(...any) error }) (ProductImage, error) {
	var i ProductImage
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.ImageUrl,
		&i.AltText,
		&i.IsPrimary,
		&i.SortOrder,
	)
	return i, err
}

const createImage = `-- name: CreateImage :one
INSERT INTO product_images (product_id, image_url, alt_text, is_primary, sort_order)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + imageColumns

type CreateImageParams struct {
	ProductID int64
	ImageUrl  string
	AltText   *string
	IsPrimary bool
	SortOrder int32
}

func (q *Queries) CreateImage(ctx context.Context, arg CreateImageParams) (ProductImage, error) {
	row := q.db.QueryRow(ctx, createImage,
		arg.ProductID,
		arg.ImageUrl,
		arg.AltText,
		arg.IsPrimary,
		arg.SortOrder,
	)
	return scanImage(row)
}

const clearPrimaryImages = `-- name: ClearPrimaryImages :exec
UPDATE product_images SET is_primary = FALSE WHERE product_id = $1 AND is_primary`

func (q *Queries) ClearPrimaryImages(ctx context.Context, productID int64) error {
	_, err := q.db.Exec(ctx, clearPrimaryImages, productID)
	return err
}

const listImagesByProductIDs = `-- name: ListImagesByProductIDs :many
SELECT ` + imageColumns + ` FROM product_images
WHERE product_id = ANY($1::bigint[])
ORDER BY product_id, sort_order, id`

func (q *Queries) ListImagesByProductIDs(ctx context.Context, productIDs []int64) ([]ProductImage, error) {
	rows, err := q.db.Query(ctx, listImagesByProductIDs, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductImage{}
	for rows.Next() {
		i, err := scanImage(rows)
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
