package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

const getCartByUserID = `-- name: GetCartByUserID :one
SELECT id, user_id, created_at, updated_at FROM carts
WHERE user_id = $1
ORDER BY id
LIMIT 1`

func (q *Queries) GetCartByUserID(ctx context.Context, userID int64) (Cart, error) {
	var i Cart
	err := q.db.QueryRow(ctx, getCartByUserID, userID).Scan(
		&i.ID,
		&i.UserID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertCartIfAbsent = `-- name: InsertCartIfAbsent :exec
INSERT INTO carts (user_id) VALUES ($1)
ON CONFLICT (user_id) DO NOTHING`

// InsertCartIfAbsent creates the user's cart unless one already exists. Two
// concurrent callers both succeed and end up reading the same row.
func (q *Queries) InsertCartIfAbsent(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, insertCartIfAbsent, userID)
	return err
}

const touchCart = `-- name: TouchCart :exec
UPDATE carts SET updated_at = NOW() WHERE id = $1`

func (q *Queries) TouchCart(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, touchCart, id)
	return err
}

const upsertCartItem = `-- name: UpsertCartItem :one
INSERT INTO cart_items (cart_id, variant_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, variant_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id, cart_id, variant_id, quantity`

type UpsertCartItemParams struct {
	CartID    int64
	VariantID int64
	Quantity  int32
}

// UpsertCartItem inserts a line or adds to the quantity of the existing line
// for the same variant.
func (q *Queries) UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (CartItem, error) {
	var i CartItem
	err := q.db.QueryRow(ctx, upsertCartItem, arg.CartID, arg.VariantID, arg.Quantity).Scan(
		&i.ID,
		&i.CartID,
		&i.VariantID,
		&i.Quantity,
	)
	return i, err
}

const updateCartItemQuantity = `-- name: UpdateCartItemQuantity :one
UPDATE cart_items SET quantity = $3
WHERE id = $1 AND cart_id = $2
RETURNING id, cart_id, variant_id, quantity`

type UpdateCartItemQuantityParams struct {
	ID       int64
	CartID   int64
	Quantity int32
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error) {
	var i CartItem
	err := q.db.QueryRow(ctx, updateCartItemQuantity, arg.ID, arg.CartID, arg.Quantity).Scan(
		&i.ID,
		&i.CartID,
		&i.VariantID,
		&i.Quantity,
	)
	return i, err
}

const deleteCartItem = `-- name: DeleteCartItem :execrows
DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`

type DeleteCartItemParams struct {
	ID     int64
	CartID int64
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItem, arg.ID, arg.CartID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const clearCartItems = `-- name: ClearCartItems :execrows
DELETE FROM cart_items WHERE cart_id = $1`

func (q *Queries) ClearCartItems(ctx context.Context, cartID int64) (int64, error) {
	result, err := q.db.Exec(ctx, clearCartItems, cartID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getCartLines = `-- name: GetCartLines :many
SELECT
    ci.id,
    ci.cart_id,
    ci.variant_id,
    ci.quantity,
    pv.price,
    pv.variant_name,
    p.name AS product_name,
    p.slug AS product_slug,
    p.discount_percent,
    pi.image_url
FROM cart_items ci
JOIN product_variants pv ON pv.id = ci.variant_id
JOIN products p ON p.id = pv.product_id
LEFT JOIN LATERAL (
    SELECT image_url FROM product_images
    WHERE product_id = p.id AND is_primary
    ORDER BY id
    LIMIT 1
) pi ON TRUE
WHERE ci.cart_id = $1
ORDER BY ci.id`

type GetCartLinesRow struct {
	ID              int64
	CartID          int64
	VariantID       int64
	Quantity        int32
	Price           decimal.Decimal
	VariantName     *string
	ProductName     string
	ProductSlug     string
	DiscountPercent decimal.Decimal
	ImageUrl        *string
}

func (q *Queries) GetCartLines(ctx context.Context, cartID int64) ([]GetCartLinesRow, error) {
	rows, err := q.db.Query(ctx, getCartLines, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetCartLinesRow{}
	for rows.Next() {
		var i GetCartLinesRow
		if err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.VariantID,
			&i.Quantity,
			&i.Price,
			&i.VariantName,
			&i.ProductName,
			&i.ProductSlug,
			&i.DiscountPercent,
			&i.ImageUrl,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
