package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

const listOrders = `-- name: ListOrders :many
SELECT id, user_id, status, total_amount, created_at FROM orders
ORDER BY created_at DESC, id DESC
OFFSET $1 LIMIT $2`

func (q *Queries) ListOrders(ctx context.Context, arg ListParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders, arg.Offset, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Status,
			&i.TotalAmount,
			&i.CreatedAt,
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

const countOrders = `-- name: CountOrders :one
SELECT COUNT(*) FROM orders`

func (q *Queries) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countOrders).Scan(&count)
	return count, err
}

const sumDeliveredOrders = `-- name: SumDeliveredOrders :one
SELECT COALESCE(SUM(total_amount), 0)::numeric FROM orders WHERE status = 'delivered'`

func (q *Queries) SumDeliveredOrders(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := q.db.QueryRow(ctx, sumDeliveredOrders).Scan(&total)
	return total, err
}
