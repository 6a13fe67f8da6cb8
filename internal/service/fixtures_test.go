package service

import (
	"testing"

	"github.com/dukerupert/tantuka/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

// seedProduct inserts an active product with one variant priced at the base
// price and returns both rows.
func seedProduct(t *testing.T, m *memStore, slug, price, discount string) (repository.Product, repository.ProductVariant) {
	t.Helper()
	ctx := t.Context()

	p, err := m.CreateProduct(ctx, repository.CreateProductParams{
		Name:            slug,
		Slug:            slug,
		BasePrice:       dec(price),
		DiscountPercent: dec(discount),
		IsActive:        true,
	})
	require.NoError(t, err)

	v, err := m.CreateVariant(ctx, repository.CreateVariantParams{
		ProductID: p.ID,
		Sku:       slug + "-sku",
		Price:     dec(price),
		IsActive:  true,
	})
	require.NoError(t, err)

	return p, v
}
