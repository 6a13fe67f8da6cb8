package service

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	store := newMemStore()
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := store.CreateUser(t.Context(), repository.CreateUserParams{Email: email, Role: "customer", IsActive: true})
		require.NoError(t, err)
	}
	featured, _ := seedProduct(t, store, "featured", "10.00", "0")
	featured.IsFeatured = true
	store.products[featured.ID] = featured
	seedProduct(t, store, "plain", "5.00", "0")

	store.orders[100] = repository.Order{ID: 100, Status: "delivered", TotalAmount: dec("10.005")}
	store.orders[101] = repository.Order{ID: 101, Status: "delivered", TotalAmount: dec("20.00")}
	store.orders[102] = repository.Order{ID: 102, Status: "pending", TotalAmount: dec("99.00")}

	stats, err := NewDashboardService(store, "1.0.0", "admin@example.com").Stats(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalVariants)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, "30.00", stats.EstimatedRevenue.StringFixed(2))
	assert.Len(t, stats.RecentUsers, 2)
	require.Len(t, stats.RecentOrders, 3)
	assert.Equal(t, int64(102), stats.RecentOrders[0].ID)
	require.Len(t, stats.FeaturedProducts, 1)
	assert.Equal(t, "featured", stats.FeaturedProducts[0].Slug)
}

func TestDashboardService_Summary(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	for _, at := range []time.Time{
		now.Add(-1 * time.Hour),
		now.Add(-2 * time.Hour),
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -30),
	} {
		store.now = at
		_, err := store.CreateUser(t.Context(), repository.CreateUserParams{Email: at.String(), Role: "customer"})
		require.NoError(t, err)
	}

	cat, err := store.CreateCategory(t.Context(), repository.CreateCategoryParams{Name: "Shoes", Slug: "shoes"})
	require.NoError(t, err)
	p, _ := seedProduct(t, store, "boot", "1.00", "0")
	p.CategoryID = &cat.ID
	p.IsFeatured = true
	store.products[p.ID] = p
	inactive, _ := seedProduct(t, store, "retired", "1.00", "0")
	inactive.IsActive = false
	store.products[inactive.ID] = inactive

	summary, err := NewDashboardService(store, "", "").Summary(t.Context(), now)
	require.NoError(t, err)

	require.Len(t, summary.Registrations, 7)
	assert.Equal(t, "2025-06-04", summary.Registrations[0].Date.Format(time.DateOnly))
	assert.Equal(t, "2025-06-10", summary.Registrations[6].Date.Format(time.DateOnly))
	assert.Equal(t, int64(2), summary.Registrations[6].Count)
	assert.Equal(t, int64(1), summary.Registrations[3].Count)
	var total int64
	for _, d := range summary.Registrations {
		total += d.Count
	}
	assert.Equal(t, int64(3), total)

	require.Len(t, summary.ProductsPerCategory, 1)
	assert.Equal(t, int64(1), summary.ProductsPerCategory[0].ProductCount)
	assert.Equal(t, domain.ProductDistribution{Active: 1, Inactive: 1, Featured: 1}, summary.ProductDistribution)
}

func TestDashboardService_ListOrders(t *testing.T) {
	store := newMemStore()
	for id := int64(1); id <= 3; id++ {
		store.orders[id] = repository.Order{ID: id, Status: "paid", TotalAmount: dec("1")}
	}

	orders, err := NewDashboardService(store, "", "").ListOrders(t.Context(), 1, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(2), orders[0].ID)
	assert.Equal(t, domain.OrderStatusPaid, orders[0].Status)
}

func TestDashboardService_Health(t *testing.T) {
	store := newMemStore()
	svc := NewDashboardService(store, "1.2.3", "admin@example.com")

	health := svc.Health(t.Context())
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Equal(t, "1.2.3", health.Version)

	store.pingErr = errors.New("connection refused")
	health = svc.Health(t.Context())
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "unreachable", health.Database)
}
