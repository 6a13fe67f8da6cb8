package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers       int64           `json:"total_users"`
	TotalProducts    int64           `json:"total_products"`
	TotalCategories  int64           `json:"total_categories"`
	TotalVariants    int64           `json:"total_variants"`
	TotalOrders      int64           `json:"total_orders"`
	EstimatedRevenue decimal.Decimal `json:"estimated_revenue"`
	RecentUsers      []User          `json:"recent_users"`
	RecentOrders     []Order         `json:"recent_orders"`
	FeaturedProducts []ProductDetail `json:"featured_products"`
}

// DailyCount is the number of events on one calendar day.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// CategoryCount is the number of products in one category.
type CategoryCount struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	ProductCount int64  `json:"product_count"`
}

// ProductDistribution splits the catalog by status flags.
type ProductDistribution struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Featured int64 `json:"featured"`
}

// DashboardSummary feeds the admin charts.
type DashboardSummary struct {
	Registrations       []DailyCount        `json:"registrations"`
	ProductsPerCategory []CategoryCount     `json:"products_per_category"`
	ProductDistribution ProductDistribution `json:"product_distribution"`
}

// SystemHealth reports whether the backend can reach its store.
type SystemHealth struct {
	Status     string    `json:"status"`
	Version    string    `json:"version"`
	Database   string    `json:"database"`
	AdminEmail string    `json:"admin_email"`
	CheckedAt  time.Time `json:"checked_at"`
}

// DashboardService provides the read-only admin views.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	Summary(ctx context.Context, now time.Time) (*DashboardSummary, error)
	ListOrders(ctx context.Context, skip, limit int32) ([]Order, error)
	Health(ctx context.Context) *SystemHealth
}
