package service

import (
	"context"
	"time"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/repository"
)

const (
	dashboardRecentLimit = 5
	registrationDays     = 7
)

type dashboardService struct {
	store      repository.Store
	version    string
	adminEmail string
	now        func() time.Time
}

// NewDashboardService creates the admin read model. version and adminEmail
// are reported by the health check.
func NewDashboardService(store repository.Store, version, adminEmail string) domain.DashboardService {
	return &dashboardService{
		store:      store,
		version:    version,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	const op = "dashboard.stats"

	var stats domain.DashboardStats
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		if stats.TotalUsers, err = q.CountUsers(ctx); err != nil {
			return err
		}
		if stats.TotalProducts, err = q.CountProducts(ctx); err != nil {
			return err
		}
		if stats.TotalCategories, err = q.CountCategories(ctx); err != nil {
			return err
		}
		if stats.TotalVariants, err = q.CountVariants(ctx); err != nil {
			return err
		}
		if stats.TotalOrders, err = q.CountOrders(ctx); err != nil {
			return err
		}
		revenue, err := q.SumDeliveredOrders(ctx)
		if err != nil {
			return err
		}
		stats.EstimatedRevenue = domain.RoundMoney(revenue)

		users, err := q.ListUsers(ctx, repository.ListParams{Limit: dashboardRecentLimit})
		if err != nil {
			return err
		}
		stats.RecentUsers = make([]domain.User, len(users))
		for i, u := range users {
			stats.RecentUsers[i] = *toDomainUser(u)
		}

		orders, err := q.ListOrders(ctx, repository.ListParams{Limit: dashboardRecentLimit})
		if err != nil {
			return err
		}
		stats.RecentOrders = toDomainOrders(orders)

		featured, err := q.ListFeaturedProducts(ctx, dashboardRecentLimit)
		if err != nil {
			return err
		}
		stats.FeaturedProducts, err = loadProductDetails(ctx, q, featured)
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to load dashboard")
	}

	return &stats, nil
}

func (s *dashboardService) Summary(ctx context.Context, now time.Time) (*domain.DashboardSummary, error) {
	const op = "dashboard.summary"

	today := now.UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(registrationDays - 1))

	var summary domain.DashboardSummary
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		days, err := q.CountUsersByDay(ctx, since)
		if err != nil {
			return err
		}
		counts := make(map[string]int64, len(days))
		for _, d := range days {
			counts[d.Day.UTC().Format(time.DateOnly)] += d.Count
		}
		summary.Registrations = make([]domain.DailyCount, registrationDays)
		for i := range registrationDays {
			day := since.AddDate(0, 0, i)
			summary.Registrations[i] = domain.DailyCount{Date: day, Count: counts[day.Format(time.DateOnly)]}
		}

		perCategory, err := q.CountProductsPerCategory(ctx)
		if err != nil {
			return err
		}
		summary.ProductsPerCategory = make([]domain.CategoryCount, len(perCategory))
		for i, c := range perCategory {
			summary.ProductsPerCategory[i] = domain.CategoryCount{
				CategoryID:   c.CategoryID,
				CategoryName: c.CategoryName,
				ProductCount: c.ProductCount,
			}
		}

		dist, err := q.GetProductDistribution(ctx)
		if err != nil {
			return err
		}
		summary.ProductDistribution = domain.ProductDistribution{
			Active:   dist.Active,
			Inactive: dist.Inactive,
			Featured: dist.Featured,
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, op, "failed to load dashboard summary")
	}

	return &summary, nil
}

func (s *dashboardService) ListOrders(ctx context.Context, skip, limit int32) ([]domain.Order, error) {
	skip, limit = page(skip, limit)

	orders, err := s.store.ListOrders(ctx, repository.ListParams{Offset: skip, Limit: limit})
	if err != nil {
		return nil, storeError(err, "dashboard.list_orders", "failed to list orders")
	}
	return toDomainOrders(orders), nil
}

func (s *dashboardService) Health(ctx context.Context) *domain.SystemHealth {
	health := &domain.SystemHealth{
		Status:     "healthy",
		Version:    s.version,
		Database:   "connected",
		AdminEmail: s.adminEmail,
		CheckedAt:  s.now().UTC(),
	}
	if err := s.store.Ping(ctx); err != nil {
		health.Status = "degraded"
		health.Database = "unreachable"
	}
	return health
}

func toDomainOrders(rows []repository.Order) []domain.Order {
	orders := make([]domain.Order, len(rows))
	for i, o := range rows {
		orders[i] = domain.Order{
			ID:          o.ID,
			UserID:      o.UserID,
			Status:      domain.OrderStatus(o.Status),
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		}
	}
	return orders
}
