package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/cache"
	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

// cached summaries go stale quickly; writes also invalidate eagerly
const dashboardCacheTTL = 30 * time.Second

// DashboardSummary aggregates counts and revenue for the landing view
type DashboardSummary struct {
	TotalCustomers int64                        `json:"total_customers"`
	TotalProducts  int64                        `json:"total_products"`
	TotalOrders    int64                        `json:"total_orders"`
	TotalRevenue   float64                      `json:"total_revenue"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"orders_by_status"`
}

// DashboardService computes the aggregated dashboard summary
type DashboardService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	cache        *cache.RedisCache
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, c *cache.RedisCache) *DashboardService {
	return &DashboardService{
		customerRepo: repository.NewCustomerRepository(db),
		productRepo:  repository.NewProductRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
		paymentRepo:  repository.NewPaymentRepository(db),
		cache:        c,
	}
}

// Summary returns the aggregated counts, serving from cache when fresh
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var cached DashboardSummary
	if err := s.cache.Get(ctx, cache.DashboardKey, &cached); err == nil {
		return &cached, nil
	}

	summary := &DashboardSummary{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.customerRepo.Count(gctx)
		summary.TotalCustomers = count
		return err
	})
	g.Go(func() error {
		count, err := s.productRepo.Count(gctx)
		summary.TotalProducts = count
		return err
	})
	g.Go(func() error {
		count, err := s.orderRepo.Count(gctx)
		summary.TotalOrders = count
		return err
	})
	g.Go(func() error {
		total, err := s.paymentRepo.SumAmounts(gctx)
		summary.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		counts, err := s.orderRepo.CountByStatus(gctx)
		summary.OrdersByStatus = counts
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Best effort; a cold cache just recomputes next time.
	_ = s.cache.Set(ctx, cache.DashboardKey, summary, dashboardCacheTTL)

	return summary, nil
}
