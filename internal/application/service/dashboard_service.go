package service

import (
	"context"
	"time"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/internal/domain/repository"
	"github.com/DWRSH/point-of-sale/pkg/money"
)

// DashboardService aggregates counter statistics for the storefront overview
type DashboardService struct {
	saleRepo      repository.SaleRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	lowStockLimit int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	lowStockLimit int,
) *DashboardService {
	return &DashboardService{
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		lowStockLimit: lowStockLimit,
	}
}

// DashboardStats is the storefront overview payload
type DashboardStats struct {
	TodaySalesTotal float64          `json:"today_sales_total"`
	TodaySalesCount int64            `json:"today_sales_count"`
	TotalCustomers  int64            `json:"total_customers"`
	LowStockItems   []entity.Product `json:"low_stock_items"`
}

// GetStats computes today's sales totals, the customer count and the list of
// products running low
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	salesTotal, salesCount, err := s.saleRepo.TotalsSince(ctx, todayStart)
	if err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx, s.lowStockLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodaySalesTotal: money.ToFloat(salesTotal),
		TodaySalesCount: salesCount,
		TotalCustomers:  customers,
		LowStockItems:   lowStock,
	}, nil
}
