package services

import (
	"dukaan/internal/models"
	"dukaan/internal/repositories"
)

// Stats is the admin dashboard rollup. Revenue sums total_amount over all
// non-cancelled orders.
type Stats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalUsers    int64   `json:"total_users"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// StatsService computes read-only rollups for the admin dashboard. Values
// are recomputed on every call; data volumes here do not warrant caching.
type StatsService struct {
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) *StatsService {
	return &StatsService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

// GetStats returns the current dashboard numbers.
func (s *StatsService) GetStats() (*Stats, error) {
	products, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	customers, err := s.userRepo.CountByRole(models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.SumRevenue(models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalProducts: products,
		TotalOrders:   orders,
		TotalUsers:    customers,
		TotalRevenue:  revenue,
	}, nil
}
