package repositories

import (
	"dukaan/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	Count() (int64, error)
	// SumRevenue totals total_amount over orders excluding the given status.
	SumRevenue(excludeStatus string) (float64, error)
}
