package repositories

import (
	"dukaan/internal/models"
)

// ProductFilter narrows a product listing. Zero values mean no filtering.
type ProductFilter struct {
	Search     string // case-insensitive match against name and description
	CategoryID string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	Count() (int64, error)
	// DecrementStock atomically subtracts qty from the product's stock and
	// fails when the product is missing or has less than qty in stock.
	DecrementStock(id string, qty int) error
	IncrementStock(id string, qty int) error
}
