package repositories

import (
	"dukaan/internal/models"
)

// CartRepository defines the interface for cart line data access. A cart is
// the set of lines sharing a user ID; there is at most one line per
// (user, product) pair.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetByUserAndProduct(userID, productID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(userID, productID string, quantity int) error
	Delete(userID, productID string) error
	DeleteByUser(userID string) error
}
