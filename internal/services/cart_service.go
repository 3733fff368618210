package services

import (
	"fmt"
	"log"

	"dukaan/internal/models"
	"dukaan/internal/repositories"
)

// CartService handles business logic related to shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart lines joined with their current product
// records. Lines whose product has been deleted in the meantime are
// skipped.
func (s *CartService) GetCart(userID string) ([]models.CartLine, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			log.Printf("Skipping cart line for missing product %s: %v", item.ProductID, err)
			continue
		}
		lines = append(lines, models.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   *product,
		})
	}
	return lines, nil
}

// AddItem adds qty of a product to the user's cart. An existing line for
// the product is incremented; otherwise a new line is created. The product
// must exist.
func (s *CartService) AddItem(userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}

	if _, err := s.productRepo.GetByID(productID); err != nil {
		return fmt.Errorf("cannot add to cart: %w", err)
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err == nil && existing != nil {
		return s.cartRepo.UpdateQuantity(userID, productID, existing.Quantity+qty)
	}

	return s.cartRepo.Create(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	})
}

// SetQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line.
func (s *CartService) SetQuantity(userID, productID string, qty int) error {
	if qty <= 0 {
		return s.cartRepo.Delete(userID, productID)
	}
	return s.cartRepo.UpdateQuantity(userID, productID, qty)
}

// RemoveItem deletes the line for a product. Idempotent.
func (s *CartService) RemoveItem(userID, productID string) error {
	return s.cartRepo.Delete(userID, productID)
}

// ClearCart removes every line of the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.DeleteByUser(userID)
}

// Total computes the cart total from live catalog prices, not prices frozen
// at add time.
func (s *CartService) Total(userID string) (float64, error) {
	lines, err := s.GetCart(userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, line := range lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total, nil
}
