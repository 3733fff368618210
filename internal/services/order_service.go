package services

import (
	"fmt"
	"log"

	"dukaan/internal/apperrors"
	"dukaan/internal/models"
	"dukaan/internal/repositories"

	"dukaan/pkg/rabbitmq"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo        repositories.OrderRepository
	productRepo      repositories.ProductRepository
	cartRepo         repositories.CartRepository
	userRepo         repositories.UserRepository
	transportService *TransportService
	mqClient         *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	cartRepo repositories.CartRepository,
	userRepo repositories.UserRepository,
	transportService *TransportService,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		userRepo:         userRepo,
		transportService: transportService,
		mqClient:         mqClient,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves a user's orders, newest first.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder creates an order from the requested items and shipping
// address. Product name and price are snapshotted per line, stock is
// validated and decremented, the transportation cost is folded into the
// total, a shipment is arranged when a provider is available, and the
// user's cart is cleared.
func (s *OrderService) CreateOrder(userID string, items []OrderItemRequest, shippingAddress string) (*models.Order, error) {
	if shippingAddress == "" {
		return nil, fmt.Errorf("shipping address is required: %w", apperrors.ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// 1. Validate products and snapshot each line at its current price.
	var subtotal float64
	var totalUnits int
	var orderItems []models.OrderItem

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("quantity for product %s must be at least 1: %w", item.ProductID, apperrors.ErrValidation)
		}

		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
				product.Name, item.Quantity, product.Stock, apperrors.ErrInsufficientStock)
		}

		lineTotal := product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     item.Quantity,
			Total:        lineTotal,
		})
		subtotal += lineTotal
		totalUnits += item.Quantity
	}

	// 2. Reserve stock. The conditional decrement re-checks availability,
	// so a concurrent order cannot slip between the check and the write.
	// On failure, restore what was already taken.
	for i, item := range items {
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			for _, taken := range items[:i] {
				if restoreErr := s.productRepo.IncrementStock(taken.ProductID, taken.Quantity); restoreErr != nil {
					log.Printf("Failed to restore stock for product %s: %v", taken.ProductID, restoreErr)
				}
			}
			return nil, err
		}
	}

	// 3. Estimate the transportation cost and fold it into the total.
	estimate, err := s.transportService.EstimateCost(shippingAddress, totalUnits)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate transportation cost: %w", err)
	}

	newOrder := &models.Order{
		UserID:             user.ID,
		UserName:           user.Name,
		UserEmail:          user.Email,
		Items:              orderItems,
		TotalAmount:        subtotal + estimate.Cost,
		TransportationCost: estimate.Cost,
		Status:             models.OrderStatusPending,
		ShippingAddress:    shippingAddress,
	}
	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	// 4. Arrange a shipment when a real provider produced the estimate.
	if estimate.ProviderID != "" {
		if _, err := s.transportService.CreateShipment(newOrder.ID, estimate.ProviderID); err != nil {
			log.Printf("Warning: Failed to create shipment for order %s: %v", newOrder.ID, err)
		} else if err := s.orderRepo.UpdateStatus(newOrder.ID, models.OrderStatusConfirmed); err != nil {
			log.Printf("Warning: Failed to confirm order %s: %v", newOrder.ID, err)
		} else {
			newOrder.Status = models.OrderStatusConfirmed
		}
	}

	// 5. Clear the cart; the order now owns the items.
	if err := s.cartRepo.DeleteByUser(userID); err != nil {
		log.Printf("Warning: Failed to clear cart for user %s: %v", userID, err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID": newOrder.ID,
		"userID":  newOrder.UserID,
		"status":  newOrder.Status,
		"total":   newOrder.TotalAmount,
	})

	return newOrder, nil
}

// validOrderStatuses are the statuses an admin may set directly.
var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusConfirmed:  true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// UpdateOrderStatus updates the status of an existing order. Cancelling an
// order restores the stock its lines had reserved.
func (s *OrderService) UpdateOrderStatus(id string, status string) (*models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, fmt.Errorf("invalid order status %q: %w", status, apperrors.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if status == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
		for _, item := range order.Items {
			if err := s.productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				log.Printf("Failed to restore stock for product %s on cancellation: %v", item.ProductID, err)
			}
		}
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.publishEvent("order.status_updated", map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
	})

	return order, nil
}

// publishEvent publishes an order event, skipping silently when no message
// queue client is configured.
func (s *OrderService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}
	if err := s.mqClient.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
