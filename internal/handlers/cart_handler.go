package handlers

import (
	"log"

	"dukaan/internal/middleware"
	"dukaan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	service          *services.CartService
	transportService *services.TransportService
	validate         *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, transportService *services.TransportService) *CartHandler {
	return &CartHandler{
		service:          service,
		transportService: transportService,
		validate:         validator.New(),
	}
}

// RegisterRoutes registers the cart routes. All cart routes require
// authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	cartRoutes := router.Group("/cart", requireAuth)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Get("/total", h.HandleGetTotal)
	cartRoutes.Post("/transportation-cost", h.HandleTransportationCost)
	cartRoutes.Put("/:productId", h.HandleSetQuantity)
	cartRoutes.Delete("/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the current user's cart lines with live product data.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	lines, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return respondError(c, "Could not retrieve cart", err)
	}
	return c.JSON(lines)
}

// AddCartItemRequest represents the request body for adding an item to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// HandleAddItem adds a product to the cart, incrementing the quantity when
// the product is already present.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := middleware.UserID(c)
	if err := h.service.AddItem(userID, req.ProductID, req.Quantity); err != nil {
		log.Printf("Error adding product %s to cart for user %s: %v", req.ProductID, userID, err)
		return respondError(c, "Could not add item to cart", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart",
	})
}

// HandleSetQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line. Quantity is passed as a query parameter.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	quantity := c.QueryInt("quantity", -1)
	if quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'quantity' is required and must be a non-negative integer",
		})
	}

	userID := middleware.UserID(c)
	if err := h.service.SetQuantity(userID, productID, quantity); err != nil {
		log.Printf("Error updating cart quantity for user %s product %s: %v", userID, productID, err)
		return respondError(c, "Could not update cart item", err)
	}

	return c.JSON(fiber.Map{
		"message": "Cart updated",
	})
}

// HandleRemoveItem removes a product from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	userID := middleware.UserID(c)
	if err := h.service.RemoveItem(userID, productID); err != nil {
		log.Printf("Error removing product %s from cart for user %s: %v", productID, userID, err)
		return respondError(c, "Could not remove item from cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}

// HandleClearCart removes all items from the current user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if err := h.service.ClearCart(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}

// HandleGetTotal returns the cart total computed against live product prices.
func (h *CartHandler) HandleGetTotal(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	total, err := h.service.Total(userID)
	if err != nil {
		log.Printf("Error totaling cart for user %s: %v", userID, err)
		return respondError(c, "Could not calculate cart total", err)
	}
	return c.JSON(fiber.Map{
		"total": total,
	})
}

// TransportationCostRequest represents the request body for a delivery cost
// estimate against the current cart contents.
type TransportationCostRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=5"`
}

// HandleTransportationCost estimates the delivery cost for the current cart
// to the given shipping address.
func (h *CartHandler) HandleTransportationCost(c *fiber.Ctx) error {
	var req TransportationCostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing transportation cost request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := middleware.UserID(c)
	lines, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return respondError(c, "Could not retrieve cart", err)
	}

	totalUnits := 0
	for _, line := range lines {
		totalUnits += line.Quantity
	}

	estimate, err := h.transportService.EstimateCost(req.ShippingAddress, totalUnits)
	if err != nil {
		log.Printf("Error estimating transportation cost for user %s: %v", userID, err)
		return respondError(c, "Could not estimate transportation cost", err)
	}

	return c.JSON(estimate)
}
