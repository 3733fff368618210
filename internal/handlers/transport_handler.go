package handlers

import (
	"log"
	"time"

	"dukaan/internal/middleware"
	"dukaan/internal/models"
	"dukaan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TransportHandler handles HTTP requests for transportation providers,
// vehicles, shipments, delivery routes and public tracking.
type TransportHandler struct {
	service  *services.TransportService
	validate *validator.Validate
}

// NewTransportHandler creates a new TransportHandler.
func NewTransportHandler(service *services.TransportService) *TransportHandler {
	return &TransportHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public and customer-facing transportation
// routes.
func (h *TransportHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/track/:trackingNumber", h.HandleTrackShipment)
	router.Get("/orders/:id/shipment", requireAuth, h.HandleGetOrderShipment)
}

// RegisterAdminRoutes registers the transportation management routes on an
// already admin-protected router group.
func (h *TransportHandler) RegisterAdminRoutes(admin fiber.Router) {
	transport := admin.Group("/transportation")

	transport.Get("/providers", h.HandleGetProviders)
	transport.Post("/providers", h.HandleCreateProvider)
	transport.Put("/providers/:id", h.HandleUpdateProvider)
	transport.Delete("/providers/:id", h.HandleDeactivateProvider)

	transport.Get("/vehicles", h.HandleGetVehicles)
	transport.Post("/vehicles", h.HandleCreateVehicle)
	transport.Put("/vehicles/:id", h.HandleUpdateVehicle)
	transport.Delete("/vehicles/:id", h.HandleDeactivateVehicle)

	transport.Get("/shipments", h.HandleGetShipments)
	transport.Post("/shipments", h.HandleCreateShipment)
	transport.Put("/shipments/:id/status", h.HandleUpdateShipmentStatus)

	transport.Get("/routes", h.HandleGetRoutes)
	transport.Post("/routes", h.HandleCreateRoute)
	transport.Put("/routes/:id/status", h.HandleUpdateRouteStatus)
}

// HandleTrackShipment returns tracking information for a tracking number.
// This endpoint is public.
func (h *TransportHandler) HandleTrackShipment(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")
	info, err := h.service.TrackShipment(trackingNumber)
	if err != nil {
		log.Printf("Error tracking shipment %s: %v", trackingNumber, err)
		return respondError(c, "Could not track shipment", err)
	}
	return c.JSON(info)
}

// HandleGetOrderShipment returns the shipment attached to an order. Customers
// can only see shipments for their own orders.
func (h *TransportHandler) HandleGetOrderShipment(c *fiber.Ctx) error {
	orderID := c.Params("id")
	info, err := h.service.GetOrderShipment(orderID, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		log.Printf("Error getting shipment for order %s: %v", orderID, err)
		return respondError(c, "Could not retrieve shipment", err)
	}
	return c.JSON(info)
}

// ProviderRequest represents the request body for creating or updating a
// transportation provider.
type ProviderRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	ServiceType   string   `json:"service_type" validate:"required"`
	BaseCost      float64  `json:"base_cost" validate:"gte=0"`
	CostPerKM     float64  `json:"cost_per_km" validate:"gte=0"`
	EstimatedDays int      `json:"estimated_days" validate:"required,gte=1"`
	ServiceAreas  []string `json:"service_areas"`
}

// HandleGetProviders lists all transportation providers.
func (h *TransportHandler) HandleGetProviders(c *fiber.Ctx) error {
	providers, err := h.service.GetProviders()
	if err != nil {
		log.Printf("Error getting providers: %v", err)
		return respondError(c, "Could not retrieve providers", err)
	}
	return c.JSON(providers)
}

// HandleCreateProvider creates a transportation provider.
func (h *TransportHandler) HandleCreateProvider(c *fiber.Ctx) error {
	var req ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing provider request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	provider := models.TransportationProvider{
		Name:          req.Name,
		ServiceType:   req.ServiceType,
		BaseCost:      req.BaseCost,
		CostPerKM:     req.CostPerKM,
		EstimatedDays: req.EstimatedDays,
		ServiceAreas:  req.ServiceAreas,
	}
	if err := h.service.CreateProvider(&provider); err != nil {
		log.Printf("Error creating provider: %v", err)
		return respondError(c, "Could not create provider", err)
	}

	return c.Status(fiber.StatusCreated).JSON(provider)
}

// HandleUpdateProvider updates a transportation provider.
func (h *TransportHandler) HandleUpdateProvider(c *fiber.Ctx) error {
	var req ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing provider request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	provider := models.TransportationProvider{
		ID:            c.Params("id"),
		Name:          req.Name,
		ServiceType:   req.ServiceType,
		BaseCost:      req.BaseCost,
		CostPerKM:     req.CostPerKM,
		EstimatedDays: req.EstimatedDays,
		ServiceAreas:  req.ServiceAreas,
	}
	if err := h.service.UpdateProvider(&provider); err != nil {
		log.Printf("Error updating provider %s: %v", provider.ID, err)
		return respondError(c, "Could not update provider", err)
	}

	return c.JSON(provider)
}

// HandleDeactivateProvider deactivates a transportation provider.
func (h *TransportHandler) HandleDeactivateProvider(c *fiber.Ctx) error {
	providerID := c.Params("id")
	if err := h.service.DeactivateProvider(providerID); err != nil {
		log.Printf("Error deactivating provider %s: %v", providerID, err)
		return respondError(c, "Could not deactivate provider", err)
	}
	return c.JSON(fiber.Map{
		"message": "Provider deactivated",
	})
}

// VehicleRequest represents the request body for creating or updating a
// vehicle.
type VehicleRequest struct {
	ProviderID      string `json:"provider_id" validate:"required"`
	VehicleNumber   string `json:"vehicle_number" validate:"required"`
	DriverName      string `json:"driver_name" validate:"required"`
	VehicleType     string `json:"vehicle_type" validate:"required,oneof=truck van bike"`
	Capacity        int    `json:"capacity" validate:"required,gte=1"`
	CurrentLocation string `json:"current_location"`
}

// HandleGetVehicles lists all vehicles.
func (h *TransportHandler) HandleGetVehicles(c *fiber.Ctx) error {
	vehicles, err := h.service.GetVehicles()
	if err != nil {
		log.Printf("Error getting vehicles: %v", err)
		return respondError(c, "Could not retrieve vehicles", err)
	}
	return c.JSON(vehicles)
}

// HandleCreateVehicle creates a vehicle for a provider.
func (h *TransportHandler) HandleCreateVehicle(c *fiber.Ctx) error {
	var req VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing vehicle request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	vehicle := models.Vehicle{
		ProviderID:      req.ProviderID,
		VehicleNumber:   req.VehicleNumber,
		DriverName:      req.DriverName,
		VehicleType:     req.VehicleType,
		Capacity:        req.Capacity,
		CurrentLocation: req.CurrentLocation,
	}
	if err := h.service.CreateVehicle(&vehicle); err != nil {
		log.Printf("Error creating vehicle: %v", err)
		return respondError(c, "Could not create vehicle", err)
	}

	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// HandleUpdateVehicle updates a vehicle.
func (h *TransportHandler) HandleUpdateVehicle(c *fiber.Ctx) error {
	var req VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing vehicle request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	vehicle := models.Vehicle{
		ID:              c.Params("id"),
		ProviderID:      req.ProviderID,
		VehicleNumber:   req.VehicleNumber,
		DriverName:      req.DriverName,
		VehicleType:     req.VehicleType,
		Capacity:        req.Capacity,
		CurrentLocation: req.CurrentLocation,
	}
	if err := h.service.UpdateVehicle(&vehicle); err != nil {
		log.Printf("Error updating vehicle %s: %v", vehicle.ID, err)
		return respondError(c, "Could not update vehicle", err)
	}

	return c.JSON(vehicle)
}

// HandleDeactivateVehicle deactivates a vehicle.
func (h *TransportHandler) HandleDeactivateVehicle(c *fiber.Ctx) error {
	vehicleID := c.Params("id")
	if err := h.service.DeactivateVehicle(vehicleID); err != nil {
		log.Printf("Error deactivating vehicle %s: %v", vehicleID, err)
		return respondError(c, "Could not deactivate vehicle", err)
	}
	return c.JSON(fiber.Map{
		"message": "Vehicle deactivated",
	})
}

// HandleGetShipments lists all shipments.
func (h *TransportHandler) HandleGetShipments(c *fiber.Ctx) error {
	shipments, err := h.service.GetShipments()
	if err != nil {
		log.Printf("Error getting shipments: %v", err)
		return respondError(c, "Could not retrieve shipments", err)
	}
	return c.JSON(shipments)
}

// CreateShipmentRequest represents the request body for manually creating a
// shipment for an order.
type CreateShipmentRequest struct {
	OrderID    string `json:"order_id" validate:"required"`
	ProviderID string `json:"provider_id" validate:"required"`
}

// HandleCreateShipment creates a shipment for an order with a chosen
// provider. Orders placed through checkout normally get a shipment
// automatically.
func (h *TransportHandler) HandleCreateShipment(c *fiber.Ctx) error {
	var req CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing shipment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	shipment, err := h.service.CreateShipment(req.OrderID, req.ProviderID)
	if err != nil {
		log.Printf("Error creating shipment for order %s: %v", req.OrderID, err)
		return respondError(c, "Could not create shipment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// UpdateShipmentStatusRequest represents the request body for a shipment
// status change.
type UpdateShipmentStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	DeliveryNotes string `json:"delivery_notes"`
}

// HandleUpdateShipmentStatus advances a shipment's status. Statuses only
// move forward; marking a shipment delivered also marks the order delivered.
func (h *TransportHandler) HandleUpdateShipmentStatus(c *fiber.Ctx) error {
	shipmentID := c.Params("id")

	var req UpdateShipmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing shipment status request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	shipment, err := h.service.UpdateShipmentStatus(shipmentID, req.Status, req.DeliveryNotes)
	if err != nil {
		log.Printf("Error updating status of shipment %s: %v", shipmentID, err)
		return respondError(c, "Could not update shipment status", err)
	}

	return c.JSON(shipment)
}

// HandleGetRoutes lists all delivery routes with their shipments.
func (h *TransportHandler) HandleGetRoutes(c *fiber.Ctx) error {
	routes, err := h.service.GetRoutes()
	if err != nil {
		log.Printf("Error getting routes: %v", err)
		return respondError(c, "Could not retrieve routes", err)
	}
	return c.JSON(routes)
}

// CreateRouteRequest represents the request body for planning a delivery
// route.
type CreateRouteRequest struct {
	VehicleID         string   `json:"vehicle_id" validate:"required"`
	Date              string   `json:"date" validate:"required"`
	ShipmentIDs       []string `json:"shipment_ids" validate:"required,min=1"`
	TotalDistance     float64  `json:"total_distance" validate:"gte=0"`
	EstimatedDuration int      `json:"estimated_duration" validate:"gte=0"`
}

// HandleCreateRoute batches pending shipments onto a vehicle for a day.
func (h *TransportHandler) HandleCreateRoute(c *fiber.Ctx) error {
	var req CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing route request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Field 'date' must use the YYYY-MM-DD format",
		})
	}

	route, err := h.service.CreateRoute(req.VehicleID, date, req.ShipmentIDs, req.TotalDistance, req.EstimatedDuration)
	if err != nil {
		log.Printf("Error creating route for vehicle %s: %v", req.VehicleID, err)
		return respondError(c, "Could not create route", err)
	}

	return c.Status(fiber.StatusCreated).JSON(route)
}

// UpdateRouteStatusRequest represents the request body for a route status
// change.
type UpdateRouteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planned in_progress completed"`
}

// HandleUpdateRouteStatus updates a route's status. Starting a route moves
// its waiting shipments into transit.
func (h *TransportHandler) HandleUpdateRouteStatus(c *fiber.Ctx) error {
	routeID := c.Params("id")

	var req UpdateRouteStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing route status request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	route, err := h.service.UpdateRouteStatus(routeID, req.Status)
	if err != nil {
		log.Printf("Error updating status of route %s: %v", routeID, err)
		return respondError(c, "Could not update route status", err)
	}

	return c.JSON(route)
}
