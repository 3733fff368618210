package services

import (
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"dukaan/internal/apperrors"
	"dukaan/internal/models"
	"dukaan/internal/repositories"

	"dukaan/pkg/rabbitmq"
)

// Fallback estimate used when no provider is active.
const (
	defaultDeliveryCost = 50.0
	defaultDeliveryDays = 3
)

// Weight surcharge: every unit beyond this many adds a flat amount.
const (
	weightFreeUnits     = 5
	weightSurchargeUnit = 10.0
)

// shipmentStatusRank orders the forward progression of a shipment.
// "returned" is deliberately absent; it is a terminal branch, not a step.
var shipmentStatusRank = map[string]int{
	models.ShipmentStatusPending:        0,
	models.ShipmentStatusAssigned:       1,
	models.ShipmentStatusPickedUp:       2,
	models.ShipmentStatusInTransit:      3,
	models.ShipmentStatusOutForDelivery: 4,
	models.ShipmentStatusDelivered:      5,
}

// TransportService handles business logic for transportation providers,
// vehicles, shipments, delivery routes and shipping-cost estimation.
type TransportService struct {
	providerRepo repositories.ProviderRepository
	vehicleRepo  repositories.VehicleRepository
	shipmentRepo repositories.ShipmentRepository
	routeRepo    repositories.RouteRepository
	orderRepo    repositories.OrderRepository
	mqClient     *rabbitmq.Client
}

// NewTransportService creates a new TransportService. mqClient may be nil;
// event publication is then skipped.
func NewTransportService(
	providerRepo repositories.ProviderRepository,
	vehicleRepo repositories.VehicleRepository,
	shipmentRepo repositories.ShipmentRepository,
	routeRepo repositories.RouteRepository,
	orderRepo repositories.OrderRepository,
	mqClient *rabbitmq.Client,
) *TransportService {
	return &TransportService{
		providerRepo: providerRepo,
		vehicleRepo:  vehicleRepo,
		shipmentRepo: shipmentRepo,
		routeRepo:    routeRepo,
		orderRepo:    orderRepo,
		mqClient:     mqClient,
	}
}

// --- Providers ---

// GetProviders retrieves all transportation providers.
func (s *TransportService) GetProviders() ([]models.TransportationProvider, error) {
	return s.providerRepo.GetAll()
}

// CreateProvider creates a new transportation provider.
func (s *TransportService) CreateProvider(provider *models.TransportationProvider) error {
	provider.Active = true
	return s.providerRepo.Create(provider)
}

// UpdateProvider updates an existing provider's reference data.
func (s *TransportService) UpdateProvider(provider *models.TransportationProvider) error {
	existing, err := s.providerRepo.GetByID(provider.ID)
	if err != nil {
		return err
	}
	provider.Active = existing.Active
	provider.CreatedAt = existing.CreatedAt
	return s.providerRepo.Update(provider)
}

// DeactivateProvider soft-deletes a provider.
func (s *TransportService) DeactivateProvider(id string) error {
	return s.providerRepo.Deactivate(id)
}

// --- Vehicles ---

// GetVehicles retrieves all vehicles.
func (s *TransportService) GetVehicles() ([]models.Vehicle, error) {
	return s.vehicleRepo.GetAll()
}

// CreateVehicle creates a new vehicle. The referenced provider must exist.
func (s *TransportService) CreateVehicle(vehicle *models.Vehicle) error {
	if _, err := s.providerRepo.GetByID(vehicle.ProviderID); err != nil {
		return err
	}
	vehicle.Active = true
	return s.vehicleRepo.Create(vehicle)
}

// UpdateVehicle updates an existing vehicle.
func (s *TransportService) UpdateVehicle(vehicle *models.Vehicle) error {
	existing, err := s.vehicleRepo.GetByID(vehicle.ID)
	if err != nil {
		return err
	}
	if _, err := s.providerRepo.GetByID(vehicle.ProviderID); err != nil {
		return err
	}
	vehicle.Active = existing.Active
	vehicle.CreatedAt = existing.CreatedAt
	return s.vehicleRepo.Update(vehicle)
}

// DeactivateVehicle soft-deletes a vehicle.
func (s *TransportService) DeactivateVehicle(id string) error {
	return s.vehicleRepo.Deactivate(id)
}

// --- Cost estimation ---

// estimateDistanceKM derives a deterministic distance in the 5..50 km range
// from the shipping address text. The address is lowercased and its
// whitespace collapsed before hashing so trivial formatting differences do
// not move the estimate.
func estimateDistanceKM(address string) int {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	h := fnv.New32a()
	h.Write([]byte(normalized))
	return 5 + int(h.Sum32()%46)
}

// EstimateCost computes the shipping cost for an address and a number of
// units. The cheapest active provider for the estimated distance wins;
// units beyond the free allowance add a flat surcharge each. Without any
// active provider a flat standard estimate is returned.
func (s *TransportService) EstimateCost(shippingAddress string, totalUnits int) (*models.CostEstimate, error) {
	distance := estimateDistanceKM(shippingAddress)

	providers, err := s.providerRepo.GetActive()
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return &models.CostEstimate{
			ProviderName:  "Standard Delivery",
			Cost:          defaultDeliveryCost,
			EstimatedDays: defaultDeliveryDays,
			DistanceKM:    distance,
		}, nil
	}

	best := providers[0]
	bestCost := best.BaseCost + best.CostPerKM*float64(distance)
	for _, p := range providers[1:] {
		if cost := p.BaseCost + p.CostPerKM*float64(distance); cost < bestCost {
			best = p
			bestCost = cost
		}
	}

	if totalUnits > weightFreeUnits {
		bestCost += float64(totalUnits-weightFreeUnits) * weightSurchargeUnit
	}

	return &models.CostEstimate{
		ProviderID:    best.ID,
		ProviderName:  best.Name,
		Cost:          math.Round(bestCost*100) / 100,
		EstimatedDays: best.EstimatedDays,
		DistanceKM:    distance,
	}, nil
}

// --- Shipments ---

const trackingCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateTrackingNumber produces a "TRK" prefixed tracking number with
// eight random uppercase alphanumerics.
func generateTrackingNumber() string {
	suffix := make([]byte, 8)
	for i := range suffix {
		suffix[i] = trackingCharset[rand.Intn(len(trackingCharset))]
	}
	return "TRK" + string(suffix)
}

// CreateShipment creates a pending shipment for an order with the given
// provider. An active vehicle of the provider is attached when one exists.
func (s *TransportService) CreateShipment(orderID, providerID string) (*models.Shipment, error) {
	provider, err := s.providerRepo.GetByID(providerID)
	if err != nil {
		return nil, err
	}

	var vehicleID string
	if vehicle, err := s.vehicleRepo.GetActiveByProvider(providerID); err == nil {
		vehicleID = vehicle.ID
	}

	shipment := &models.Shipment{
		OrderID:           orderID,
		ProviderID:        providerID,
		VehicleID:         vehicleID,
		TrackingNumber:    generateTrackingNumber(),
		Status:            models.ShipmentStatusPending,
		EstimatedDelivery: time.Now().AddDate(0, 0, provider.EstimatedDays),
	}
	if err := s.shipmentRepo.Create(shipment); err != nil {
		return nil, err
	}

	s.publishEvent("shipment.created", map[string]interface{}{
		"shipmentID":     shipment.ID,
		"orderID":        shipment.OrderID,
		"trackingNumber": shipment.TrackingNumber,
		"status":         shipment.Status,
	})

	return shipment, nil
}

// GetShipments retrieves all shipments.
func (s *TransportService) GetShipments() ([]models.Shipment, error) {
	return s.shipmentRepo.GetAll()
}

// canTransition reports whether a shipment may move from cur to next.
// Moves are forward-only through the progression; skipping states is
// allowed. Returned is reachable from any non-terminal state; delivered
// and returned are terminal.
func canTransition(cur, next string) bool {
	if cur == models.ShipmentStatusDelivered || cur == models.ShipmentStatusReturned {
		return false
	}
	if next == models.ShipmentStatusReturned {
		return true
	}
	curRank, ok := shipmentStatusRank[cur]
	nextRank, nextKnown := shipmentStatusRank[next]
	return ok && nextKnown && nextRank > curRank
}

// UpdateShipmentStatus advances a shipment's status and replaces its
// delivery notes. Reaching delivered stamps the actual delivery time and
// marks the order delivered.
func (s *TransportService) UpdateShipmentStatus(id, status, deliveryNotes string) (*models.Shipment, error) {
	if _, known := shipmentStatusRank[status]; !known && status != models.ShipmentStatusReturned {
		return nil, fmt.Errorf("unknown shipment status %q: %w", status, apperrors.ErrValidation)
	}

	shipment, err := s.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !canTransition(shipment.Status, status) {
		return nil, fmt.Errorf("shipment %s cannot move from %s to %s: %w",
			id, shipment.Status, status, apperrors.ErrInvalidTransition)
	}

	shipment.Status = status
	shipment.DeliveryNotes = deliveryNotes
	if status == models.ShipmentStatusDelivered {
		now := time.Now()
		shipment.ActualDelivery = &now
		if err := s.orderRepo.UpdateStatus(shipment.OrderID, models.OrderStatusDelivered); err != nil {
			log.Printf("Failed to mark order %s delivered: %v", shipment.OrderID, err)
		}
	}

	if err := s.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}

	s.publishEvent("shipment.status_updated", map[string]interface{}{
		"shipmentID":     shipment.ID,
		"orderID":        shipment.OrderID,
		"trackingNumber": shipment.TrackingNumber,
		"status":         shipment.Status,
	})

	return shipment, nil
}

// TrackingInfo is the public view of a shipment looked up by tracking
// number. Order, provider and vehicle are nil when the reference is gone.
type TrackingInfo struct {
	Shipment *models.Shipment               `json:"shipment"`
	Order    *models.Order                  `json:"order,omitempty"`
	Provider *models.TransportationProvider `json:"provider,omitempty"`
	Vehicle  *models.Vehicle                `json:"vehicle,omitempty"`
}

// TrackShipment looks a shipment up by its tracking number. No
// authentication is required for this lookup.
func (s *TransportService) TrackShipment(trackingNumber string) (*TrackingInfo, error) {
	shipment, err := s.shipmentRepo.GetByTrackingNumber(trackingNumber)
	if err != nil {
		return nil, err
	}

	info := &TrackingInfo{Shipment: shipment}
	if order, err := s.orderRepo.GetByID(shipment.OrderID); err == nil {
		info.Order = order
	}
	if provider, err := s.providerRepo.GetByID(shipment.ProviderID); err == nil {
		info.Provider = provider
	}
	if shipment.VehicleID != "" {
		if vehicle, err := s.vehicleRepo.GetByID(shipment.VehicleID); err == nil {
			info.Vehicle = vehicle
		}
	}
	return info, nil
}

// GetOrderShipment returns the shipment of an order for its owner. Admins
// may look up any order's shipment. A foreign order is reported as not
// found rather than forbidden, so the endpoint does not leak order IDs.
func (s *TransportService) GetOrderShipment(orderID, userID string, isAdmin bool) (*TrackingInfo, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s not found: %w", orderID, apperrors.ErrNotFound)
	}

	shipment, err := s.shipmentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	info := &TrackingInfo{Shipment: shipment}
	if provider, err := s.providerRepo.GetByID(shipment.ProviderID); err == nil {
		info.Provider = provider
	}
	if shipment.VehicleID != "" {
		if vehicle, err := s.vehicleRepo.GetByID(shipment.VehicleID); err == nil {
			info.Vehicle = vehicle
		}
	}
	return info, nil
}

// --- Delivery routes ---

// GetRoutes retrieves all delivery routes.
func (s *TransportService) GetRoutes() ([]models.DeliveryRoute, error) {
	return s.routeRepo.GetAll()
}

// CreateRoute batches shipments onto a vehicle for a date. Every shipment
// must exist and still be pending or assigned; batched shipments become
// assigned to the route's vehicle.
func (s *TransportService) CreateRoute(vehicleID string, date time.Time, shipmentIDs []string, totalDistance float64, estimatedDuration int) (*models.DeliveryRoute, error) {
	if _, err := s.vehicleRepo.GetByID(vehicleID); err != nil {
		return nil, err
	}

	for _, shipmentID := range shipmentIDs {
		shipment, err := s.shipmentRepo.GetByID(shipmentID)
		if err != nil {
			return nil, err
		}
		if shipment.Status != models.ShipmentStatusPending && shipment.Status != models.ShipmentStatusAssigned {
			return nil, fmt.Errorf("shipment %s is not available for routing: %w", shipmentID, apperrors.ErrValidation)
		}
	}

	route := &models.DeliveryRoute{
		VehicleID:         vehicleID,
		Date:              date,
		RouteStatus:       models.RouteStatusPlanned,
		TotalDistance:     totalDistance,
		EstimatedDuration: estimatedDuration,
	}
	if err := s.routeRepo.Create(route); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.AssignToRoute(shipmentIDs, route.ID, vehicleID); err != nil {
		return nil, err
	}

	return s.routeRepo.GetByID(route.ID)
}

// UpdateRouteStatus moves a route through planned, in_progress and
// completed. Starting a route moves its batched shipments to in_transit.
func (s *TransportService) UpdateRouteStatus(id, status string) (*models.DeliveryRoute, error) {
	switch status {
	case models.RouteStatusPlanned, models.RouteStatusInProgress, models.RouteStatusCompleted:
	default:
		return nil, fmt.Errorf("unknown route status %q: %w", status, apperrors.ErrValidation)
	}

	if err := s.routeRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	if status == models.RouteStatusInProgress {
		from := []string{models.ShipmentStatusPending, models.ShipmentStatusAssigned}
		if err := s.shipmentRepo.UpdateStatusByRoute(id, from, models.ShipmentStatusInTransit); err != nil {
			log.Printf("Failed to move shipments of route %s to in_transit: %v", id, err)
		}
	}

	return s.routeRepo.GetByID(id)
}

// publishEvent publishes a transport event, skipping silently when no
// message queue client is configured.
func (s *TransportService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
