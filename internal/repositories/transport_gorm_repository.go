package repositories

import (
	"fmt"

	"dukaan/internal/apperrors"
	"dukaan/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProviderRepository is a GORM implementation of ProviderRepository.
type GORMProviderRepository struct {
	db *gorm.DB
}

// NewGORMProviderRepository creates a new instance of GORMProviderRepository.
func NewGORMProviderRepository(db *gorm.DB) *GORMProviderRepository {
	return &GORMProviderRepository{
		db: db,
	}
}

// GetAll retrieves all providers, active or not.
func (r *GORMProviderRepository) GetAll() ([]models.TransportationProvider, error) {
	var providers []models.TransportationProvider
	if err := r.db.Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all providers: %w", err)
	}
	return providers, nil
}

// GetActive retrieves providers still accepting shipments.
func (r *GORMProviderRepository) GetActive() ([]models.TransportationProvider, error) {
	var providers []models.TransportationProvider
	if err := r.db.Where("active = ?", true).Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to get active providers: %w", err)
	}
	return providers, nil
}

// GetByID retrieves a single provider by its ID.
func (r *GORMProviderRepository) GetByID(id string) (*models.TransportationProvider, error) {
	var provider models.TransportationProvider
	if err := r.db.First(&provider, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("provider with ID %s not found: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get provider by ID %s: %w", id, err)
	}
	return &provider, nil
}

// Create creates a new provider.
func (r *GORMProviderRepository) Create(provider *models.TransportationProvider) error {
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if err := r.db.Create(provider).Error; err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// Update updates an existing provider.
func (r *GORMProviderRepository) Update(provider *models.TransportationProvider) error {
	res := r.db.Save(provider)
	if res.Error != nil {
		return fmt.Errorf("failed to update provider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("provider with ID %s not found for update: %w", provider.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Deactivate marks a provider as inactive instead of deleting it.
func (r *GORMProviderRepository) Deactivate(id string) error {
	res := r.db.Model(&models.TransportationProvider{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate provider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("provider with ID %s not found for deactivation: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// GORMVehicleRepository is a GORM implementation of VehicleRepository.
type GORMVehicleRepository struct {
	db *gorm.DB
}

// NewGORMVehicleRepository creates a new instance of GORMVehicleRepository.
func NewGORMVehicleRepository(db *gorm.DB) *GORMVehicleRepository {
	return &GORMVehicleRepository{
		db: db,
	}
}

// GetAll retrieves all vehicles.
func (r *GORMVehicleRepository) GetAll() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to get all vehicles: %w", err)
	}
	return vehicles, nil
}

// GetByID retrieves a single vehicle by its ID.
func (r *GORMVehicleRepository) GetByID(id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.First(&vehicle, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("vehicle with ID %s not found: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by ID %s: %w", id, err)
	}
	return &vehicle, nil
}

// GetActiveByProvider returns the first active vehicle of a provider.
func (r *GORMVehicleRepository) GetActiveByProvider(providerID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.First(&vehicle, "provider_id = ? AND active = ?", providerID, true).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no active vehicle for provider %s: %w", providerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle for provider %s: %w", providerID, err)
	}
	return &vehicle, nil
}

// Create creates a new vehicle.
func (r *GORMVehicleRepository) Create(vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}
	if err := r.db.Create(vehicle).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// Update updates an existing vehicle.
func (r *GORMVehicleRepository) Update(vehicle *models.Vehicle) error {
	res := r.db.Save(vehicle)
	if res.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vehicle with ID %s not found for update: %w", vehicle.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Deactivate marks a vehicle as inactive instead of deleting it.
func (r *GORMVehicleRepository) Deactivate(id string) error {
	res := r.db.Model(&models.Vehicle{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vehicle with ID %s not found for deactivation: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// GORMShipmentRepository is a GORM implementation of ShipmentRepository.
type GORMShipmentRepository struct {
	db *gorm.DB
}

// NewGORMShipmentRepository creates a new instance of GORMShipmentRepository.
func NewGORMShipmentRepository(db *gorm.DB) *GORMShipmentRepository {
	return &GORMShipmentRepository{
		db: db,
	}
}

// GetAll retrieves all shipments, newest first.
func (r *GORMShipmentRepository) GetAll() ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := r.db.Order("created_at DESC").Find(&shipments).Error; err != nil {
		return nil, fmt.Errorf("failed to get all shipments: %w", err)
	}
	return shipments, nil
}

// GetByID retrieves a single shipment by its ID.
func (r *GORMShipmentRepository) GetByID(id string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.First(&shipment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shipment with ID %s not found: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shipment by ID %s: %w", id, err)
	}
	return &shipment, nil
}

// GetByOrderID retrieves the shipment of an order.
func (r *GORMShipmentRepository) GetByOrderID(orderID string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.First(&shipment, "order_id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shipment for order %s not found: %w", orderID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shipment for order %s: %w", orderID, err)
	}
	return &shipment, nil
}

// GetByTrackingNumber retrieves a shipment by its tracking number.
func (r *GORMShipmentRepository) GetByTrackingNumber(trackingNumber string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.First(&shipment, "tracking_number = ?", trackingNumber).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shipment with tracking number %s not found: %w", trackingNumber, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shipment by tracking number %s: %w", trackingNumber, err)
	}
	return &shipment, nil
}

// Create creates a new shipment.
func (r *GORMShipmentRepository) Create(shipment *models.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	if err := r.db.Create(shipment).Error; err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}
	return nil
}

// Update updates an existing shipment.
func (r *GORMShipmentRepository) Update(shipment *models.Shipment) error {
	res := r.db.Save(shipment)
	if res.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shipment with ID %s not found for update: %w", shipment.ID, apperrors.ErrNotFound)
	}
	return nil
}

// AssignToRoute attaches the shipments to a route and vehicle and marks
// them assigned.
func (r *GORMShipmentRepository) AssignToRoute(shipmentIDs []string, routeID, vehicleID string) error {
	err := r.db.Model(&models.Shipment{}).
		Where("id IN ?", shipmentIDs).
		Updates(map[string]interface{}{
			"route_id":   routeID,
			"vehicle_id": vehicleID,
			"status":     models.ShipmentStatusAssigned,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to assign shipments to route %s: %w", routeID, err)
	}
	return nil
}

// UpdateStatusByRoute moves every shipment of the route in one of the from
// statuses to the given status.
func (r *GORMShipmentRepository) UpdateStatusByRoute(routeID string, from []string, status string) error {
	err := r.db.Model(&models.Shipment{}).
		Where("route_id = ? AND status IN ?", routeID, from).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update shipments of route %s: %w", routeID, err)
	}
	return nil
}

// GORMRouteRepository is a GORM implementation of RouteRepository.
type GORMRouteRepository struct {
	db *gorm.DB
}

// NewGORMRouteRepository creates a new instance of GORMRouteRepository.
func NewGORMRouteRepository(db *gorm.DB) *GORMRouteRepository {
	return &GORMRouteRepository{
		db: db,
	}
}

// GetAll retrieves all delivery routes, newest date first, with shipments.
func (r *GORMRouteRepository) GetAll() ([]models.DeliveryRoute, error) {
	var routes []models.DeliveryRoute
	if err := r.db.Preload("Shipments").Order("date DESC").Find(&routes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all delivery routes: %w", err)
	}
	return routes, nil
}

// GetByID retrieves a single delivery route by its ID with its shipments.
func (r *GORMRouteRepository) GetByID(id string) (*models.DeliveryRoute, error) {
	var route models.DeliveryRoute
	if err := r.db.Preload("Shipments").First(&route, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("delivery route with ID %s not found: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get delivery route by ID %s: %w", id, err)
	}
	return &route, nil
}

// Create creates a new delivery route.
func (r *GORMRouteRepository) Create(route *models.DeliveryRoute) error {
	if route.ID == "" {
		route.ID = uuid.New().String()
	}
	// Shipments are attached via AssignToRoute, not inserted here.
	if err := r.db.Omit("Shipments").Create(route).Error; err != nil {
		return fmt.Errorf("failed to create delivery route: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the status of an existing delivery route.
func (r *GORMRouteRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.DeliveryRoute{}).Where("id = ?", id).Update("route_status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update delivery route status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delivery route with ID %s not found for status update: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
