package repositories

import (
	"dukaan/internal/models"
)

// ProviderRepository defines the interface for transportation provider data
// access. Providers are soft-deleted via Deactivate so that existing
// shipments keep a valid reference.
type ProviderRepository interface {
	GetAll() ([]models.TransportationProvider, error)
	GetActive() ([]models.TransportationProvider, error)
	GetByID(id string) (*models.TransportationProvider, error)
	Create(provider *models.TransportationProvider) error
	Update(provider *models.TransportationProvider) error
	Deactivate(id string) error
}

// VehicleRepository defines the interface for vehicle data access.
type VehicleRepository interface {
	GetAll() ([]models.Vehicle, error)
	GetByID(id string) (*models.Vehicle, error)
	// GetActiveByProvider returns an active vehicle of the provider, or an
	// error when the provider has none.
	GetActiveByProvider(providerID string) (*models.Vehicle, error)
	Create(vehicle *models.Vehicle) error
	Update(vehicle *models.Vehicle) error
	Deactivate(id string) error
}

// ShipmentRepository defines the interface for shipment data access.
type ShipmentRepository interface {
	GetAll() ([]models.Shipment, error)
	GetByID(id string) (*models.Shipment, error)
	GetByOrderID(orderID string) (*models.Shipment, error)
	GetByTrackingNumber(trackingNumber string) (*models.Shipment, error)
	Create(shipment *models.Shipment) error
	Update(shipment *models.Shipment) error
	// AssignToRoute attaches the shipments to a route and its vehicle and
	// marks them assigned.
	AssignToRoute(shipmentIDs []string, routeID, vehicleID string) error
	// UpdateStatusByRoute moves every shipment of the route that is in one
	// of the from statuses to the given status.
	UpdateStatusByRoute(routeID string, from []string, status string) error
}

// RouteRepository defines the interface for delivery route data access.
type RouteRepository interface {
	GetAll() ([]models.DeliveryRoute, error)
	GetByID(id string) (*models.DeliveryRoute, error)
	Create(route *models.DeliveryRoute) error
	UpdateStatus(id string, status string) error
}
