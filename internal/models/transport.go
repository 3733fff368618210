package models

import "time"

// Shipment statuses in forward order. Returned is a terminal branch
// reachable from any non-terminal state.
const (
	ShipmentStatusPending        = "pending"
	ShipmentStatusAssigned       = "assigned"
	ShipmentStatusPickedUp       = "picked_up"
	ShipmentStatusInTransit      = "in_transit"
	ShipmentStatusOutForDelivery = "out_for_delivery"
	ShipmentStatusDelivered      = "delivered"
	ShipmentStatusReturned       = "returned"
)

// Delivery route statuses.
const (
	RouteStatusPlanned    = "planned"
	RouteStatusInProgress = "in_progress"
	RouteStatusCompleted  = "completed"
)

// TransportationProvider is an admin-managed delivery service with a
// pricing formula of base cost plus a per-kilometre rate. Deleting a
// provider only deactivates it so existing shipments keep their reference.
type TransportationProvider struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string    `json:"name" validate:"required,min=2,max=100"`
	ServiceType   string    `json:"service_type" validate:"required"`
	BaseCost      float64   `json:"base_cost" validate:"gte=0"`
	CostPerKM     float64   `json:"cost_per_km" validate:"gte=0"`
	EstimatedDays int       `json:"estimated_days" validate:"gte=1"`
	ServiceAreas  []string  `json:"service_areas" gorm:"serializer:json"`
	Active        bool      `json:"active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Vehicle is an admin-managed fleet record belonging to a provider.
type Vehicle struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProviderID      string    `json:"provider_id" gorm:"index;type:varchar(36)" validate:"required"`
	VehicleNumber   string    `json:"vehicle_number" validate:"required"`
	DriverName      string    `json:"driver_name" validate:"required"`
	VehicleType     string    `json:"vehicle_type" validate:"required,oneof=truck van bike"`
	Capacity        int       `json:"capacity" validate:"gte=1"`
	CurrentLocation string    `json:"current_location"`
	Active          bool      `json:"active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Shipment links an order to a provider and, once one is assigned, a
// vehicle. One shipment exists per order.
type Shipment struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID           string     `json:"order_id" gorm:"uniqueIndex;type:varchar(36)"`
	ProviderID        string     `json:"provider_id" gorm:"type:varchar(36)"`
	VehicleID         string     `json:"vehicle_id" gorm:"type:varchar(36)"`
	RouteID           string     `json:"route_id,omitempty" gorm:"index;type:varchar(36)"`
	TrackingNumber    string     `json:"tracking_number" gorm:"uniqueIndex;type:varchar(16)"`
	Status            string     `json:"status"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	DeliveryNotes     string     `json:"delivery_notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// DeliveryRoute batches shipments onto one vehicle for one day.
type DeliveryRoute struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VehicleID         string     `json:"vehicle_id" gorm:"type:varchar(36)"`
	Date              time.Time  `json:"date"`
	Shipments         []Shipment `json:"shipments" gorm:"foreignKey:RouteID"`
	RouteStatus       string     `json:"route_status"`
	TotalDistance     float64    `json:"total_distance"`
	EstimatedDuration int        `json:"estimated_duration"` // minutes
	CreatedAt         time.Time  `json:"created_at"`
}

// CostEstimate is the result of the transportation cost calculation for an
// address and a set of items.
type CostEstimate struct {
	ProviderID    string  `json:"provider_id,omitempty"`
	ProviderName  string  `json:"provider_name"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimated_days"`
	DistanceKM    int     `json:"distance_km"`
}
