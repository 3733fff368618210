package models

import "time"

// Order statuses, set by admins after creation. New orders start as
// pending and move to confirmed once a shipment has been arranged.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a line of an order. Name and price are snapshots taken at
// order time, so later catalog edits do not change historical orders.
type OrderItem struct {
	ID           uint    `json:"-" gorm:"primaryKey"`
	OrderID      string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID    string  `json:"product_id" gorm:"type:varchar(36)"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
}

// Order represents a customer order. Everything except Status is immutable
// after creation.
type Order struct {
	ID                 string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID             string      `json:"user_id" gorm:"index;type:varchar(36)"`
	UserName           string      `json:"user_name"`
	UserEmail          string      `json:"user_email"`
	Items              []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount        float64     `json:"total_amount"`
	TransportationCost float64     `json:"transportation_cost"`
	Status             string      `json:"status"`
	ShippingAddress    string      `json:"shipping_address"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
