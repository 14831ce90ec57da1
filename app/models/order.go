package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses, in kitchen-flow order.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusPreparing  = "preparing"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
)

// OrderStatuses lists every recognised status in display order.
var OrderStatuses = []string{
	StatusPending,
	StatusAccepted,
	StatusPreparing,
	StatusDelivering,
	StatusCompleted,
}

// StatusLabels maps each status to its customer-facing label.
var StatusLabels = map[string]string{
	StatusPending:    "Pendentes",
	StatusAccepted:   "Aceito",
	StatusPreparing:  "Preparo",
	StatusDelivering: "Entrega",
	StatusCompleted:  "Concluído",
}

// ValidStatus reports whether s is one of the recognised statuses.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Delivery types.
const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

// Order is a customer order with its line items.
type Order struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	CustomerName string      `gorm:"size:255;not null;index" json:"customer_name"`
	Phone        string      `gorm:"size:32;not null" json:"phone"`
	DeliveryType string      `gorm:"size:16;not null;default:pickup" json:"delivery_type"`
	Address      string      `gorm:"size:500" json:"address,omitempty"`
	Total        float64     `gorm:"not null;default:0" json:"total"`
	Status       string      `gorm:"size:32;not null;default:pending;index" json:"status"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was supplied.
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ShortID is the four-character prefix printed on receipts and order cards.
func (o *Order) ShortID() string {
	if len(o.ID) < 4 {
		return o.ID
	}
	return o.ID[:4]
}

// OrderItem is a single line of an order. Items are immutable once attached.
type OrderItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string    `gorm:"size:36;not null;index" json:"order_id"`
	ProductID string    `gorm:"size:36;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64   `gorm:"not null;default:0" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when none was supplied.
func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Subtotal is quantity times unit price.
func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
