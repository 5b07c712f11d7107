package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is a frozen snapshot of a cart line at checkout time. It
// carries no live reference back to Product: editing or deleting a product
// later must not change historical orders.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
}

// Order is one checkout attempt. Items live in a JSON column, mirroring
// the denormalized shape orders are tracked and confirmed in.
type Order struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName string      `gorm:"not null" json:"customer_name"`
	Phone        string      `gorm:"index;not null" json:"phone"`
	Address      string      `json:"address"`
	Items        []OrderItem `gorm:"serializer:json" json:"items"`
	TotalPrice   int64       `gorm:"not null" json:"total_price"`
	Status       OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	return nil
}

// Reference is the short order id shown to customers.
func (o *Order) Reference() string {
	if len(o.ID) < 8 {
		return o.ID
	}
	return o.ID[:8]
}
