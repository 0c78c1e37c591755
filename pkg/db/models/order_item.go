package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a product-quantity-price snapshot attached to an order at
// creation time. Price is the product price at order time; Total is
// Price * Quantity.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Price     float64   `gorm:"column:price;not null"`
	Total     float64   `gorm:"column:total;not null"`
	Product   *Product  `gorm:"foreignKey:ProductID;references:ID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
