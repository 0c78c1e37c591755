package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
)

// Order is owned by the store operator (the authenticated user who recorded
// it), not the customer. Total equals Subtotal equals the sum of item totals
// at creation; line prices are snapshots and are never recomputed.
type Order struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	StoreID         uuid.UUID         `gorm:"column:store_id;type:uuid;not null"`
	OrderNumber     string            `gorm:"column:order_number;type:text;not null;uniqueIndex"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        float64           `gorm:"column:subtotal;not null"`
	Total           float64           `gorm:"column:total;not null"`
	CustomerEmail   string            `gorm:"column:customer_email;not null"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	ShippingAddress *string           `gorm:"column:shipping_address"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentID       *uuid.UUID        `gorm:"column:payment_id;type:uuid"`
	Payment         *Payment          `gorm:"foreignKey:PaymentID;references:ID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
