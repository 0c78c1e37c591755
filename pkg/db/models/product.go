package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a catalog listing scoped to a store.
//
// UserID mirrors the owning store's user_id at creation time; every write path
// must keep the two in lockstep. Ownership checks on update/delete read this
// denormalized column, not the store row.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID      `gorm:"column:user_id;type:uuid;not null"`
	StoreID     uuid.UUID      `gorm:"column:store_id;type:uuid;not null"`
	Name        string         `gorm:"column:name;not null"`
	Slug        string         `gorm:"column:slug;not null"`
	Description *string        `gorm:"column:description"`
	Image       *string        `gorm:"column:image"`
	Price       float64        `gorm:"column:price;not null"`
	Currency    string         `gorm:"column:currency;not null;default:'USDC'"`
	Stock       int            `gorm:"column:stock;not null;default:0"`
	Unlimited   bool           `gorm:"column:unlimited;not null;default:false"`
	Category    *string        `gorm:"column:category"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`
	SKU         *string        `gorm:"column:sku"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	Store       *Store         `gorm:"foreignKey:StoreID;references:ID"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
