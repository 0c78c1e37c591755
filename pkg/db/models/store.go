package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

// Store represents a merchant storefront. Slug is globally unique; only the
// owning user may mutate the row or its sub-documents.
type Store struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID      `gorm:"column:user_id;type:uuid;not null"`
	Name           string         `gorm:"column:name;not null"`
	Slug           string         `gorm:"column:slug;type:text;not null;uniqueIndex"`
	Description    *string        `gorm:"column:description"`
	WalletAddress  string         `gorm:"column:wallet_address;not null"`
	Logo           *string        `gorm:"column:logo"`
	Banner         *string        `gorm:"column:banner"`
	Theme          *string        `gorm:"column:theme"`
	CustomDomain   *string        `gorm:"column:custom_domain"`
	IsPublished    bool           `gorm:"column:is_published;not null;default:false"`
	PublishedAt    *time.Time     `gorm:"column:published_at"`
	AcceptedTokens pq.StringArray `gorm:"column:accepted_tokens;type:text[]"`
	Design         types.JSONDoc  `gorm:"column:design;type:jsonb"`
	Settings       types.JSONDoc  `gorm:"column:settings;type:jsonb"`
	ProductDisplay types.JSONDoc  `gorm:"column:product_display;type:jsonb"`
	Products       []Product      `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Orders         []Order        `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
