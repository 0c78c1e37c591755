package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

// User represents the canonical identity entity, keyed by wallet address.
// Rows are upserted on wallet connect and never deleted by the system.
type User struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	WalletAddress string          `gorm:"column:wallet_address;type:text;not null;uniqueIndex"`
	Email         *string         `gorm:"column:email"`
	EmailVerified bool            `gorm:"column:email_verified;not null;default:false"`
	Username      *string         `gorm:"column:username"`
	DisplayName   *string         `gorm:"column:display_name"`
	Avatar        *string         `gorm:"column:avatar"`
	Bio           *string         `gorm:"column:bio"`
	KYCStatus     enums.KYCStatus `gorm:"column:kyc_status;type:text;not null;default:'pending'"`
	KYCData       types.JSONDoc   `gorm:"column:kyc_data;type:jsonb"`
	Stores        []Store         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
