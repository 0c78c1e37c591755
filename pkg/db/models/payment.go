package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
)

// Payment records a crypto payment attempt. TxHash is caller-supplied and is
// stored verbatim on confirmation; no on-chain verification happens anywhere.
// EscrowID and EscrowStatus are set only once an escrow is created.
type Payment struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	Amount       float64             `gorm:"column:amount;not null"`
	Currency     string              `gorm:"column:currency;not null"`
	FromAddress  string              `gorm:"column:from_address;not null"`
	ToAddress    string              `gorm:"column:to_address;not null"`
	ChainID      int64               `gorm:"column:chain_id;not null"`
	Status       enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TxHash       *string             `gorm:"column:tx_hash"`
	EscrowID     *string             `gorm:"column:escrow_id"`
	EscrowStatus *enums.EscrowStatus `gorm:"column:escrow_status;type:text"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
