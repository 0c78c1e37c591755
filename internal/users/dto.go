package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/orders"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/stores"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

// UserDTO is the transport shape of a user record. Field names are part of
// the wire contract.
type UserDTO struct {
	ID            uuid.UUID         `json:"id"`
	WalletAddress string            `json:"walletAddress"`
	Email         *string           `json:"email"`
	EmailVerified bool              `json:"emailVerified"`
	Username      *string           `json:"username"`
	DisplayName   *string           `json:"displayName"`
	Avatar        *string           `json:"avatar"`
	Bio           *string           `json:"bio"`
	KYCStatus     enums.KYCStatus   `json:"kycStatus"`
	KYCData       types.JSONDoc     `json:"kycData,omitempty"`
	Stores        []stores.StoreDTO `json:"stores,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// UserStatsDTO aggregates the caller's footprint across stores, orders and
// confirmed payments. Revenue counts confirmed payments only, while the order
// list carries every order regardless of status.
type UserStatsDTO struct {
	StoreCount   int               `json:"storeCount"`
	OrderCount   int               `json:"orderCount"`
	TotalRevenue float64           `json:"totalRevenue"`
	Stores       []stores.StoreDTO `json:"stores"`
	Orders       []orders.OrderDTO `json:"orders"`
}

// UpdateProfileInput captures the mutable profile fields.
type UpdateProfileInput struct {
	Username    *string
	DisplayName *string
	Avatar      *string
	Bio         *string
}

// FromModel maps the persisted user into a DTO.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	var storeDTOs []stores.StoreDTO
	for i := range u.Stores {
		storeDTOs = append(storeDTOs, *stores.FromModel(&u.Stores[i]))
	}
	return &UserDTO{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		Avatar:        u.Avatar,
		Bio:           u.Bio,
		KYCStatus:     u.KYCStatus,
		KYCData:       u.KYCData,
		Stores:        storeDTOs,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
