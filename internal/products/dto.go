package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/stores"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
)

// ProductDTO is the transport shape of a catalog entry. Field names are part
// of the wire contract.
type ProductDTO struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	StoreID     uuid.UUID        `json:"storeId"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
	Price       float64          `json:"price"`
	Currency    string           `json:"currency"`
	Stock       int              `json:"stock"`
	Unlimited   bool             `json:"unlimited"`
	Category    *string          `json:"category"`
	Tags        []string         `json:"tags"`
	SKU         *string          `json:"sku"`
	IsActive    bool             `json:"isActive"`
	Store       *stores.StoreDTO `json:"store,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreateProductInput holds creation-time catalog data.
type CreateProductInput struct {
	StoreID     uuid.UUID
	Name        string
	Slug        string
	Description *string
	Image       *string
	Price       float64
	Currency    *string
	Stock       *int
	Unlimited   *bool
	Category    *string
	Tags        []string
	SKU         *string
}

// UpdateProductInput captures the mutable catalog fields.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Image       *string
	Price       *float64
	Stock       *int
	Unlimited   *bool
	Category    *string
	Tags        *[]string
	IsActive    *bool
}

// FromModel maps the persisted product into a DTO.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	tags := append([]string(nil), p.Tags...)
	if tags == nil {
		tags = []string{}
	}
	return &ProductDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Currency:    p.Currency,
		Stock:       p.Stock,
		Unlimited:   p.Unlimited,
		Category:    p.Category,
		Tags:        tags,
		SKU:         p.SKU,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
