package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

// StoreDTO is the transport shape of a store record. Field names are part of
// the wire contract.
type StoreDTO struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"userId"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	Description    *string       `json:"description"`
	WalletAddress  string        `json:"walletAddress"`
	Logo           *string       `json:"logo"`
	Banner         *string       `json:"banner"`
	Theme          *string       `json:"theme"`
	CustomDomain   *string       `json:"customDomain"`
	IsPublished    bool          `json:"isPublished"`
	PublishedAt    *time.Time    `json:"publishedAt"`
	AcceptedTokens []string      `json:"acceptedTokens"`
	Design         types.JSONDoc `json:"design,omitempty"`
	Settings       types.JSONDoc `json:"settings,omitempty"`
	ProductDisplay types.JSONDoc `json:"productDisplay,omitempty"`
	Products       []ProductRef  `json:"products,omitempty"`
	Orders         []OrderRef    `json:"orders,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ProductRef is the embedded product shape used when a store is returned with
// its catalog joined in.
type ProductRef struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	StoreID     uuid.UUID `json:"storeId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	Unlimited   bool      `json:"unlimited"`
	Category    *string   `json:"category"`
	Tags        []string  `json:"tags"`
	SKU         *string   `json:"sku"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OrderRef is the embedded order shape used when a store is returned with its
// orders joined in.
type OrderRef struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	StoreID       uuid.UUID  `json:"storeId"`
	OrderNumber   string     `json:"orderNumber"`
	Subtotal      float64    `json:"subtotal"`
	Total         float64    `json:"total"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerName  string     `json:"customerName"`
	Status        string     `json:"status"`
	PaymentID     *uuid.UUID `json:"paymentId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	Name          string
	Slug          string
	Description   *string
	WalletAddress string
}

// UpdateStoreInput captures the allowed store fields for mutation.
type UpdateStoreInput struct {
	Name           *string
	Description    *string
	Logo           *string
	Banner         *string
	Theme          *string
	CustomDomain   *string
	IsPublished    *bool
	AcceptedTokens *[]string
}

// StoreStatsDTO aggregates the store's catalog and order footprint. Revenue
// here sums every order total regardless of status; the order service reports
// a separate confirmed-only figure.
type StoreStatsDTO struct {
	ProductCount int          `json:"productCount"`
	OrderCount   int          `json:"orderCount"`
	TotalRevenue float64      `json:"totalRevenue"`
	Orders       []OrderRef   `json:"orders"`
	Products     []ProductRef `json:"products"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	dto := &StoreDTO{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		Slug:           m.Slug,
		Description:    m.Description,
		WalletAddress:  m.WalletAddress,
		Logo:           m.Logo,
		Banner:         m.Banner,
		Theme:          m.Theme,
		CustomDomain:   m.CustomDomain,
		IsPublished:    m.IsPublished,
		PublishedAt:    m.PublishedAt,
		AcceptedTokens: append([]string(nil), m.AcceptedTokens...),
		Design:         m.Design,
		Settings:       m.Settings,
		ProductDisplay: m.ProductDisplay,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if dto.AcceptedTokens == nil {
		dto.AcceptedTokens = []string{}
	}
	for _, p := range m.Products {
		dto.Products = append(dto.Products, productRefFromModel(p))
	}
	for _, o := range m.Orders {
		dto.Orders = append(dto.Orders, orderRefFromModel(o))
	}
	return dto
}

func productRefFromModel(p models.Product) ProductRef {
	tags := append([]string(nil), p.Tags...)
	if tags == nil {
		tags = []string{}
	}
	return ProductRef{
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

func orderRefFromModel(o models.Order) OrderRef {
	return OrderRef{
		ID:            o.ID,
		UserID:        o.UserID,
		StoreID:       o.StoreID,
		OrderNumber:   o.OrderNumber,
		Subtotal:      o.Subtotal,
		Total:         o.Total,
		CustomerEmail: o.CustomerEmail,
		CustomerName:  o.CustomerName,
		Status:        o.Status.String(),
		PaymentID:     o.PaymentID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
