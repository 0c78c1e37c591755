package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/payments"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/products"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
)

// OrderDTO is the transport shape of an order and its line items. Field names
// are part of the wire contract.
type OrderDTO struct {
	ID              uuid.UUID            `json:"id"`
	UserID          uuid.UUID            `json:"userId"`
	StoreID         uuid.UUID            `json:"storeId"`
	OrderNumber     string               `json:"orderNumber"`
	Items           []OrderItemDTO       `json:"items"`
	Subtotal        float64              `json:"subtotal"`
	Total           float64              `json:"total"`
	CustomerEmail   string               `json:"customerEmail"`
	CustomerName    string               `json:"customerName"`
	ShippingAddress *string              `json:"shippingAddress"`
	Status          enums.OrderStatus    `json:"status"`
	PaymentID       *uuid.UUID           `json:"paymentId"`
	Payment         *payments.PaymentDTO `json:"payment,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// OrderItemDTO is a line item snapshot with the referenced product joined in
// when loaded.
type OrderItemDTO struct {
	ID        uuid.UUID            `json:"id"`
	OrderID   uuid.UUID            `json:"orderId"`
	ProductID uuid.UUID            `json:"productId"`
	Quantity  int                  `json:"quantity"`
	Price     float64              `json:"price"`
	Total     float64              `json:"total"`
	Product   *products.ProductDTO `json:"product,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// LineItemInput is a requested (product, quantity) pair at order creation.
type LineItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput holds creation-time order data.
type CreateOrderInput struct {
	StoreID         uuid.UUID
	Items           []LineItemInput
	CustomerEmail   string
	CustomerName    string
	ShippingAddress *string
}

// OrderStatsDTO buckets a store's orders by status. Revenue counts confirmed
// orders only, unlike the store-level figure which is unfiltered.
type OrderStatsDTO struct {
	TotalOrders     int     `json:"totalOrders"`
	ConfirmedOrders int     `json:"confirmedOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	ShippedOrders   int     `json:"shippedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// FromModel maps the persisted order into a DTO.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		StoreID:         o.StoreID,
		OrderNumber:     o.OrderNumber,
		Items:           make([]OrderItemDTO, 0, len(o.Items)),
		Subtotal:        o.Subtotal,
		Total:           o.Total,
		CustomerEmail:   o.CustomerEmail,
		CustomerName:    o.CustomerName,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		PaymentID:       o.PaymentID,
		Payment:         payments.FromModel(o.Payment),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
			Product:   products.FromModel(item.Product),
			CreatedAt: item.CreatedAt,
		})
	}
	return dto
}
