package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
)

// Repository handles order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to order operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx persists the order header and its line items inside the
// provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, order *models.Order) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return tx.Create(order).Error
}

// FindByID loads an order with line items, their products, and any linked
// payment.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Payment").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindRowByID loads a bare order row without associations.
func (r *Repository) FindRowByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUser returns a user's orders, newest first, with items and products.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByStore returns a store's orders, newest first, with items and products.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindRowsByStore returns bare order rows for stats aggregation.
func (r *Repository) FindRowsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update saves the provided order row.
func (r *Repository) Update(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return r.db.WithContext(ctx).Omit("Items", "Payment").Save(order).Error
}
