package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
)

// Repository handles payment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new payment row.
func (r *Repository) Create(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByID loads a payment by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByUser returns a user's payments, newest first.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	var out []models.Payment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindConfirmedByUser returns the user's confirmed payments.
func (r *Repository) FindConfirmedByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	var out []models.Payment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.PaymentStatusConfirmed).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update saves the provided payment row.
func (r *Repository) Update(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	return r.db.WithContext(ctx).Save(payment).Error
}
