package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
)

// Repository handles catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads a product by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByStore returns a store's products, newest first.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByOwner returns a user's products across stores, newest first, with the
// owning store joined in.
func (r *Repository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Store").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Search matches active products by case-insensitive name/description
// substring or tag membership, optionally scoped to a store. The tag clause
// branches on the dialect: sqlite stores the array as its text literal, so
// membership degrades to a substring match there.
func (r *Repository) Search(ctx context.Context, query string, storeID *uuid.UUID) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR ? = ANY(tags))", pattern, pattern, query)
	} else {
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR tags LIKE ?)", pattern, pattern, "%"+query+"%")
	}
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}

	var out []models.Product
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update saves the provided product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.db.WithContext(ctx).Omit("Store").Save(product).Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
