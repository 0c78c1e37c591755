package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/stores"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
)

type productRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	Search(ctx context.Context, query string, storeID *uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeReader interface {
	FindRowByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes catalog operations.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListForStore(ctx context.Context, storeID uuid.UUID) ([]ProductDTO, error)
	ListForOwner(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error)
	Search(ctx context.Context, query string, storeID *uuid.UUID) ([]ProductDTO, error)
	Update(ctx context.Context, productID, requesterID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, productID, requesterID uuid.UUID) error
}

type service struct {
	repo   productRepository
	stores storeReader
}

// NewService builds a catalog service with the provided repositories.
func NewService(repo productRepository, stores storeReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store reader required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	store, err := s.stores.FindRowByID(ctx, input.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	// UserID mirrors the store owner, which the check above has just proven
	// to be the requester
	product := &models.Product{
		UserID:      requesterID,
		StoreID:     input.StoreID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		Currency:    "USDC",
		Stock:       0,
		Unlimited:   false,
		Tags:        []string{},
		Category:    input.Category,
		SKU:         input.SKU,
		IsActive:    true,
	}
	if input.Currency != nil && *input.Currency != "" {
		product.Currency = *input.Currency
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Unlimited != nil {
		product.Unlimited = *input.Unlimited
	}
	if input.Tags != nil {
		product.Tags = append([]string(nil), input.Tags...)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	return FromModel(product), nil
}

func (s *service) ListForStore(ctx context.Context, storeID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store products")
	}
	return toDTOs(rows), nil
}

func (s *service) ListForOwner(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dto := FromModel(&rows[i])
		dto.Store = stores.FromModel(rows[i].Store)
		out = append(out, *dto)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, query string, storeID *uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.Search(ctx, query, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return toDTOs(rows), nil
}

func (s *service) Update(ctx context.Context, productID, requesterID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, productID, requesterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Unlimited != nil {
		product.Unlimited = *input.Unlimited
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.Tags != nil {
		product.Tags = append([]string(nil), (*input.Tags)...)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, productID, requesterID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, productID, requesterID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// loadOwned checks ownership against the product's own denormalized user_id,
// not a fresh store lookup.
func (s *service) loadOwned(ctx context.Context, productID, requesterID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized")
	}
	return product, nil
}

func productLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
}

func toDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
