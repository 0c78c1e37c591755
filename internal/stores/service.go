package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

var timeNow = time.Now

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindRowByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogReader interface {
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
}

// Service exposes store registry operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	GetBySlug(ctx context.Context, slug string) (*StoreDTO, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
	Update(ctx context.Context, storeID, requesterID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, storeID, requesterID uuid.UUID) error
	Publish(ctx context.Context, storeID, requesterID uuid.UUID) (*StoreDTO, error)
	Stats(ctx context.Context, storeID uuid.UUID) (*StoreStatsDTO, error)

	GetDesign(ctx context.Context, storeID uuid.UUID) (types.JSONDoc, error)
	SaveDesign(ctx context.Context, storeID, requesterID uuid.UUID, doc types.JSONDoc) (types.JSONDoc, error)
	GetSettings(ctx context.Context, storeID uuid.UUID) (types.JSONDoc, error)
	SaveSettings(ctx context.Context, storeID, requesterID uuid.UUID, doc types.JSONDoc) (types.JSONDoc, error)
	GetProductDisplay(ctx context.Context, storeID uuid.UUID) (types.JSONDoc, error)
	SaveProductDisplay(ctx context.Context, storeID, requesterID uuid.UUID, doc types.JSONDoc) (types.JSONDoc, error)

	PublicStorefront(ctx context.Context, slug string) (map[string]any, error)
}

type service struct {
	repo    storeRepository
	catalog catalogReader
}

// NewService builds a store service with the provided repositories.
func NewService(repo storeRepository, catalog catalogReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error) {
	exists, err := s.repo.SlugExists(ctx, input.Slug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slug")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Store slug already exists")
	}

	store := &models.Store{
		UserID:        ownerID,
		Name:          input.Name,
		Slug:          input.Slug,
		Description:   input.Description,
		WalletAddress: input.WalletAddress,
	}
	if err := s.repo.Create(ctx, store); err != nil {
		// the precheck races with concurrent creates; the unique index is
		// the real guard
		if db.IsUniqueViolation(err, "idx_stores_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Store slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeLookupError(err)
	}
	return FromModel(store), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*StoreDTO, error) {
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeLookupError(err)
	}
	return FromModel(store), nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	rows, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, storeID, requesterID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, storeID, requesterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Description != nil {
		store.Description = input.Description
	}
	if input.Logo != nil {
		store.Logo = input.Logo
	}
	if input.Banner != nil {
		store.Banner = input.Banner
	}
	if input.Theme != nil {
		store.Theme = input.Theme
	}
	if input.CustomDomain != nil {
		store.CustomDomain = input.CustomDomain
	}
	if input.IsPublished != nil {
		store.IsPublished = *input.IsPublished
	}
	if input.AcceptedTokens != nil {
		store.AcceptedTokens = append([]string(nil), (*input.AcceptedTokens)...)
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, storeID, requesterID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, storeID, requesterID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}

func (s *service) Publish(ctx context.Context, storeID, requesterID uuid.UUID) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, storeID, requesterID)
	if err != nil {
		return nil, err
	}
	store.IsPublished = true
	now := timeNow()
	store.PublishedAt = &now
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish store")
	}
	return FromModel(store), nil
}

func (s *service) Stats(ctx context.Context, storeID uuid.UUID) (*StoreStatsDTO, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		return nil, storeLookupError(err)
	}

	stats := &StoreStatsDTO{
		ProductCount: len(store.Products),
		OrderCount:   len(store.Orders),
		Orders:       make([]OrderRef, 0, len(store.Orders)),
		Products:     make([]ProductRef, 0, len(store.Products)),
	}
	for _, o := range store.Orders {
		stats.TotalRevenue += o.Total
		stats.Orders = append(stats.Orders, orderRefFromModel(o))
	}
	for _, p := range store.Products {
		stats.Products = append(stats.Products, productRefFromModel(p))
	}
	return stats, nil
}

func (s *service) GetDesign(ctx context.Context, storeID uuid.UUID) (types.JSONDoc, error) {
	return s.getSubDocument(ctx, storeID, func(m *models.Store) types.JSONDoc { return m.Design })
}

func (s *service) SaveDesign(ctx context.Context, storeID, requesterID uuid.UUID, doc types.JSONDoc) (types.JSONDoc, error) {
	return s.saveSubDocument(ctx, storeID, requesterID, doc, func(m *models.Store, d types.JSONDoc) {
		m.Design = d
	})
}

func (s *service) GetSettings(ctx context.Context, storeID uuid.UUID) (types.JSONDoc, error) {
	return s.getSubDocument(ctx, storeID, func(m *models.Store) types.JSONDoc { return m.Settings })
}

func (s *service) SaveSettings(ctx context.Context, storeID, requesterID uuid.UUID, doc types.JSONDoc) (types.JSONDoc, error) {
	return s.saveSubDocument(ctx, storeID, requesterID, doc, func(m *models.Store, d types.JSONDoc) {
		m.Settings = d
	})
}

func (s *service) GetProductDisplay(ctx context.Context, storeID uuid.UUID) (types.JSONDoc, error) {
	return s.getSubDocument(ctx, storeID, func(m *models.Store) types.JSONDoc { return m.ProductDisplay })
}

func (s *service) SaveProductDisplay(ctx context.Context, storeID, requesterID uuid.UUID, doc types.JSONDoc) (types.JSONDoc, error) {
	return s.saveSubDocument(ctx, storeID, requesterID, doc, func(m *models.Store, d types.JSONDoc) {
		m.ProductDisplay = d
	})
}

// PublicStorefront composes the storefront payload for unauthenticated
// visitors: the store header, the saved design spread at the top level, the
// full catalog and the product display document.
func (s *service) PublicStorefront(ctx context.Context, slug string) (map[string]any, error) {
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeLookupError(err)
	}

	products, err := s.catalog.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store products")
	}
	refs := make([]ProductRef, 0, len(products))
	for _, p := range products {
		refs = append(refs, productRefFromModel(p))
	}

	payload := map[string]any{
		"id":          store.ID,
		"name":        store.Name,
		"description": store.Description,
		"slug":        store.Slug,
		"isPublished": store.IsPublished,
	}
	for k, v := range store.Design {
		payload[k] = v
	}
	payload["products"] = refs
	payload["productDisplay"] = emptyWhenNil(store.ProductDisplay)
	return payload, nil
}

func (s *service) getSubDocument(ctx context.Context, storeID uuid.UUID, pick func(*models.Store) types.JSONDoc) (types.JSONDoc, error) {
	store, err := s.repo.FindRowByID(ctx, storeID)
	if err != nil {
		return nil, storeLookupError(err)
	}
	return emptyWhenNil(pick(store)), nil
}

func (s *service) saveSubDocument(ctx context.Context, storeID, requesterID uuid.UUID, doc types.JSONDoc, assign func(*models.Store, types.JSONDoc)) (types.JSONDoc, error) {
	store, err := s.loadOwned(ctx, storeID, requesterID)
	if err != nil {
		return nil, err
	}
	assign(store, doc)
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save store document")
	}
	return emptyWhenNil(doc), nil
}

func (s *service) loadOwned(ctx context.Context, storeID, requesterID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindRowByID(ctx, storeID)
	if err != nil {
		return nil, storeLookupError(err)
	}
	if store.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized")
	}
	return store, nil
}

func storeLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
}

func emptyWhenNil(doc types.JSONDoc) types.JSONDoc {
	if doc == nil {
		return types.JSONDoc{}
	}
	return doc
}
