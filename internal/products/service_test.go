package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
)

func TestCreateRejectsNonStoreOwner(t *testing.T) {
	store := &models.Store{ID: uuid.New(), UserID: uuid.New()}
	repo := &stubProductRepo{}
	svc := newTestService(t, repo, &stubStoreReader{store: store})

	_, err := svc.Create(context.Background(), uuid.New(), CreateProductInput{
		StoreID: store.ID,
		Name:    "Widget",
		Slug:    "widget",
		Price:   10,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("product count must be unchanged after rejected create")
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	owner := uuid.New()
	store := &models.Store{ID: uuid.New(), UserID: owner}
	repo := &stubProductRepo{}
	svc := newTestService(t, repo, &stubStoreReader{store: store})

	dto, err := svc.Create(context.Background(), owner, CreateProductInput{
		StoreID: store.ID,
		Name:    "Widget",
		Slug:    "widget",
		Price:   10,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if dto.Currency != "USDC" {
		t.Fatalf("expected default currency USDC, got %q", dto.Currency)
	}
	if dto.Stock != 0 || dto.Unlimited {
		t.Fatalf("unexpected stock defaults %+v", dto)
	}
	if dto.Tags == nil || len(dto.Tags) != 0 {
		t.Fatalf("expected empty tag list, got %v", dto.Tags)
	}
	if !dto.IsActive {
		t.Fatal("new products must start active")
	}
	if dto.UserID != owner {
		t.Fatalf("product user id must mirror the store owner, got %s", dto.UserID)
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	owner := uuid.New()
	store := &models.Store{ID: uuid.New(), UserID: owner}
	svc := newTestService(t, &stubProductRepo{}, &stubStoreReader{store: store})

	_, err := svc.Create(context.Background(), owner, CreateProductInput{
		StoreID: store.ID,
		Name:    "Widget",
		Slug:    "widget",
		Price:   -1,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t, &stubProductRepo{err: gorm.ErrRecordNotFound}, &stubStoreReader{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateChecksDenormalizedOwner(t *testing.T) {
	product := baseProduct()
	repo := &stubProductRepo{product: product}
	svc := newTestService(t, repo, &stubStoreReader{})

	name := "Renamed"
	_, err := svc.Update(context.Background(), product.ID, uuid.New(), UpdateProductInput{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("product must be unchanged after rejected update")
	}
}

func TestUpdateAppliesPatch(t *testing.T) {
	product := baseProduct()
	repo := &stubProductRepo{product: product}
	svc := newTestService(t, repo, &stubStoreReader{})

	price := 25.5
	inactive := false
	dto, err := svc.Update(context.Background(), product.ID, product.UserID, UpdateProductInput{
		Price:    &price,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if dto.Price != 25.5 {
		t.Fatalf("expected price 25.5, got %f", dto.Price)
	}
	if dto.IsActive {
		t.Fatal("expected inactive product")
	}
	if repo.updated == nil {
		t.Fatal("expected persisted update")
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	product := baseProduct()
	repo := &stubProductRepo{product: product}
	svc := newTestService(t, repo, &stubStoreReader{})

	err := svc.Delete(context.Background(), product.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.deleted {
		t.Fatal("product must not be deleted")
	}
}

func TestSearchPassesStoreScope(t *testing.T) {
	repo := &stubProductRepo{searchResult: []models.Product{*baseProduct()}}
	svc := newTestService(t, repo, &stubStoreReader{})

	storeID := uuid.New()
	out, err := svc.Search(context.Background(), "widget", &storeID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one match, got %d", len(out))
	}
	if repo.searchStoreID == nil || *repo.searchStoreID != storeID {
		t.Fatalf("expected store scope %s, got %v", storeID, repo.searchStoreID)
	}
}

func newTestService(t *testing.T, repo *stubProductRepo, stores *stubStoreReader) Service {
	t.Helper()
	svc, err := NewService(repo, stores)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseProduct() *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		StoreID:  uuid.New(),
		Name:     "Widget",
		Slug:     "widget",
		Price:    10,
		Currency: "USDC",
		IsActive: true,
	}
}

type stubProductRepo struct {
	product      *models.Product
	searchResult []models.Product
	err          error

	created       *models.Product
	updated       *models.Product
	deleted       bool
	searchStoreID *uuid.UUID
}

func (r *stubProductRepo) Create(_ context.Context, product *models.Product) error {
	if r.err != nil {
		return r.err
	}
	product.ID = uuid.New()
	r.created = product
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.product == nil || r.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.product, nil
}

func (r *stubProductRepo) FindByStore(_ context.Context, _ uuid.UUID) ([]models.Product, error) {
	return r.searchResult, r.err
}

func (r *stubProductRepo) FindByOwner(_ context.Context, _ uuid.UUID) ([]models.Product, error) {
	return r.searchResult, r.err
}

func (r *stubProductRepo) Search(_ context.Context, _ string, storeID *uuid.UUID) ([]models.Product, error) {
	r.searchStoreID = storeID
	return r.searchResult, r.err
}

func (r *stubProductRepo) Update(_ context.Context, product *models.Product) error {
	if r.err != nil {
		return r.err
	}
	r.updated = product
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, _ uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = true
	return nil
}

type stubStoreReader struct {
	store *models.Store
	err   error
}

func (s *stubStoreReader) FindRowByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.store == nil || s.store.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}
