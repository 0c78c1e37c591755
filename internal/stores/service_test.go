package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, &stubCatalog{}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresCatalog(t *testing.T) {
	if _, err := NewService(&stubStoreRepo{}, nil); err == nil {
		t.Fatal("expected error creating service without catalog reader")
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	repo := &stubStoreRepo{slugExists: true}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateStoreInput{
		Name:          "Tech Store",
		Slug:          "tech-store",
		WalletAddress: "0xabc",
	})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("no row should be created on slug conflict")
	}
}

func TestCreatePersistsUnpublishedStore(t *testing.T) {
	repo := &stubStoreRepo{}
	svc := newTestService(t, repo)
	ownerID := uuid.New()

	dto, err := svc.Create(context.Background(), ownerID, CreateStoreInput{
		Name:          "Tech Store",
		Slug:          "tech-store",
		WalletAddress: "0xabc",
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if dto.UserID != ownerID {
		t.Fatalf("expected owner %s, got %s", ownerID, dto.UserID)
	}
	if dto.IsPublished {
		t.Fatal("new stores must start unpublished")
	}
	if repo.created == nil || repo.created.Slug != "tech-store" {
		t.Fatalf("unexpected persisted store %+v", repo.created)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &stubStoreRepo{err: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo)

	_, err := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := newTestService(t, repo)

	name := "Renamed"
	_, err := svc.Update(context.Background(), store.ID, uuid.New(), UpdateStoreInput{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("store must be unchanged after rejected update")
	}
}

func TestUpdateAppliesPatch(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := newTestService(t, repo)

	name := "Renamed"
	tokens := []string{"USDC", "ETH"}
	dto, err := svc.Update(context.Background(), store.ID, store.UserID, UpdateStoreInput{
		Name:           &name,
		AcceptedTokens: &tokens,
	})
	if err != nil {
		t.Fatalf("update store: %v", err)
	}
	if dto.Name != "Renamed" {
		t.Fatalf("expected renamed store, got %q", dto.Name)
	}
	if len(dto.AcceptedTokens) != 2 {
		t.Fatalf("expected 2 accepted tokens, got %v", dto.AcceptedTokens)
	}
	if repo.updated == nil {
		t.Fatal("expected persisted update")
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := newTestService(t, repo)

	err := svc.Delete(context.Background(), store.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.deleted {
		t.Fatal("store must not be deleted")
	}
}

func TestPublishStampsTimestamp(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := newTestService(t, repo)

	dto, err := svc.Publish(context.Background(), store.ID, store.UserID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !dto.IsPublished {
		t.Fatal("expected published store")
	}
	if dto.PublishedAt == nil {
		t.Fatal("expected publish timestamp")
	}
}

func TestStatsSumsAllOrderTotals(t *testing.T) {
	store := baseStore()
	store.Products = []models.Product{{ID: uuid.New()}, {ID: uuid.New()}}
	store.Orders = []models.Order{
		{ID: uuid.New(), Total: 40, Status: enums.OrderStatusPending},
		{ID: uuid.New(), Total: 60, Status: enums.OrderStatusCancelled},
	}
	repo := &stubStoreRepo{store: store}
	svc := newTestService(t, repo)

	stats, err := svc.Stats(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ProductCount != 2 || stats.OrderCount != 2 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	// revenue is unfiltered by status here, unlike the order-service figure
	if stats.TotalRevenue != 100 {
		t.Fatalf("expected revenue 100, got %f", stats.TotalRevenue)
	}
}

func TestGetDesignDefaultsToEmptyDocument(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := newTestService(t, repo)

	doc, err := svc.GetDesign(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("get design: %v", err)
	}
	if doc == nil || len(doc) != 0 {
		t.Fatalf("expected empty document, got %v", doc)
	}
}

func TestSaveDesignRejectsNonOwner(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc := newTestService(t, repo)

	_, err := svc.SaveDesign(context.Background(), store.ID, uuid.New(), types.JSONDoc{"theme": "dark"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestPublicStorefrontSpreadsDesign(t *testing.T) {
	store := baseStore()
	store.Design = types.JSONDoc{"theme": "dark", "sections": []any{"hero"}}
	repo := &stubStoreRepo{store: store}
	catalog := &stubCatalog{products: []models.Product{{ID: uuid.New(), StoreID: store.ID}}}
	svc, err := NewService(repo, catalog)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	payload, err := svc.PublicStorefront(context.Background(), store.Slug)
	if err != nil {
		t.Fatalf("public storefront: %v", err)
	}
	if payload["theme"] != "dark" {
		t.Fatalf("expected design spread at top level, got %v", payload)
	}
	if payload["slug"] != store.Slug {
		t.Fatalf("expected slug %q, got %v", store.Slug, payload["slug"])
	}
	refs, ok := payload["products"].([]ProductRef)
	if !ok || len(refs) != 1 {
		t.Fatalf("expected one product ref, got %v", payload["products"])
	}
}

func newTestService(t *testing.T, repo *stubStoreRepo) Service {
	t.Helper()
	svc, err := NewService(repo, &stubCatalog{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseStore() *models.Store {
	desc := "gadgets"
	return &models.Store{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Name:          "Tech Store",
		Slug:          "tech-store",
		Description:   &desc,
		WalletAddress: "0xabc",
	}
}

type stubStoreRepo struct {
	store      *models.Store
	stores     []models.Store
	slugExists bool
	err        error

	created *models.Store
	updated *models.Store
	deleted bool
}

func (r *stubStoreRepo) Create(_ context.Context, store *models.Store) error {
	if r.err != nil {
		return r.err
	}
	store.ID = uuid.New()
	r.created = store
	return nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	return r.find(id)
}

func (r *stubStoreRepo) FindRowByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	return r.find(id)
}

func (r *stubStoreRepo) FindBySlug(_ context.Context, slug string) (*models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.store == nil || r.store.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return r.store, nil
}

func (r *stubStoreRepo) SlugExists(_ context.Context, _ string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.slugExists, nil
}

func (r *stubStoreRepo) FindByOwner(_ context.Context, _ uuid.UUID) ([]models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.stores, nil
}

func (r *stubStoreRepo) Update(_ context.Context, store *models.Store) error {
	if r.err != nil {
		return r.err
	}
	r.updated = store
	return nil
}

func (r *stubStoreRepo) Delete(_ context.Context, _ uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = true
	return nil
}

func (r *stubStoreRepo) find(id uuid.UUID) (*models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.store == nil || r.store.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.store, nil
}

type stubCatalog struct {
	products []models.Product
	err      error
}

func (c *stubCatalog) FindByStore(_ context.Context, _ uuid.UUID) ([]models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}
