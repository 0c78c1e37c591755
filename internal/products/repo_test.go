package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT,
  image TEXT,
  price REAL NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USDC',
  stock INTEGER NOT NULL DEFAULT 0,
  unlimited INTEGER NOT NULL DEFAULT 0,
  category TEXT,
  tags TEXT,
  sku TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedProduct(t *testing.T, repo *Repository, storeID uuid.UUID, name string, tags []string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		StoreID:  storeID,
		Name:     name,
		Slug:     name,
		Price:    10,
		Currency: "USDC",
		Tags:     tags,
		IsActive: active,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestProductRepositorySearchMatchesNameCaseInsensitively(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))
	storeID := uuid.New()

	hit := seedProduct(t, repo, storeID, "Neon Widget", nil, true)
	seedProduct(t, repo, storeID, "Plain Gadget", nil, true)

	out, err := repo.Search(context.Background(), "WIDGET", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, hit.ID, out[0].ID)
}

func TestProductRepositorySearchMatchesTags(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))
	storeID := uuid.New()

	tagged := seedProduct(t, repo, storeID, "Mug", []string{"ceramic", "kitchen"}, true)
	seedProduct(t, repo, storeID, "Poster", []string{"paper"}, true)

	out, err := repo.Search(context.Background(), "ceramic", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, tagged.ID, out[0].ID)
}

func TestProductRepositorySearchSkipsInactiveAndScopesByStore(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))
	storeID := uuid.New()

	kept := seedProduct(t, repo, storeID, "Widget A", nil, true)
	seedProduct(t, repo, storeID, "Widget B", nil, false)
	seedProduct(t, repo, uuid.New(), "Widget C", nil, true)

	out, err := repo.Search(context.Background(), "widget", &storeID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, kept.ID, out[0].ID)
}
