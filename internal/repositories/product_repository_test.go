package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"catalog/internal/database"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) repositories.ProductRepository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return repositories.NewGORMProductRepository(db)
}

func newMemoryRepo(t *testing.T) repositories.ProductRepository {
	return repositories.NewInMemoryProductRepository()
}

var stores = map[string]func(t *testing.T) repositories.ProductRepository{
	"gorm_sqlite": newSQLiteRepo,
	"memory":      newMemoryRepo,
}

func product(name, category, seller, price string, qty int) *models.Product {
	return &models.Product{
		Name:       name,
		Category:   category,
		SellerName: seller,
		Price:      decimal.RequireFromString(price),
		Quantity:   qty,
	}
}

func seed(t *testing.T, repo repositories.ProductRepository) []*models.Product {
	t.Helper()
	products := []*models.Product{
		product("Laptop", "Electronics", "Tech Store Inc.", "999.99", 50),
		product("LAPTOP Stand", "Accessories", "Desk Co", "10.00", 0),
		product("gaming laptop", "Electronics", "Tech Store Inc.", "1500.00", 3),
		product("Mouse", "Accessories", "Desk Co", "25.50", 7),
		product("100%_Cotton Shirt", "Clothing", "Wear", "20.00", 1),
	}
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
	return products
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			p := product("Laptop", "Electronics", "Tech Store Inc.", "999.99", 50)
			p.Description = "High performance laptop"
			require.NoError(t, repo.Create(ctx, p))

			assert.NotZero(t, p.ID)
			assert.False(t, p.CreatedAt.IsZero())
			assert.True(t, p.CreatedAt.Equal(p.UpdatedAt))

			got, err := repo.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, "Laptop", got.Name)
			assert.Equal(t, "High performance laptop", got.Description)
			assert.True(t, got.Price.Equal(decimal.RequireFromString("999.99")), got.Price.String())
			assert.Equal(t, 50, got.Quantity)

			second := product("Mouse", "Accessories", "Desk Co", "25.00", 1)
			require.NoError(t, repo.Create(ctx, second))
			assert.NotEqual(t, p.ID, second.ID)
		})
	}
}

func TestProductRepository_GetByIDNotFound(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			_, err := repo.GetByID(context.Background(), 999999)
			assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

			exists, err := repo.Exists(context.Background(), 999999)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestProductRepository_UpdateRefreshesUpdatedAt(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			p := product("Laptop", "Electronics", "Tech Store Inc.", "999.99", 50)
			require.NoError(t, repo.Create(ctx, p))
			createdAt := p.CreatedAt

			time.Sleep(5 * time.Millisecond)
			p.Name = "Laptop Pro"
			p.Quantity = 0
			p.Subcategory = ""
			require.NoError(t, repo.Update(ctx, p))

			got, err := repo.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, "Laptop Pro", got.Name)
			assert.Equal(t, 0, got.Quantity)
			assert.True(t, got.CreatedAt.Equal(createdAt))
			assert.True(t, got.UpdatedAt.After(createdAt))
		})
	}
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			p := product("Ghost", "None", "Nobody", "1.00", 1)
			p.ID = 4242
			err := repo.Update(context.Background(), p)
			assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

			all, err := repo.GetAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestProductRepository_Delete(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			products := seed(t, repo)

			require.NoError(t, repo.Delete(ctx, products[0].ID))

			_, err := repo.GetByID(ctx, products[0].ID)
			assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

			err = repo.Delete(ctx, products[0].ID)
			assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

			all, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, len(products)-1)
		})
	}
}

func TestProductRepository_Finders(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			seed(t, repo)

			all, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Laptop", "LAPTOP Stand", "gaming laptop", "Mouse", "100%_Cotton Shirt"}, names(all))

			byCategory, err := repo.FindByCategory(ctx, "Electronics")
			require.NoError(t, err)
			assert.Equal(t, []string{"Laptop", "gaming laptop"}, names(byCategory))

			none, err := repo.FindByCategory(ctx, "electronics")
			require.NoError(t, err)
			assert.Empty(t, none)

			bySeller, err := repo.FindBySellerName(ctx, "Desk Co")
			require.NoError(t, err)
			assert.Equal(t, []string{"LAPTOP Stand", "Mouse"}, names(bySeller))

			byName, err := repo.SearchByName(ctx, "lap")
			require.NoError(t, err)
			assert.Equal(t, []string{"Laptop", "LAPTOP Stand", "gaming laptop"}, names(byName))

			literal, err := repo.SearchByName(ctx, "0%_c")
			require.NoError(t, err)
			assert.Equal(t, []string{"100%_Cotton Shirt"}, names(literal))

			noWildcard, err := repo.SearchByName(ctx, "%")
			require.NoError(t, err)
			assert.Equal(t, []string{"100%_Cotton Shirt"}, names(noWildcard))

			inStock, err := repo.FindInStock(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Laptop", "gaming laptop", "Mouse", "100%_Cotton Shirt"}, names(inStock))
		})
	}
}

func TestProductRepository_SearchByNameFoldsUnicode(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			require.NoError(t, repo.Create(ctx, product("Éclair Tray", "Kitchen", "Bakeware Ltd", "12.00", 4)))
			require.NoError(t, repo.Create(ctx, product("Ölkanne", "Kitchen", "Bakeware Ltd", "8.50", 2)))

			for _, query := range []string{"éclair", "ÉCLAIR", "Éclair"} {
				found, err := repo.SearchByName(ctx, query)
				require.NoError(t, err)
				assert.Equal(t, []string{"Éclair Tray"}, names(found), query)
			}

			found, err := repo.SearchByNameAndPriceRange(ctx, "ölk", decimal.RequireFromString("1"), decimal.RequireFromString("10"))
			require.NoError(t, err)
			assert.Equal(t, []string{"Ölkanne"}, names(found))
		})
	}
}

func TestProductRepository_PriceRangeIsInclusive(t *testing.T) {
	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			seed(t, repo)

			ranged, err := repo.FindByPriceBetween(ctx, decimal.RequireFromString("10.00"), decimal.RequireFromString("999.99"))
			require.NoError(t, err)
			assert.Equal(t, []string{"Laptop", "LAPTOP Stand", "Mouse", "100%_Cotton Shirt"}, names(ranged))

			inverted, err := repo.FindByPriceBetween(ctx, decimal.RequireFromString("999.99"), decimal.RequireFromString("10"))
			require.NoError(t, err)
			assert.Empty(t, inverted)

			combined, err := repo.SearchByNameAndPriceRange(ctx, "LAP", decimal.RequireFromString("10"), decimal.RequireFromString("999.99"))
			require.NoError(t, err)
			assert.Equal(t, []string{"Laptop", "LAPTOP Stand"}, names(combined))
		})
	}
}

func TestProductRepository_TransactionRollsBackOnError(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx repositories.ProductRepository) error {
		if err := tx.Create(ctx, product("Temp", "Tmp", "Tmp Co", "1.00", 1)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, repo.Ping(ctx))
}
