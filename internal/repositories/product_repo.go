package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned by lookups and writes that target a missing ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// Every finder returns products ordered by ID.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error

	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	FindBySellerName(ctx context.Context, sellerName string) ([]models.Product, error)
	FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error)
	SearchByName(ctx context.Context, fragment string) ([]models.Product, error)
	SearchByNameAndPriceRange(ctx context.Context, fragment string, min, max decimal.Decimal) ([]models.Product, error)
	FindInStock(ctx context.Context) ([]models.Product, error)

	// Transaction runs fn as one unit of work against a repository bound to it.
	Transaction(ctx context.Context, fn func(repo ProductRepository) error) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
