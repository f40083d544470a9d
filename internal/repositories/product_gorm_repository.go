package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Product{}).Order("id ASC")
}

func (r *GORMProductRepository) find(ctx context.Context, what string, scope func(*gorm.DB) *gorm.DB) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := scope(r.query(ctx)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products %s: %w", what, err)
	}
	return products, nil
}

// nameContains builds a case-insensitive substring predicate on name.
func (r *GORMProductRepository) nameContains(db *gorm.DB, fragment string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(fragment) + "%"
	if r.db.Dialector.Name() == "postgres" {
		return db.Where(`name ILIKE ? ESCAPE '\'`, pattern)
	}
	return db.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern)
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, "(all)", func(db *gorm.DB) *gorm.DB { return db })
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Exists reports whether a product with the given ID is stored.
func (r *GORMProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new product; ID and timestamps are assigned by the store.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = 0
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every column of an existing product and refreshes UpdatedAt.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	// Save would insert a missing row, so the update is issued explicitly.
	res := r.db.WithContext(ctx).Model(product).Select("*").Omit("id", "created_at").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// Delete hard-deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return nil
}

// FindByCategory returns products whose category matches exactly.
func (r *GORMProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.find(ctx, "by category", func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	})
}

// FindBySellerName returns products whose seller name matches exactly.
func (r *GORMProductRepository) FindBySellerName(ctx context.Context, sellerName string) ([]models.Product, error) {
	return r.find(ctx, "by seller", func(db *gorm.DB) *gorm.DB {
		return db.Where("seller_name = ?", sellerName)
	})
}

// FindByPriceBetween returns products priced within [min, max].
func (r *GORMProductRepository) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	return r.find(ctx, "by price range", func(db *gorm.DB) *gorm.DB {
		return db.Where("price BETWEEN ? AND ?", min, max)
	})
}

// SearchByName returns products whose name contains fragment, ignoring case.
func (r *GORMProductRepository) SearchByName(ctx context.Context, fragment string) ([]models.Product, error) {
	return r.find(ctx, "by name", func(db *gorm.DB) *gorm.DB {
		return r.nameContains(db, fragment)
	})
}

// SearchByNameAndPriceRange combines SearchByName and FindByPriceBetween.
func (r *GORMProductRepository) SearchByNameAndPriceRange(ctx context.Context, fragment string, min, max decimal.Decimal) ([]models.Product, error) {
	return r.find(ctx, "by name and price range", func(db *gorm.DB) *gorm.DB {
		return r.nameContains(db, fragment).Where("price BETWEEN ? AND ?", min, max)
	})
}

// FindInStock returns products with a positive quantity.
func (r *GORMProductRepository) FindInStock(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, "in stock", func(db *gorm.DB) *gorm.DB {
		return db.Where("quantity > ?", 0)
	})
}

// Transaction runs fn inside a database transaction.
func (r *GORMProductRepository) Transaction(ctx context.Context, fn func(repo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMProductRepository(tx))
	})
}

// Ping checks the underlying connection pool.
func (r *GORMProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
