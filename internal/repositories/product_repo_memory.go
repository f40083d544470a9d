package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
	now      func() time.Time
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[uint]models.Product),
		now:      time.Now,
	}
}

// filter returns copies of the stored products accepted by keep, sorted by ID.
func (r *InMemoryProductRepository) filter(keep func(p *models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(&p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetAll returns all products.
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.filter(func(*models.Product) bool { return true }), nil
}

// GetByID returns a product by its ID.
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// Exists reports whether the ID is stored.
func (r *InMemoryProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok, nil
}

// Create adds a new product with the next sequential ID.
func (r *InMemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product, keeping its creation time.
func (r *InMemoryProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = r.now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *InMemoryProductRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}

func (r *InMemoryProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.Category == category }), nil
}

func (r *InMemoryProductRepository) FindBySellerName(ctx context.Context, sellerName string) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.SellerName == sellerName }), nil
}

func (r *InMemoryProductRepository) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return priceBetween(p, min, max) }), nil
}

func (r *InMemoryProductRepository) SearchByName(ctx context.Context, fragment string) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return nameContains(p, fragment) }), nil
}

func (r *InMemoryProductRepository) SearchByNameAndPriceRange(ctx context.Context, fragment string, min, max decimal.Decimal) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool {
		return nameContains(p, fragment) && priceBetween(p, min, max)
	}), nil
}

func (r *InMemoryProductRepository) FindInStock(ctx context.Context) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.InStock() }), nil
}

// Transaction runs fn directly; each call on the repository is atomic on its own.
func (r *InMemoryProductRepository) Transaction(ctx context.Context, fn func(repo ProductRepository) error) error {
	return fn(r)
}

// Ping always succeeds for the in-memory store.
func (r *InMemoryProductRepository) Ping(ctx context.Context) error {
	return nil
}

func priceBetween(p *models.Product, min, max decimal.Decimal) bool {
	return p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max)
}

func nameContains(p *models.Product, fragment string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(fragment))
}
