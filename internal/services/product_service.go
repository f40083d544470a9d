package services

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const productResource = "Product"

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// notFound converts the repository sentinel into the HTTP-facing error kind.
func notFound(err error, id uint) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return apperrors.NotFound(productResource, id)
	}
	return err
}

func (s *ProductService) publish(ctx context.Context, eventType string, id uint, product *models.ProductResponse) {
	if s.publisher == nil {
		return
	}
	event := NewProductEvent(eventType, id, product)
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		zap.S().Warnf("failed to publish %s event for product %d: %v", eventType, id, err)
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.ProductResponse, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewProductResponses(products), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.ProductResponse, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	resp := models.NewProductResponse(product)
	return &resp, nil
}

// CreateProduct stores a new product built from an already validated request.
func (s *ProductService) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.ProductResponse, error) {
	product := req.ToEntity()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	zap.S().Infof("product created with ID %d", product.ID)

	resp := models.NewProductResponse(product)
	s.publish(ctx, EventProductCreated, product.ID, &resp)
	return &resp, nil
}

// UpdateProduct replaces every mutable field of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req *models.ProductRequest) (*models.ProductResponse, error) {
	var updated *models.Product
	err := s.repo.Transaction(ctx, func(repo repositories.ProductRepository) error {
		product, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		req.ApplyTo(product)
		if err := repo.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, notFound(err, id)
	}
	zap.S().Infof("product updated with ID %d", id)

	resp := models.NewProductResponse(updated)
	s.publish(ctx, EventProductUpdated, id, &resp)
	return &resp, nil
}

// DeleteProduct hard-deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.repo.Transaction(ctx, func(repo repositories.ProductRepository) error {
		exists, err := repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("product with ID %d: %w", id, repositories.ErrProductNotFound)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return notFound(err, id)
	}
	zap.S().Infof("product deleted with ID %d", id)

	s.publish(ctx, EventProductDeleted, id, nil)
	return nil
}

func (s *ProductService) project(products []models.Product, err error) ([]models.ProductResponse, error) {
	if err != nil {
		return nil, err
	}
	return models.NewProductResponses(products), nil
}

// SearchByName matches a case-insensitive substring of the product name.
func (s *ProductService) SearchByName(ctx context.Context, fragment string) ([]models.ProductResponse, error) {
	return s.project(s.repo.SearchByName(ctx, fragment))
}

// FindByCategory matches the category exactly.
func (s *ProductService) FindByCategory(ctx context.Context, category string) ([]models.ProductResponse, error) {
	return s.project(s.repo.FindByCategory(ctx, category))
}

// FindBySeller matches the seller name exactly.
func (s *ProductService) FindBySeller(ctx context.Context, sellerName string) ([]models.ProductResponse, error) {
	return s.project(s.repo.FindBySellerName(ctx, sellerName))
}

// FindByPriceRange returns products with min <= price <= max.
func (s *ProductService) FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.ProductResponse, error) {
	return s.project(s.repo.FindByPriceBetween(ctx, min, max))
}

// SearchByNameAndPrice combines the name and price range predicates.
func (s *ProductService) SearchByNameAndPrice(ctx context.Context, fragment string, min, max decimal.Decimal) ([]models.ProductResponse, error) {
	return s.project(s.repo.SearchByNameAndPriceRange(ctx, fragment, min, max))
}

// GetInStockProducts returns products with quantity > 0.
func (s *ProductService) GetInStockProducts(ctx context.Context) ([]models.ProductResponse, error) {
	return s.project(s.repo.FindInStock(ctx))
}

// Ping reports whether the product store is reachable.
func (s *ProductService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
