package handlers

import (
	"strconv"
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes under router.
// Fixed paths are registered before "/:id" so they are not taken as an ID.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/search/name", h.HandleSearchByName)
	productRoutes.Get("/search", h.HandleSearchByNameAndPrice)
	productRoutes.Get("/price-range", h.HandleFindByPriceRange)
	productRoutes.Get("/in-stock", h.HandleGetInStock)
	productRoutes.Get("/category/:category", h.HandleFindByCategory)
	productRoutes.Get("/seller/:sellerName", h.HandleFindBySeller)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("Invalid product ID: %q", raw)
	}
	return uint(id), nil
}

func requiredQuery(c *fiber.Ctx, key string) (string, error) {
	value := c.Query(key)
	if strings.TrimSpace(value) == "" {
		return "", apperrors.BadRequest("Required query parameter '%s' is missing", key)
	}
	return value, nil
}

func priceQuery(c *fiber.Ctx, key string) (decimal.Decimal, error) {
	raw, err := requiredQuery(c, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &apperrors.BadRequestError{Msg: "Invalid value for '" + key + "'", Err: err}
	}
	return d, nil
}

func priceRange(c *fiber.Ctx) (decimal.Decimal, decimal.Decimal, error) {
	min, err := priceQuery(c, "minPrice")
	if err != nil {
		return min, min, err
	}
	max, err := priceQuery(c, "maxPrice")
	return min, max, err
}

// parseRequest decodes and validates the product body.
func (h *ProductHandler) parseRequest(c *fiber.Ctx) (*models.ProductRequest, error) {
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, &apperrors.BadRequestError{Msg: "Invalid request body", Err: err}
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	zap.S().Info("GET /api/products - fetching all products")
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	zap.S().Infof("GET /api/products/%d - fetching product", id)

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product and answers 201.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}
	zap.S().Infof("POST /api/products - creating product %q", req.Name)

	created, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct replaces an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}
	zap.S().Infof("PUT /api/products/%d - updating product", id)

	updated, err := h.service.UpdateProduct(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product and answers 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	zap.S().Infof("DELETE /api/products/%d - deleting product", id)

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSearchByName serves /search/name?name=.
func (h *ProductHandler) HandleSearchByName(c *fiber.Ctx) error {
	name, err := requiredQuery(c, "name")
	if err != nil {
		return err
	}
	products, err := h.service.SearchByName(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleFindByCategory serves /category/:category.
func (h *ProductHandler) HandleFindByCategory(c *fiber.Ctx) error {
	products, err := h.service.FindByCategory(c.UserContext(), c.Params("category"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleFindBySeller serves /seller/:sellerName.
func (h *ProductHandler) HandleFindBySeller(c *fiber.Ctx) error {
	products, err := h.service.FindBySeller(c.UserContext(), c.Params("sellerName"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleFindByPriceRange serves /price-range?minPrice=&maxPrice=.
func (h *ProductHandler) HandleFindByPriceRange(c *fiber.Ctx) error {
	min, max, err := priceRange(c)
	if err != nil {
		return err
	}
	products, err := h.service.FindByPriceRange(c.UserContext(), min, max)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleSearchByNameAndPrice serves /search?name=&minPrice=&maxPrice=.
func (h *ProductHandler) HandleSearchByNameAndPrice(c *fiber.Ctx) error {
	name, err := requiredQuery(c, "name")
	if err != nil {
		return err
	}
	min, max, err := priceRange(c)
	if err != nil {
		return err
	}
	products, err := h.service.SearchByNameAndPrice(c.UserContext(), name, min, max)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetInStock serves /in-stock.
func (h *ProductHandler) HandleGetInStock(c *fiber.Ctx) error {
	products, err := h.service.GetInStockProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}
