package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest is the body accepted by create and update.
// Identifier and timestamps are owned by the store and never read from it.
type ProductRequest struct {
	Name        string           `json:"name" validate:"notblank,min=3,max=255"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	Category    string           `json:"category" validate:"notblank,min=2,max=100"`
	Subcategory string           `json:"subcategory" validate:"omitempty,max=100"`
	SellerName  string           `json:"sellerName" validate:"notblank,min=2,max=255"`
	Price       *decimal.Decimal `json:"price" validate:"required,positive,decimals2,maxdecimal=9999999999.99"`
	Quantity    *int             `json:"quantity" validate:"required,gte=0"`
}

// ProductResponse is the wire projection of a stored Product.
type ProductResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	SellerName  string          `json:"sellerName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToEntity builds a new, unsaved Product from the request.
func (r *ProductRequest) ToEntity() *Product {
	p := &Product{}
	r.ApplyTo(p)
	return p
}

// ApplyTo overwrites every mutable field of p with the request values.
func (r *ProductRequest) ApplyTo(p *Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Category = r.Category
	p.Subcategory = r.Subcategory
	p.SellerName = r.SellerName
	if r.Price != nil {
		p.Price = r.Price.Round(2)
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}
}

// NewProductResponse projects a stored product onto its response shape.
func NewProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		SellerName:  p.SellerName,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductResponses projects a slice of products, never returning nil.
func NewProductResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
