package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"type:varchar(100);not null;index"`
	Subcategory string          `json:"subcategory" gorm:"type:varchar(100)"`
	SellerName  string          `json:"sellerName" gorm:"type:varchar(255);not null;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime;not null"`
}

// TableName pins the table to "products".
func (Product) TableName() string {
	return "products"
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
