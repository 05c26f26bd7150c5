package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Money fields go over the wire as JSON numbers, matching the rest of
	// the API surface.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is an item held in stock. SupplierID is optional: products may be
// registered before a supplier relationship exists.
type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Price      decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Stock      int             `json:"stock" gorm:"not null;default:0"`
	CategoryID uint            `json:"category_id" gorm:"not null;index"`
	SupplierID *uint           `json:"supplier_id" gorm:"index"`
}
