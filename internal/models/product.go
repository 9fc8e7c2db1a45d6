package models

import (
	"github.com/shopspring/decimal"
)

// ProductCategory represents a product category.
type ProductCategory string

const (
	CategoryIngredient     ProductCategory = "Ingredient"
	CategoryPackaging      ProductCategory = "Packaging"
	CategoryBeverage       ProductCategory = "Beverage"
	CategoryEquipment      ProductCategory = "Equipment"
	CategoryCleaningSupply ProductCategory = "Cleaning Supply"
	CategoryUtensil        ProductCategory = "Utensil"
	CategoryOthers         ProductCategory = "Others"
)

func (c ProductCategory) String() string {
	return string(c)
}

// Valid reports whether the category is one of the known values.
func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ProductCategories lists all categories in display order.
func ProductCategories() []ProductCategory {
	return []ProductCategory{
		CategoryIngredient,
		CategoryPackaging,
		CategoryBeverage,
		CategoryEquipment,
		CategoryCleaningSupply,
		CategoryUtensil,
		CategoryOthers,
	}
}

// StockStatus classifies a product's derived stock level against its
// reorder level.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StockStatusLow        StockStatus = "LOW"
	StockStatusOK         StockStatus = "OK"
)

func (s StockStatus) String() string {
	return string(s)
}

// ClassifyStock derives the stock status for a stock level and reorder
// level. Stock exactly at the reorder level is LOW (inclusive boundary).
func ClassifyStock(stock, reorderLevel decimal.Decimal) StockStatus {
	switch {
	case stock.Sign() <= 0:
		return StockStatusOutOfStock
	case stock.Cmp(reorderLevel) <= 0:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}

// Product represents an inventory product. Stock is never stored on the
// product row; CurrentStock is derived from the movement ledger when the
// product is loaded through a listing query.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Category      ProductCategory
	UnitOfMeasure string
	ReorderLevel  decimal.Decimal
	SupplierID    *int64
	LocationID    *int64
	Status        Status

	// Joined fields
	SupplierName string
	LocationName string

	// Derived from the ledger, never persisted
	CurrentStock decimal.Decimal
}

// StockLevel returns the stock status of the derived current stock.
func (p *Product) StockLevel() StockStatus {
	return ClassifyStock(p.CurrentStock, p.ReorderLevel)
}

// ProductFilter defines filters for querying products.
type ProductFilter struct {
	Search       string
	Status       *Status
	Category     *ProductCategory
	LocationID   *int64
	SupplierID   *int64
	LowStockOnly bool
}

// ProductList represents a paginated list of products.
type ProductList struct {
	Products   []*Product
	Total      int
	Page       int
	TotalPages int
}
