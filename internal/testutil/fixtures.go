package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
)

// FixtureProduct creates a test product with sensible defaults. IDs are
// assigned by the database on insert.
func FixtureProduct(overrides ...func(*models.Product)) *models.Product {
	product := &models.Product{
		Name:          "Basmati Rice",
		Description:   "Long grain basmati rice, 25kg sacks",
		Category:      models.CategoryIngredient,
		UnitOfMeasure: "kg",
		ReorderLevel:  Dec("20"),
		Status:        models.StatusActive,
	}

	for _, override := range overrides {
		override(product)
	}

	return product
}

// FixtureInactiveProduct creates an inactive test product.
func FixtureInactiveProduct(overrides ...func(*models.Product)) *models.Product {
	return FixtureProduct(append([]func(*models.Product){
		func(p *models.Product) {
			p.Name = "Seasonal Syrup"
			p.Status = models.StatusInactive
		},
	}, overrides...)...)
}

// FixtureSupplier creates a test supplier with sensible defaults.
func FixtureSupplier(overrides ...func(*models.Supplier)) *models.Supplier {
	supplier := &models.Supplier{
		Name:          "Metro Fresh Produce",
		ContactPerson: "Dana Reyes",
		ContactNumber: "0917-555-0101",
		Email:         "orders@metrofresh.example",
		Address:       "14 Market Road",
		Status:        models.StatusActive,
	}

	for _, override := range overrides {
		override(supplier)
	}

	return supplier
}

// FixtureLocation creates a test storage location with sensible defaults.
func FixtureLocation(overrides ...func(*models.StorageLocation)) *models.StorageLocation {
	location := &models.StorageLocation{
		Name:               "Dry Storage A",
		AreaDescription:    "Main dry goods shelving",
		Capacity:           Dec("500"),
		TemperatureControl: models.TemperatureNone,
	}

	for _, override := range overrides {
		override(location)
	}

	return location
}

// FixtureFreezer creates a freezer storage location.
func FixtureFreezer(overrides ...func(*models.StorageLocation)) *models.StorageLocation {
	return FixtureLocation(append([]func(*models.StorageLocation){
		func(l *models.StorageLocation) {
			l.Name = "Walk-in Freezer"
			l.TemperatureControl = models.TemperatureFreezer
		},
	}, overrides...)...)
}

// FixtureMovement creates a test IN ledger entry for the given product and
// location.
func FixtureMovement(productID, locationID int64, overrides ...func(*models.StockMovement)) *models.StockMovement {
	movement := &models.StockMovement{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   Dec("50"),
		Type:       models.MovementIn,
		Date:       Date("2025-06-01"),
		Reason:     "Weekly restock",
	}

	for _, override := range overrides {
		override(movement)
	}

	return movement
}

// FixtureOutMovement creates a test OUT ledger entry.
func FixtureOutMovement(productID, locationID int64, overrides ...func(*models.StockMovement)) *models.StockMovement {
	return FixtureMovement(productID, locationID, append([]func(*models.StockMovement){
		func(m *models.StockMovement) {
			m.Type = models.MovementOut
			m.Quantity = Dec("10")
			m.Reason = "Lunch service"
		},
	}, overrides...)...)
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Date parses a YYYY-MM-DD date literal, panicking on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Int64Ptr returns a pointer to an int64 value.
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringPtr returns a pointer to a string value.
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to a time value.
func TimePtr(t time.Time) *time.Time {
	return &t
}
