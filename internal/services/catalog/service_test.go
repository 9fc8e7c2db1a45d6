package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/repository"
	"github.com/pantryos/pantryos/internal/testutil"
)

func setupService(t *testing.T) (*Service, *testutil.TestDB) {
	t.Helper()

	db := testutil.NewTestDB(t)
	migrationsDir := filepath.Join("..", "..", "database", "migrations", "sqlite")
	db.RunMigrations(t, migrationsDir)

	return NewService(db.DB), db
}

func validProductInput() CreateProductInput {
	return CreateProductInput{
		Name:          "Basmati Rice",
		Description:   "Long grain basmati rice",
		Category:      models.CategoryIngredient,
		UnitOfMeasure: "kg",
		ReorderLevel:  testutil.Dec("20"),
		Status:        models.StatusActive,
	}
}

func TestService_CreateProduct(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)
	ctx := context.Background()

	t.Run("Valid input", func(t *testing.T) {
		product, err := svc.CreateProduct(ctx, validProductInput())
		if err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
		if product.ID == 0 {
			t.Error("expected generated ID to be assigned")
		}
	})

	t.Run("Validation rejects before any database call", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(*CreateProductInput)
			wantMsg string
		}{
			{"Empty name", func(in *CreateProductInput) { in.Name = "" }, "product name is required"},
			{"Numeric-only name", func(in *CreateProductInput) { in.Name = "12345" }, "product name is required"},
			{"Invalid category", func(in *CreateProductInput) { in.Category = "Produce" }, "invalid category"},
			{"Empty unit", func(in *CreateProductInput) { in.UnitOfMeasure = "" }, "unit of measure is required"},
			{"Negative reorder level", func(in *CreateProductInput) { in.ReorderLevel = testutil.Dec("-1") }, "reorder level cannot be negative"},
			{"Invalid status", func(in *CreateProductInput) { in.Status = "Retired" }, "invalid status"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := validProductInput()
				tt.mutate(&input)

				_, err := svc.CreateProduct(ctx, input)
				if err == nil {
					t.Fatal("expected validation error")
				}
			})
		}

		// Nothing reached the database.
		db.AssertRowCount(t, "Product", 1)
	})

	t.Run("Unknown supplier reference rejected", func(t *testing.T) {
		input := validProductInput()
		input.Name = "Chicken Breast"
		input.SupplierID = testutil.Int64Ptr(9999)

		_, err := svc.CreateProduct(ctx, input)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown supplier, got %v", err)
		}
	})

	t.Run("Unknown location reference rejected", func(t *testing.T) {
		input := validProductInput()
		input.Name = "Chicken Breast"
		input.LocationID = testutil.Int64Ptr(9999)

		_, err := svc.CreateProduct(ctx, input)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown location, got %v", err)
		}
	})
}

func TestService_UpdateProduct(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProductInput())
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	t.Run("Valid update", func(t *testing.T) {
		input := UpdateProductInput{ID: created.ID, CreateProductInput: validProductInput()}
		input.Name = "Jasmine Rice"

		updated, err := svc.UpdateProduct(ctx, input)
		if err != nil {
			t.Fatalf("failed to update product: %v", err)
		}
		if updated.Name != "Jasmine Rice" {
			t.Errorf("expected updated name, got %q", updated.Name)
		}
	})

	t.Run("Missing ID rejected", func(t *testing.T) {
		input := UpdateProductInput{CreateProductInput: validProductInput()}
		if _, err := svc.UpdateProduct(ctx, input); err == nil {
			t.Error("expected validation error for missing ID")
		}
	})

	t.Run("Nonexistent product", func(t *testing.T) {
		input := UpdateProductInput{ID: 9999, CreateProductInput: validProductInput()}
		_, err := svc.UpdateProduct(ctx, input)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestService_DeleteProduct(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, validProductInput())
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	location, err := svc.CreateLocation(ctx, CreateLocationInput{
		Name:               "Dry Storage A",
		Capacity:           testutil.Dec("500"),
		TemperatureControl: models.TemperatureNone,
	})
	if err != nil {
		t.Fatalf("failed to create location: %v", err)
	}

	movements := repository.NewMovementRepository(db.DB)
	if err := movements.Append(ctx, nil, testutil.FixtureMovement(product.ID, location.ID)); err != nil {
		t.Fatalf("failed to append movement: %v", err)
	}

	err = svc.DeleteProduct(ctx, product.ID)
	if !errors.Is(err, repository.ErrRowInUse) {
		t.Errorf("expected ErrRowInUse for product with ledger entries, got %v", err)
	}
}

func TestService_LowStockProducts(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)
	ctx := context.Background()

	stocked, err := svc.CreateProduct(ctx, validProductInput())
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	input := validProductInput()
	input.Name = "Olive Oil"
	empty, err := svc.CreateProduct(ctx, input)
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	inactive := validProductInput()
	inactive.Name = "Seasonal Syrup"
	inactive.Status = models.StatusInactive
	if _, err := svc.CreateProduct(ctx, inactive); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	location, err := svc.CreateLocation(ctx, CreateLocationInput{
		Name:               "Dry Storage A",
		Capacity:           testutil.Dec("500"),
		TemperatureControl: models.TemperatureNone,
	})
	if err != nil {
		t.Fatalf("failed to create location: %v", err)
	}
	movements := repository.NewMovementRepository(db.DB)
	if err := movements.Append(ctx, nil, testutil.FixtureMovement(stocked.ID, location.ID)); err != nil {
		t.Fatalf("failed to append movement: %v", err)
	}

	low, err := svc.LowStockProducts(ctx)
	if err != nil {
		t.Fatalf("failed to list low stock products: %v", err)
	}

	// The stocked product is above reorder; the inactive one is excluded.
	if len(low) != 1 {
		t.Fatalf("expected 1 low stock product, got %d", len(low))
	}
	if low[0].ID != empty.ID {
		t.Errorf("expected product %d low, got %d", empty.ID, low[0].ID)
	}
}

func TestService_Suppliers(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)
	ctx := context.Background()

	t.Run("Create requires contact fields", func(t *testing.T) {
		_, err := svc.CreateSupplier(ctx, CreateSupplierInput{
			Name:   "Metro Fresh Produce",
			Status: models.StatusActive,
		})
		if err == nil {
			t.Error("expected validation error for missing contact fields")
		}
	})

	supplier, err := svc.CreateSupplier(ctx, CreateSupplierInput{
		Name:          "Metro Fresh Produce",
		ContactPerson: "Dana Reyes",
		ContactNumber: "0917-555-0101",
		Status:        models.StatusActive,
	})
	if err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	t.Run("Detail includes delivery history", func(t *testing.T) {
		location, err := svc.CreateLocation(ctx, CreateLocationInput{
			Name:               "Dry Storage A",
			Capacity:           testutil.Dec("500"),
			TemperatureControl: models.TemperatureNone,
		})
		if err != nil {
			t.Fatalf("failed to create location: %v", err)
		}
		product, err := svc.CreateProduct(ctx, validProductInput())
		if err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		movements := repository.NewMovementRepository(db.DB)
		entry := testutil.FixtureMovement(product.ID, location.ID, func(m *models.StockMovement) {
			m.SupplierID = &supplier.ID
		})
		if err := movements.Append(ctx, nil, entry); err != nil {
			t.Fatalf("failed to append movement: %v", err)
		}

		detail, err := svc.GetSupplierDetail(ctx, supplier.ID)
		if err != nil {
			t.Fatalf("failed to get supplier detail: %v", err)
		}
		if detail.MovementCount != 1 {
			t.Errorf("expected 1 movement, got %d", detail.MovementCount)
		}
		if len(detail.Recent) != 1 {
			t.Errorf("expected 1 recent entry, got %d", len(detail.Recent))
		}
	})

	t.Run("Delete referenced supplier blocked", func(t *testing.T) {
		err := svc.DeleteSupplier(ctx, supplier.ID)
		if !errors.Is(err, repository.ErrRowInUse) {
			t.Errorf("expected ErrRowInUse, got %v", err)
		}
	})
}

func TestService_Locations(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)
	ctx := context.Background()

	t.Run("Create rejects invalid temperature control", func(t *testing.T) {
		_, err := svc.CreateLocation(ctx, CreateLocationInput{
			Name:               "Mystery Box",
			Capacity:           testutil.Dec("10"),
			TemperatureControl: "Cryogenic",
		})
		if err == nil {
			t.Error("expected validation error for unknown temperature control")
		}
	})

	location, err := svc.CreateLocation(ctx, CreateLocationInput{
		Name:               "Walk-in Freezer",
		AreaDescription:    "Back of house",
		Capacity:           testutil.Dec("300"),
		TemperatureControl: models.TemperatureFreezer,
	})
	if err != nil {
		t.Fatalf("failed to create location: %v", err)
	}

	t.Run("Detail lists assigned products", func(t *testing.T) {
		input := validProductInput()
		input.Name = "Frozen Dumplings"
		input.LocationID = &location.ID
		if _, err := svc.CreateProduct(ctx, input); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		detail, err := svc.GetLocationDetail(ctx, location.ID)
		if err != nil {
			t.Fatalf("failed to get location detail: %v", err)
		}
		if len(detail.Products) != 1 {
			t.Fatalf("expected 1 assigned product, got %d", len(detail.Products))
		}
		if detail.Products[0].Name != "Frozen Dumplings" {
			t.Errorf("expected Frozen Dumplings, got %q", detail.Products[0].Name)
		}
	})

	t.Run("Delete referenced location blocked", func(t *testing.T) {
		err := svc.DeleteLocation(ctx, location.ID)
		if !errors.Is(err, repository.ErrRowInUse) {
			t.Errorf("expected ErrRowInUse, got %v", err)
		}
	})
}
