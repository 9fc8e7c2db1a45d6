package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/testutil"
)

func setupTestDB(t *testing.T) *testutil.TestDB {
	t.Helper()

	db := testutil.NewTestDB(t)

	// Get migrations path relative to this file
	migrationsDir := filepath.Join("..", "database", "migrations", "sqlite")
	db.RunMigrations(t, migrationsDir)

	return db
}

func TestProductRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewProductRepository(db.DB)
	ctx := context.Background()

	t.Run("Create valid product", func(t *testing.T) {
		product := testutil.FixtureProduct()

		err := repo.Create(ctx, nil, product)
		if err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
		if product.ID == 0 {
			t.Error("expected generated ID to be assigned")
		}

		found, err := repo.Get(ctx, product.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if found.Name != product.Name {
			t.Errorf("expected name %q, got %q", product.Name, found.Name)
		}
		if found.Category != models.CategoryIngredient {
			t.Errorf("expected category Ingredient, got %s", found.Category)
		}
	})

	t.Run("Create with transaction", func(t *testing.T) {
		product := testutil.FixtureProduct(func(p *models.Product) {
			p.Name = "Olive Oil"
		})

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("failed to begin transaction: %v", err)
		}
		defer tx.Rollback()

		if err := repo.Create(ctx, tx, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("failed to commit transaction: %v", err)
		}

		found, err := repo.Get(ctx, product.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if found.Name != "Olive Oil" {
			t.Errorf("expected name Olive Oil, got %q", found.Name)
		}
	})
}

func TestProductRepository_Get(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewProductRepository(db.DB)
	ctx := context.Background()

	t.Run("Get nonexistent product returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("New product has zero derived stock", func(t *testing.T) {
		product := testutil.FixtureProduct()
		if err := repo.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		found, err := repo.Get(ctx, product.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if !found.CurrentStock.IsZero() {
			t.Errorf("expected zero stock with no movements, got %s", found.CurrentStock)
		}
		if found.StockLevel() != models.StockStatusOutOfStock {
			t.Errorf("expected OUT_OF_STOCK, got %s", found.StockLevel())
		}
	})

	t.Run("Get resolves supplier and location names", func(t *testing.T) {
		suppliers := NewSupplierRepository(db.DB)
		locations := NewLocationRepository(db.DB)

		supplier := testutil.FixtureSupplier()
		if err := suppliers.Create(ctx, nil, supplier); err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}
		location := testutil.FixtureLocation()
		if err := locations.Create(ctx, nil, location); err != nil {
			t.Fatalf("failed to create location: %v", err)
		}

		product := testutil.FixtureProduct(func(p *models.Product) {
			p.Name = "Chicken Breast"
			p.SupplierID = &supplier.ID
			p.LocationID = &location.ID
		})
		if err := repo.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		found, err := repo.Get(ctx, product.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if found.SupplierName != supplier.Name {
			t.Errorf("expected supplier %q, got %q", supplier.Name, found.SupplierName)
		}
		if found.LocationName != location.Name {
			t.Errorf("expected location %q, got %q", location.Name, found.LocationName)
		}
	})
}

func TestProductRepository_DerivedStock(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	products := NewProductRepository(db.DB)
	locations := NewLocationRepository(db.DB)
	movements := NewMovementRepository(db.DB)
	ctx := context.Background()

	product := testutil.FixtureProduct()
	if err := products.Create(ctx, nil, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	location := testutil.FixtureLocation()
	if err := locations.Create(ctx, nil, location); err != nil {
		t.Fatalf("failed to create location: %v", err)
	}

	// 50 in, 10 out, 20 in, 15 out = 45
	entries := []*models.StockMovement{
		testutil.FixtureMovement(product.ID, location.ID),
		testutil.FixtureOutMovement(product.ID, location.ID),
		testutil.FixtureMovement(product.ID, location.ID, func(m *models.StockMovement) {
			m.Quantity = testutil.Dec("20")
			m.Date = testutil.Date("2025-06-08")
		}),
		testutil.FixtureOutMovement(product.ID, location.ID, func(m *models.StockMovement) {
			m.Quantity = testutil.Dec("15")
			m.Date = testutil.Date("2025-06-09")
		}),
	}
	for _, m := range entries {
		if err := movements.Append(ctx, nil, m); err != nil {
			t.Fatalf("failed to append movement: %v", err)
		}
	}

	found, err := products.Get(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to get product: %v", err)
	}
	if !found.CurrentStock.Equal(testutil.Dec("45")) {
		t.Errorf("expected derived stock 45, got %s", found.CurrentStock)
	}
}

func TestProductRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewProductRepository(db.DB)
	ctx := context.Background()

	t.Run("Update existing product", func(t *testing.T) {
		product := testutil.FixtureProduct()
		if err := repo.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		product.Name = "Jasmine Rice"
		product.ReorderLevel = testutil.Dec("30")
		if err := repo.Update(ctx, nil, product); err != nil {
			t.Fatalf("failed to update product: %v", err)
		}

		found, err := repo.Get(ctx, product.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if found.Name != "Jasmine Rice" {
			t.Errorf("expected updated name, got %q", found.Name)
		}
		if !found.ReorderLevel.Equal(testutil.Dec("30")) {
			t.Errorf("expected reorder level 30, got %s", found.ReorderLevel)
		}
	})

	t.Run("Update nonexistent product returns ErrNotFound", func(t *testing.T) {
		product := testutil.FixtureProduct(func(p *models.Product) {
			p.ID = 9999
		})
		err := repo.Update(ctx, nil, product)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	products := NewProductRepository(db.DB)
	locations := NewLocationRepository(db.DB)
	movements := NewMovementRepository(db.DB)
	ctx := context.Background()

	t.Run("Delete product without movements", func(t *testing.T) {
		product := testutil.FixtureProduct()
		if err := products.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		if err := products.Delete(ctx, nil, product.ID); err != nil {
			t.Fatalf("failed to delete product: %v", err)
		}

		_, err := products.Get(ctx, product.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Delete product with movements returns ErrRowInUse", func(t *testing.T) {
		product := testutil.FixtureProduct(func(p *models.Product) {
			p.Name = "Tomato Sauce"
		})
		if err := products.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
		location := testutil.FixtureLocation(func(l *models.StorageLocation) {
			l.Name = "Dry Storage B"
		})
		if err := locations.Create(ctx, nil, location); err != nil {
			t.Fatalf("failed to create location: %v", err)
		}
		if err := movements.Append(ctx, nil, testutil.FixtureMovement(product.ID, location.ID)); err != nil {
			t.Fatalf("failed to append movement: %v", err)
		}

		err := products.Delete(ctx, nil, product.ID)
		if !errors.Is(err, ErrRowInUse) {
			t.Errorf("expected ErrRowInUse, got %v", err)
		}

		// Row must survive the failed delete
		if _, err := products.Get(ctx, product.ID); err != nil {
			t.Errorf("expected product to remain after blocked delete: %v", err)
		}
	})

	t.Run("Delete nonexistent product returns ErrNotFound", func(t *testing.T) {
		err := products.Delete(ctx, nil, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestProductRepository_List(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	products := NewProductRepository(db.DB)
	locations := NewLocationRepository(db.DB)
	movements := NewMovementRepository(db.DB)
	ctx := context.Background()

	location := testutil.FixtureLocation()
	if err := locations.Create(ctx, nil, location); err != nil {
		t.Fatalf("failed to create location: %v", err)
	}

	// Rice gets stocked above reorder; Oil stays at zero.
	rice := testutil.FixtureProduct()
	oil := testutil.FixtureProduct(func(p *models.Product) {
		p.Name = "Olive Oil"
		p.UnitOfMeasure = "L"
		p.ReorderLevel = testutil.Dec("5")
	})
	inactive := testutil.FixtureInactiveProduct()
	for _, p := range []*models.Product{rice, oil, inactive} {
		if err := products.Create(ctx, nil, p); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}
	if err := movements.Append(ctx, nil, testutil.FixtureMovement(rice.ID, location.ID)); err != nil {
		t.Fatalf("failed to append movement: %v", err)
	}

	t.Run("List all", func(t *testing.T) {
		list, err := products.List(ctx, models.ProductFilter{}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		if list.Total != 3 {
			t.Errorf("expected 3 products, got %d", list.Total)
		}
	})

	t.Run("Filter by status", func(t *testing.T) {
		active := models.StatusActive
		list, err := products.List(ctx, models.ProductFilter{Status: &active}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		if list.Total != 2 {
			t.Errorf("expected 2 active products, got %d", list.Total)
		}
	})

	t.Run("Filter by search", func(t *testing.T) {
		list, err := products.List(ctx, models.ProductFilter{Search: "Oil"}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		if list.Total != 1 {
			t.Fatalf("expected 1 match, got %d", list.Total)
		}
		if list.Products[0].Name != "Olive Oil" {
			t.Errorf("expected Olive Oil, got %q", list.Products[0].Name)
		}
	})

	t.Run("Low stock filter compares derived stock", func(t *testing.T) {
		list, err := products.List(ctx, models.ProductFilter{LowStockOnly: true}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		// Oil (0 <= 5) and the inactive product (0 <= 20) qualify; stocked rice does not.
		if list.Total != 2 {
			t.Errorf("expected 2 low stock products, got %d", list.Total)
		}
		for _, p := range list.Products {
			if p.Name == "Basmati Rice" {
				t.Error("stocked product should not appear in low stock list")
			}
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		list, err := products.List(ctx, models.ProductFilter{}, models.Pagination{Page: 1, PageSize: 2})
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		if len(list.Products) != 2 {
			t.Errorf("expected page of 2, got %d", len(list.Products))
		}
		if list.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", list.TotalPages)
		}
	})
}

func TestProductRepository_CountByStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewProductRepository(db.DB)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Create(ctx, nil, testutil.FixtureProduct()); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}
	if err := repo.Create(ctx, nil, testutil.FixtureInactiveProduct()); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	if counts[models.StatusActive] != 2 {
		t.Errorf("expected 2 active, got %d", counts[models.StatusActive])
	}
	if counts[models.StatusInactive] != 1 {
		t.Errorf("expected 1 inactive, got %d", counts[models.StatusInactive])
	}
}
