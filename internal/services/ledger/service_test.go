package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

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

// seedCatalog creates a product, location and supplier directly through the
// repositories.
func seedCatalog(t *testing.T, db *testutil.TestDB) (*models.Product, *models.StorageLocation, *models.Supplier) {
	t.Helper()

	ctx := context.Background()

	product := testutil.FixtureProduct()
	if err := repository.NewProductRepository(db.DB).Create(ctx, nil, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	location := testutil.FixtureLocation()
	if err := repository.NewLocationRepository(db.DB).Create(ctx, nil, location); err != nil {
		t.Fatalf("failed to create location: %v", err)
	}
	supplier := testutil.FixtureSupplier()
	if err := repository.NewSupplierRepository(db.DB).Create(ctx, nil, supplier); err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	return product, location, supplier
}

func TestService_RecordMovement(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)

	product, location, supplier := seedCatalog(t, db)
	ctx := context.Background()

	t.Run("IN movement never stock checked", func(t *testing.T) {
		movement, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: location.ID,
			SupplierID: &supplier.ID,
			Quantity:   testutil.Dec("50"),
			Type:       models.MovementIn,
			Date:       testutil.Date("2025-06-01"),
			Reason:     "Weekly restock",
		})
		if err != nil {
			t.Fatalf("failed to record movement: %v", err)
		}
		if movement.ID == 0 {
			t.Error("expected generated ID to be assigned")
		}
		if movement.SupplierName != supplier.Name {
			t.Errorf("expected supplier name resolved, got %q", movement.SupplierName)
		}
	})

	t.Run("OUT within available stock", func(t *testing.T) {
		movement, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: location.ID,
			Quantity:   testutil.Dec("20"),
			Type:       models.MovementOut,
			Date:       testutil.Date("2025-06-02"),
			Reason:     "Lunch service",
		})
		if err != nil {
			t.Fatalf("failed to record movement: %v", err)
		}
		if movement.Type != models.MovementOut {
			t.Errorf("expected OUT, got %s", movement.Type)
		}
	})

	t.Run("OUT exceeding stock rejected", func(t *testing.T) {
		// 50 in - 20 out leaves 30 available.
		_, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: location.ID,
			Quantity:   testutil.Dec("30.01"),
			Type:       models.MovementOut,
			Date:       testutil.Date("2025-06-03"),
		})
		if !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("OUT of exact remaining stock allowed", func(t *testing.T) {
		_, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: location.ID,
			Quantity:   testutil.Dec("30"),
			Type:       models.MovementOut,
			Date:       testutil.Date("2025-06-04"),
		})
		if err != nil {
			t.Fatalf("expected draining to zero to succeed: %v", err)
		}

		stock, err := svc.CurrentStock(ctx, product.ID, nil, nil)
		if err != nil {
			t.Fatalf("failed to fold stock: %v", err)
		}
		if !stock.IsZero() {
			t.Errorf("expected zero stock, got %s", stock)
		}
	})

	t.Run("OUT from empty stock rejected", func(t *testing.T) {
		_, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: location.ID,
			Quantity:   testutil.Dec("1"),
			Type:       models.MovementOut,
			Date:       testutil.Date("2025-06-05"),
		})
		if !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}
	})
}

func TestService_RecordMovement_Validation(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)

	product, location, _ := seedCatalog(t, db)
	ctx := context.Background()

	valid := RecordMovementInput{
		ProductID:  product.ID,
		LocationID: location.ID,
		Quantity:   testutil.Dec("10"),
		Type:       models.MovementIn,
		Date:       testutil.Date("2025-06-01"),
	}

	tests := []struct {
		name   string
		mutate func(*RecordMovementInput)
	}{
		{"Missing product", func(in *RecordMovementInput) { in.ProductID = 0 }},
		{"Missing location", func(in *RecordMovementInput) { in.LocationID = 0 }},
		{"Zero quantity", func(in *RecordMovementInput) { in.Quantity = testutil.Dec("0") }},
		{"Negative quantity", func(in *RecordMovementInput) { in.Quantity = testutil.Dec("-5") }},
		{"Invalid type", func(in *RecordMovementInput) { in.Type = "TRANSFER" }},
		{"Lowercase type", func(in *RecordMovementInput) { in.Type = "in" }},
		{"Zero date", func(in *RecordMovementInput) { in.Date = time.Time{} }},
		{"Invalid supplier pointer", func(in *RecordMovementInput) { in.SupplierID = testutil.Int64Ptr(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			if _, err := svc.RecordMovement(ctx, input); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	// No ledger rows were written by the rejected inputs.
	db.AssertRowCount(t, "StockMovement", 0)
}

func TestService_RecordMovement_UnknownRefs(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)

	product, location, _ := seedCatalog(t, db)
	ctx := context.Background()

	t.Run("Unknown product", func(t *testing.T) {
		_, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  9999,
			LocationID: location.ID,
			Quantity:   testutil.Dec("10"),
			Type:       models.MovementIn,
			Date:       testutil.Date("2025-06-01"),
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Unknown location", func(t *testing.T) {
		_, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: 9999,
			Quantity:   testutil.Dec("10"),
			Type:       models.MovementIn,
			Date:       testutil.Date("2025-06-01"),
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Unknown supplier", func(t *testing.T) {
		_, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: location.ID,
			SupplierID: testutil.Int64Ptr(9999),
			Quantity:   testutil.Dec("10"),
			Type:       models.MovementIn,
			Date:       testutil.Date("2025-06-01"),
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestService_ListMovements(t *testing.T) {
	svc, db := setupService(t)
	defer db.Close(t)

	product, location, _ := seedCatalog(t, db)
	ctx := context.Background()

	dates := []string{"2025-06-01", "2025-06-10", "2025-06-20"}
	for _, d := range dates {
		_, err := svc.RecordMovement(ctx, RecordMovementInput{
			ProductID:  product.ID,
			LocationID: location.ID,
			Quantity:   testutil.Dec("10"),
			Type:       models.MovementIn,
			Date:       testutil.Date(d),
		})
		if err != nil {
			t.Fatalf("failed to record movement: %v", err)
		}
	}

	list, err := svc.ListMovements(ctx, models.MovementFilter{}, models.DefaultPagination())
	if err != nil {
		t.Fatalf("failed to list movements: %v", err)
	}
	if list.Total != 3 {
		t.Fatalf("expected 3 movements, got %d", list.Total)
	}
	if !list.Movements[0].Date.Equal(testutil.Date("2025-06-20")) {
		t.Errorf("expected newest first, got %v", list.Movements[0].Date)
	}

	count, err := svc.MovementCount(ctx)
	if err != nil {
		t.Fatalf("failed to count movements: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}
