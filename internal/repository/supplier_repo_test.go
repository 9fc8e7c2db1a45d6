package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/testutil"
)

func TestSupplierRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewSupplierRepository(db.DB)
	ctx := context.Background()

	t.Run("Create and Get", func(t *testing.T) {
		supplier := testutil.FixtureSupplier()

		if err := repo.Create(ctx, nil, supplier); err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}
		if supplier.ID == 0 {
			t.Error("expected generated ID to be assigned")
		}

		found, err := repo.Get(ctx, supplier.ID)
		if err != nil {
			t.Fatalf("failed to get supplier: %v", err)
		}
		if found.Name != supplier.Name {
			t.Errorf("expected name %q, got %q", supplier.Name, found.Name)
		}
		if found.ContactPerson != "Dana Reyes" {
			t.Errorf("expected contact person preserved, got %q", found.ContactPerson)
		}
		if found.Status != models.StatusActive {
			t.Errorf("expected Active status, got %s", found.Status)
		}
	})

	t.Run("Get nonexistent returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Create without optional fields", func(t *testing.T) {
		supplier := testutil.FixtureSupplier(func(s *models.Supplier) {
			s.Name = "Harbor Seafood"
			s.Email = ""
			s.Address = ""
		})

		if err := repo.Create(ctx, nil, supplier); err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}

		found, err := repo.Get(ctx, supplier.ID)
		if err != nil {
			t.Fatalf("failed to get supplier: %v", err)
		}
		if found.Email != "" || found.Address != "" {
			t.Errorf("expected empty optional fields, got email %q address %q", found.Email, found.Address)
		}
	})

	t.Run("Update", func(t *testing.T) {
		supplier := testutil.FixtureSupplier(func(s *models.Supplier) {
			s.Name = "Golden Grain Trading"
		})
		if err := repo.Create(ctx, nil, supplier); err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}

		supplier.ContactNumber = "0917-555-0199"
		supplier.Status = models.StatusInactive
		if err := repo.Update(ctx, nil, supplier); err != nil {
			t.Fatalf("failed to update supplier: %v", err)
		}

		found, err := repo.Get(ctx, supplier.ID)
		if err != nil {
			t.Fatalf("failed to get supplier: %v", err)
		}
		if found.ContactNumber != "0917-555-0199" {
			t.Errorf("expected updated contact number, got %q", found.ContactNumber)
		}
		if found.Status != models.StatusInactive {
			t.Errorf("expected Inactive status, got %s", found.Status)
		}
	})

	t.Run("Update nonexistent returns ErrNotFound", func(t *testing.T) {
		supplier := testutil.FixtureSupplier(func(s *models.Supplier) {
			s.ID = 9999
		})
		err := repo.Update(ctx, nil, supplier)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		supplier := testutil.FixtureSupplier(func(s *models.Supplier) {
			s.Name = "Short Lived Supplies"
		})
		if err := repo.Create(ctx, nil, supplier); err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}

		if err := repo.Delete(ctx, nil, supplier.ID); err != nil {
			t.Fatalf("failed to delete supplier: %v", err)
		}

		_, err := repo.Get(ctx, supplier.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Delete nonexistent returns ErrNotFound", func(t *testing.T) {
		err := repo.Delete(ctx, nil, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSupplierRepository_Delete_Referenced(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	suppliers := NewSupplierRepository(db.DB)
	products := NewProductRepository(db.DB)
	ctx := context.Background()

	supplier := testutil.FixtureSupplier()
	if err := suppliers.Create(ctx, nil, supplier); err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	product := testutil.FixtureProduct(func(p *models.Product) {
		p.SupplierID = &supplier.ID
	})
	if err := products.Create(ctx, nil, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	err := suppliers.Delete(ctx, nil, supplier.ID)
	if !errors.Is(err, ErrRowInUse) {
		t.Errorf("expected ErrRowInUse for referenced supplier, got %v", err)
	}

	if _, err := suppliers.Get(ctx, supplier.ID); err != nil {
		t.Errorf("expected supplier to remain after blocked delete: %v", err)
	}
}

func TestSupplierRepository_List(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewSupplierRepository(db.DB)
	ctx := context.Background()

	fixtures := []*models.Supplier{
		testutil.FixtureSupplier(),
		testutil.FixtureSupplier(func(s *models.Supplier) {
			s.Name = "Harbor Seafood"
			s.ContactPerson = "Miguel Santos"
		}),
		testutil.FixtureSupplier(func(s *models.Supplier) {
			s.Name = "Golden Grain Trading"
			s.Status = models.StatusInactive
		}),
	}
	for _, s := range fixtures {
		if err := repo.Create(ctx, nil, s); err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}
	}

	t.Run("List all ordered by name", func(t *testing.T) {
		list, err := repo.List(ctx, models.SupplierFilter{}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list suppliers: %v", err)
		}
		if list.Total != 3 {
			t.Fatalf("expected 3 suppliers, got %d", list.Total)
		}
		if list.Suppliers[0].Name != "Golden Grain Trading" {
			t.Errorf("expected alphabetical order, got %q first", list.Suppliers[0].Name)
		}
	})

	t.Run("Search by name", func(t *testing.T) {
		list, err := repo.List(ctx, models.SupplierFilter{Search: "Harbor"}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list suppliers: %v", err)
		}
		if list.Total != 1 {
			t.Fatalf("expected 1 match, got %d", list.Total)
		}
		if list.Suppliers[0].Name != "Harbor Seafood" {
			t.Errorf("expected Harbor Seafood, got %q", list.Suppliers[0].Name)
		}
	})

	t.Run("Search matches contact person", func(t *testing.T) {
		list, err := repo.List(ctx, models.SupplierFilter{Search: "Miguel"}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list suppliers: %v", err)
		}
		if list.Total != 1 {
			t.Errorf("expected 1 match on contact person, got %d", list.Total)
		}
	})

	t.Run("Filter by status", func(t *testing.T) {
		inactive := models.StatusInactive
		list, err := repo.List(ctx, models.SupplierFilter{Status: &inactive}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list suppliers: %v", err)
		}
		if list.Total != 1 {
			t.Errorf("expected 1 inactive supplier, got %d", list.Total)
		}
	})
}
