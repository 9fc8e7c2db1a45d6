package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/testutil"
)

// reportFixture seeds a small June 2025 ledger:
//
//	Rice:  IN 50 (Jun 1, Metro Fresh), OUT 10 (Jun 5), OUT 5 (Jun 12)
//	Oil:   IN 20 (Jun 3, Metro Fresh), OUT 2 (Jun 5)
//	Syrup: inactive, IN 5 (Jun 4)
//	May carryover for Rice: IN 30 (May 20)
func reportFixture(t *testing.T, db *testutil.TestDB) (rice, oil *models.Product) {
	t.Helper()

	ctx := context.Background()
	products := NewProductRepository(db.DB)
	locations := NewLocationRepository(db.DB)
	suppliers := NewSupplierRepository(db.DB)
	movements := NewMovementRepository(db.DB)

	location := testutil.FixtureLocation()
	if err := locations.Create(ctx, nil, location); err != nil {
		t.Fatalf("failed to create location: %v", err)
	}
	supplier := testutil.FixtureSupplier()
	if err := suppliers.Create(ctx, nil, supplier); err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	rice = testutil.FixtureProduct(func(p *models.Product) {
		p.LocationID = &location.ID
	})
	oil = testutil.FixtureProduct(func(p *models.Product) {
		p.Name = "Olive Oil"
		p.UnitOfMeasure = "L"
		p.ReorderLevel = testutil.Dec("25")
		p.LocationID = &location.ID
	})
	syrup := testutil.FixtureInactiveProduct()
	for _, p := range []*models.Product{rice, oil, syrup} {
		if err := products.Create(ctx, nil, p); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}

	entries := []*models.StockMovement{
		testutil.FixtureMovement(rice.ID, location.ID, func(m *models.StockMovement) {
			m.Quantity = testutil.Dec("30")
			m.Date = testutil.Date("2025-05-20")
		}),
		testutil.FixtureMovement(rice.ID, location.ID, func(m *models.StockMovement) {
			m.SupplierID = &supplier.ID
			m.Date = testutil.Date("2025-06-01")
		}),
		testutil.FixtureOutMovement(rice.ID, location.ID, func(m *models.StockMovement) {
			m.Date = testutil.Date("2025-06-05")
		}),
		testutil.FixtureOutMovement(rice.ID, location.ID, func(m *models.StockMovement) {
			m.Quantity = testutil.Dec("5")
			m.Date = testutil.Date("2025-06-12")
		}),
		testutil.FixtureMovement(oil.ID, location.ID, func(m *models.StockMovement) {
			m.SupplierID = &supplier.ID
			m.Quantity = testutil.Dec("20")
			m.Date = testutil.Date("2025-06-03")
		}),
		testutil.FixtureOutMovement(oil.ID, location.ID, func(m *models.StockMovement) {
			m.Quantity = testutil.Dec("2")
			m.Date = testutil.Date("2025-06-05")
		}),
		testutil.FixtureMovement(syrup.ID, location.ID, func(m *models.StockMovement) {
			m.Quantity = testutil.Dec("5")
			m.Date = testutil.Date("2025-06-04")
		}),
	}
	for _, m := range entries {
		if err := movements.Append(ctx, nil, m); err != nil {
			t.Fatalf("failed to append movement: %v", err)
		}
	}

	return rice, oil
}

func june2025() models.ReportPeriod {
	return models.ReportPeriod{Year: 2025, Month: time.June}
}

func TestReportRepository_InventorySnapshot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	rice, oil := reportFixture(t, db)
	repo := NewReportRepository(db.DB)
	ctx := context.Background()

	rows, err := repo.InventorySnapshot(ctx, june2025())
	if err != nil {
		t.Fatalf("failed to query snapshot: %v", err)
	}

	// Inactive syrup is excluded; only rice and oil appear, name order.
	if len(rows) != 2 {
		t.Fatalf("expected 2 snapshot rows, got %d", len(rows))
	}

	riceRow := rows[0]
	if riceRow.ProductID != rice.ID {
		riceRow = rows[1]
	}
	// 30 + 50 - 10 - 5 = 65 as of June 30
	if !riceRow.Stock.Equal(testutil.Dec("65")) {
		t.Errorf("expected rice stock 65, got %s", riceRow.Stock)
	}
	if riceRow.Status != models.StockStatusOK {
		t.Errorf("expected rice OK, got %s", riceRow.Status)
	}
	if riceRow.LocationName != "Dry Storage A" {
		t.Errorf("expected location name resolved, got %q", riceRow.LocationName)
	}

	for _, row := range rows {
		if row.ProductID == oil.ID {
			// 20 - 2 = 18, at or below reorder level 25
			if !row.Stock.Equal(testutil.Dec("18")) {
				t.Errorf("expected oil stock 18, got %s", row.Stock)
			}
			if row.Status != models.StockStatusLow {
				t.Errorf("expected oil LOW, got %s", row.Status)
			}
		}
	}
}

func TestReportRepository_InventorySnapshot_AsOfCutoff(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	rice, _ := reportFixture(t, db)
	repo := NewReportRepository(db.DB)
	ctx := context.Background()

	// May snapshot sees only the carryover delivery.
	rows, err := repo.InventorySnapshot(ctx, models.ReportPeriod{Year: 2025, Month: time.May})
	if err != nil {
		t.Fatalf("failed to query snapshot: %v", err)
	}

	for _, row := range rows {
		if row.ProductID == rice.ID {
			if !row.Stock.Equal(testutil.Dec("30")) {
				t.Errorf("expected rice stock 30 as of May, got %s", row.Stock)
			}
			return
		}
	}
	t.Error("expected rice row in May snapshot")
}

func TestReportRepository_MovementSummary(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	rice, oil := reportFixture(t, db)
	repo := NewReportRepository(db.DB)
	ctx := context.Background()

	rows, err := repo.MovementSummary(ctx, june2025())
	if err != nil {
		t.Fatalf("failed to query movement summary: %v", err)
	}

	// Rice, oil and syrup all moved in June.
	if len(rows) != 3 {
		t.Fatalf("expected 3 summary rows, got %d", len(rows))
	}

	for _, row := range rows {
		switch row.ProductID {
		case rice.ID:
			// May carryover excluded from June counts.
			if row.InCount != 1 || row.OutCount != 2 {
				t.Errorf("rice counts = %d in / %d out, want 1 / 2", row.InCount, row.OutCount)
			}
			if !row.InQuantity.Equal(testutil.Dec("50")) {
				t.Errorf("rice in quantity = %s, want 50", row.InQuantity)
			}
			if !row.OutQuantity.Equal(testutil.Dec("15")) {
				t.Errorf("rice out quantity = %s, want 15", row.OutQuantity)
			}
		case oil.ID:
			if row.InCount != 1 || row.OutCount != 1 {
				t.Errorf("oil counts = %d in / %d out, want 1 / 1", row.InCount, row.OutCount)
			}
		}
	}
}

func TestReportRepository_SupplierDeliveries(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	reportFixture(t, db)
	repo := NewReportRepository(db.DB)
	ctx := context.Background()

	rows, err := repo.SupplierDeliveries(ctx, june2025())
	if err != nil {
		t.Fatalf("failed to query supplier deliveries: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 supplier row, got %d", len(rows))
	}
	row := rows[0]
	if row.SupplierName != "Metro Fresh Produce" {
		t.Errorf("expected Metro Fresh Produce, got %q", row.SupplierName)
	}
	// Two IN deliveries named the supplier: 50 rice + 20 oil.
	if row.DeliveryCount != 2 {
		t.Errorf("expected 2 deliveries, got %d", row.DeliveryCount)
	}
	if !row.TotalQuantity.Equal(testutil.Dec("70")) {
		t.Errorf("expected total quantity 70, got %s", row.TotalQuantity)
	}
}

func TestReportRepository_SalesTotals(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	rice, oil := reportFixture(t, db)
	repo := NewReportRepository(db.DB)
	ctx := context.Background()

	rows, err := repo.SalesTotals(ctx, june2025())
	if err != nil {
		t.Fatalf("failed to query sales totals: %v", err)
	}

	// Ordered by total sold descending: rice 15, oil 2.
	if len(rows) != 2 {
		t.Fatalf("expected 2 sales rows, got %d", len(rows))
	}
	if rows[0].ProductID != rice.ID {
		t.Errorf("expected rice first by volume, got product %d", rows[0].ProductID)
	}
	if !rows[0].TotalSold.Equal(testutil.Dec("15")) {
		t.Errorf("expected rice total 15, got %s", rows[0].TotalSold)
	}
	if rows[0].DaysWithSales != 2 {
		t.Errorf("expected rice sold on 2 days, got %d", rows[0].DaysWithSales)
	}
	if rows[1].ProductID != oil.ID {
		t.Errorf("expected oil second, got product %d", rows[1].ProductID)
	}
	if rows[1].DaysWithSales != 1 {
		t.Errorf("expected oil sold on 1 day, got %d", rows[1].DaysWithSales)
	}
}

func TestReportRepository_EmptyPeriod(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	reportFixture(t, db)
	repo := NewReportRepository(db.DB)
	ctx := context.Background()
	january := models.ReportPeriod{Year: 2025, Month: time.January}

	if rows, err := repo.MovementSummary(ctx, january); err != nil || len(rows) != 0 {
		t.Errorf("expected empty movement summary, got %d rows, err %v", len(rows), err)
	}
	if rows, err := repo.SupplierDeliveries(ctx, january); err != nil || len(rows) != 0 {
		t.Errorf("expected empty supplier deliveries, got %d rows, err %v", len(rows), err)
	}
	if rows, err := repo.SalesTotals(ctx, january); err != nil || len(rows) != 0 {
		t.Errorf("expected empty sales totals, got %d rows, err %v", len(rows), err)
	}
}
