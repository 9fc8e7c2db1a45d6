package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/util"
)

// Config configures the seed data generator.
type Config struct {
	// Start is the first day of generated ledger history.
	Start time.Time
	// MonthsOfHistory is how many whole months of movements to generate.
	MonthsOfHistory int
	RandomSeed      int64
}

// DefaultConfig returns a default seed configuration with three months of
// history ending at the start of the current month.
func DefaultConfig() Config {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -3, 0)
	return Config{
		Start:           start,
		MonthsOfHistory: 3,
		RandomSeed:      1847,
	}
}

// Generator generates demo data for a kitchen.
type Generator struct {
	db  *sql.DB
	cfg Config
	rng *rand.Rand

	supplierIDs []int64
	locationIDs []int64
	productIDs  []int64

	// Running stock per product so generated OUT entries never overdraw.
	stock map[int64]decimal.Decimal

	movementCount int
}

// NewGenerator creates a new seed data generator.
func NewGenerator(db *sql.DB, cfg Config) *Generator {
	return &Generator{
		db:    db,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.RandomSeed)),
		stock: make(map[int64]decimal.Decimal),
	}
}

// Generate creates all seed data in a single transaction.
func (g *Generator) Generate(ctx context.Context) error {
	slog.Info("starting seed data generation",
		"start", g.cfg.Start.Format(util.DateFormat),
		"months", g.cfg.MonthsOfHistory,
	)

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := g.generateSuppliers(ctx, tx); err != nil {
		return fmt.Errorf("generating suppliers: %w", err)
	}
	if err := g.generateLocations(ctx, tx); err != nil {
		return fmt.Errorf("generating locations: %w", err)
	}
	if err := g.generateProducts(ctx, tx); err != nil {
		return fmt.Errorf("generating products: %w", err)
	}
	if err := g.generateMovementHistory(ctx, tx); err != nil {
		return fmt.Errorf("generating movement history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	slog.Info("seed data generation complete",
		"products", len(g.productIDs),
		"movements", g.movementCount,
	)

	return nil
}

func (g *Generator) generateSuppliers(ctx context.Context, tx *sql.Tx) error {
	slog.Debug("generating suppliers", "count", len(SeedSuppliers))

	query := `INSERT INTO Supplier (
		supplier_name, contact_person, contact_number, email, address, supplier_status
	) VALUES (?, ?, ?, ?, ?, ?)`

	for _, s := range SeedSuppliers {
		result, err := tx.ExecContext(ctx, query,
			s.Name, s.ContactPerson, s.ContactNumber, s.Email, s.Address, "Active",
		)
		if err != nil {
			return fmt.Errorf("inserting supplier %s: %w", s.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		g.supplierIDs = append(g.supplierIDs, id)
	}

	return nil
}

func (g *Generator) generateLocations(ctx context.Context, tx *sql.Tx) error {
	slog.Debug("generating locations", "count", len(SeedLocations))

	query := `INSERT INTO StorageLocation (
		location_name, area_description, capacity, temperature_control
	) VALUES (?, ?, ?, ?)`

	for _, l := range SeedLocations {
		result, err := tx.ExecContext(ctx, query,
			l.Name, l.AreaDescription, l.Capacity, l.TemperatureControl,
		)
		if err != nil {
			return fmt.Errorf("inserting location %s: %w", l.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		g.locationIDs = append(g.locationIDs, id)
	}

	return nil
}

func (g *Generator) generateProducts(ctx context.Context, tx *sql.Tx) error {
	slog.Debug("generating products", "count", len(SeedProducts))

	query := `INSERT INTO Product (
		product_name, description, category, unit_of_measure, reorder_level,
		supplier_id, location_id, product_status
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for _, p := range SeedProducts {
		result, err := tx.ExecContext(ctx, query,
			p.Name, p.Description, p.Category, p.UnitOfMeasure, p.ReorderLevel,
			g.supplierIDs[p.Supplier], g.locationIDs[p.Location], "Active",
		)
		if err != nil {
			return fmt.Errorf("inserting product %s: %w", p.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		g.productIDs = append(g.productIDs, id)
		g.stock[id] = decimal.Zero
	}

	return nil
}

// generateMovementHistory writes a plausible ledger: weekly deliveries from
// each product's supplier and randomized daily usage, never overdrawing the
// running stock.
func (g *Generator) generateMovementHistory(ctx context.Context, tx *sql.Tx) error {
	end := g.cfg.Start.AddDate(0, g.cfg.MonthsOfHistory, 0)

	for day := g.cfg.Start; day.Before(end); day = day.AddDate(0, 0, 1) {
		for i, p := range SeedProducts {
			productID := g.productIDs[i]

			// Delivery every Monday, plus day one.
			if day.Weekday() == time.Monday || day.Equal(g.cfg.Start) {
				qty := decimal.RequireFromString(p.DeliveryQty)
				supplierID := g.supplierIDs[p.Supplier]
				if err := g.insertMovement(ctx, tx, productID, g.locationIDs[p.Location],
					&supplierID, qty, "IN", day, "Scheduled delivery"); err != nil {
					return err
				}
				g.stock[productID] = g.stock[productID].Add(qty)
			}

			if p.DailyUseMax <= 0 {
				continue
			}

			// Usage most days, skipping roughly one day in five.
			if g.rng.Intn(5) == 0 {
				continue
			}
			use := decimal.NewFromInt(int64(1 + g.rng.Intn(p.DailyUseMax)))
			if use.Cmp(g.stock[productID]) > 0 {
				use = g.stock[productID]
			}
			if use.Sign() <= 0 {
				continue
			}
			reason := MovementReasons[g.rng.Intn(len(MovementReasons))]
			if err := g.insertMovement(ctx, tx, productID, g.locationIDs[p.Location],
				nil, use, "OUT", day, reason); err != nil {
				return err
			}
			g.stock[productID] = g.stock[productID].Sub(use)
		}
	}

	return nil
}

func (g *Generator) insertMovement(ctx context.Context, tx *sql.Tx, productID, locationID int64,
	supplierID *int64, qty decimal.Decimal, movementType string, date time.Time, reason string) error {

	query := `INSERT INTO StockMovement (
		product_id, location_id, supplier_id, quantity, movement_type, movement_date, reason
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	var supplier any
	if supplierID != nil {
		supplier = *supplierID
	}

	_, err := tx.ExecContext(ctx, query,
		productID, locationID, supplier, qty, movementType,
		date.Format(util.DateFormat), reason,
	)
	if err != nil {
		return fmt.Errorf("inserting movement for product %d on %s: %w",
			productID, date.Format(util.DateFormat), err)
	}

	g.movementCount++
	return nil
}
