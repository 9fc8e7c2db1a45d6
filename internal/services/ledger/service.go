// Package ledger records stock movements. The movement table is the single
// source of truth for stock: entries are append-only and every stock figure
// is folded from it on demand, so a correction is a compensating entry, not
// an edit.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/repository"
)

// Service provides ledger operations.
type Service struct {
	db        *sql.DB
	movements *repository.MovementRepository
	products  *repository.ProductRepository
	locations *repository.LocationRepository
	suppliers *repository.SupplierRepository
}

// NewService creates a new ledger service.
func NewService(db *sql.DB) *Service {
	return &Service{
		db:        db,
		movements: repository.NewMovementRepository(db),
		products:  repository.NewProductRepository(db),
		locations: repository.NewLocationRepository(db),
		suppliers: repository.NewSupplierRepository(db),
	}
}

// RecordMovement validates and appends a ledger entry. An OUT movement is
// rejected with ErrInsufficientStock if the product's folded stock could not
// cover it; an IN movement never fails a stock check.
func (s *Service) RecordMovement(ctx context.Context, input RecordMovementInput) (*models.StockMovement, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validating movement: %w", err)
	}

	product, err := s.products.Get(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", input.ProductID, err)
	}
	if _, err := s.locations.Get(ctx, input.LocationID); err != nil {
		return nil, fmt.Errorf("location %d: %w", input.LocationID, err)
	}
	if input.SupplierID != nil {
		if _, err := s.suppliers.Get(ctx, *input.SupplierID); err != nil {
			return nil, fmt.Errorf("supplier %d: %w", *input.SupplierID, err)
		}
	}

	if input.Type == models.MovementOut {
		available, err := s.movements.CurrentStock(ctx, input.ProductID, nil, nil)
		if err != nil {
			return nil, err
		}
		if available.Cmp(input.Quantity) < 0 {
			return nil, fmt.Errorf("product %q has %s %s available, cannot remove %s: %w",
				product.Name, available.String(), product.UnitOfMeasure,
				input.Quantity.String(), ErrInsufficientStock)
		}
	}

	movement := &models.StockMovement{
		ProductID:  input.ProductID,
		LocationID: input.LocationID,
		SupplierID: input.SupplierID,
		Quantity:   input.Quantity,
		Type:       input.Type,
		Date:       input.Date,
		Reason:     input.Reason,
	}

	if err := s.movements.Append(ctx, nil, movement); err != nil {
		return nil, err
	}

	return s.movements.Get(ctx, movement.ID)
}

// GetMovement retrieves a ledger entry by ID.
func (s *Service) GetMovement(ctx context.Context, id int64) (*models.StockMovement, error) {
	return s.movements.Get(ctx, id)
}

// ListMovements retrieves ledger entries with filtering and pagination,
// newest first.
func (s *Service) ListMovements(ctx context.Context, filter models.MovementFilter, page models.Pagination) (*models.MovementList, error) {
	return s.movements.List(ctx, filter, page)
}

// CurrentStock folds the ledger for a product, optionally scoped to a
// location and/or cut off at an as-of date.
func (s *Service) CurrentStock(ctx context.Context, productID int64, locationID *int64, asOf *time.Time) (decimal.Decimal, error) {
	return s.movements.CurrentStock(ctx, productID, locationID, asOf)
}

// MovementCount returns the total number of ledger entries, for the
// dashboard.
func (s *Service) MovementCount(ctx context.Context) (int, error) {
	return s.movements.Count(ctx)
}
