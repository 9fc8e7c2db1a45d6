// Package reports produces the four monthly reports from the movement
// ledger: inventory snapshot, movement summary, supplier deliveries and
// sales. All aggregation runs in the database; month boundaries and derived
// averages are computed here.
package reports

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/repository"
)

// Service provides monthly reporting operations.
type Service struct {
	db      *sql.DB
	reports *repository.ReportRepository
}

// NewService creates a new reports service.
func NewService(db *sql.DB) *Service {
	return &Service{
		db:      db,
		reports: repository.NewReportRepository(db),
	}
}

// InventoryReport returns each active product with its stock folded as of
// the end of the month and classified against its reorder level.
func (s *Service) InventoryReport(ctx context.Context, period models.ReportPeriod) ([]*models.InventoryReportRow, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("validating period: %w", err)
	}
	return s.reports.InventorySnapshot(ctx, period)
}

// MovementReport returns per-product IN/OUT entry counts and quantity sums
// for the month.
func (s *Service) MovementReport(ctx context.Context, period models.ReportPeriod) ([]*models.MovementReportRow, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("validating period: %w", err)
	}
	return s.reports.MovementSummary(ctx, period)
}

// SupplierDeliveryReport returns per-supplier delivery counts and quantity
// totals for the month.
func (s *Service) SupplierDeliveryReport(ctx context.Context, period models.ReportPeriod) ([]*models.SupplierDeliveryRow, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("validating period: %w", err)
	}
	return s.reports.SupplierDeliveries(ctx, period)
}

// SalesReport returns per-product OUT totals for the month, with the
// average daily sales figure. The average divides by the calendar days in
// the month, not the days with sales, and rounds half up to two decimals.
func (s *Service) SalesReport(ctx context.Context, period models.ReportPeriod) ([]*models.SalesReportRow, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("validating period: %w", err)
	}

	rows, err := s.reports.SalesTotals(ctx, period)
	if err != nil {
		return nil, err
	}

	days := decimal.NewFromInt(int64(period.Days()))
	for _, row := range rows {
		row.AvgDailySales = row.TotalSold.DivRound(days, 2)
	}
	return rows, nil
}
