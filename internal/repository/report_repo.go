package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/util"
)

// ReportRepository exposes the monthly aggregations over the ledger as
// named, parameterized queries. Month boundaries are computed by the caller
// and passed as calendar-date parameters, which keeps the SQL portable
// between sqlite and mysql.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// InventorySnapshot returns each active product with its stock folded as of
// the end of the period. Products with no stock and no reorder level are
// excluded. Location is the product's own storage location.
func (r *ReportRepository) InventorySnapshot(ctx context.Context, period models.ReportPeriod) ([]*models.InventoryReportRow, error) {
	query := `
		SELECT p.product_id, p.product_name,
			COALESCE(l.location_name, 'No Location') AS location_name,
			COALESCE(SUM(CASE WHEN sm.movement_type = 'IN' THEN sm.quantity
				WHEN sm.movement_type = 'OUT' THEN -sm.quantity END), 0) AS stock,
			p.reorder_level
		FROM Product p
		LEFT JOIN StorageLocation l ON p.location_id = l.location_id
		LEFT JOIN StockMovement sm ON sm.product_id = p.product_id AND sm.movement_date <= ?
		WHERE p.product_status = 'Active'
		GROUP BY p.product_id, p.product_name, l.location_name, p.reorder_level
		HAVING stock > 0 OR p.reorder_level > 0
		ORDER BY p.product_name, location_name`

	rows, err := r.db.QueryContext(ctx, query, period.End().Format(util.DateFormat))
	if err != nil {
		return nil, fmt.Errorf("querying inventory snapshot: %w", err)
	}
	defer rows.Close()

	var result []*models.InventoryReportRow
	for rows.Next() {
		var row models.InventoryReportRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.LocationName,
			&row.Stock, &row.ReorderLevel); err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		row.Status = models.ClassifyStock(row.Stock, row.ReorderLevel)
		result = append(result, &row)
	}
	return result, rows.Err()
}

// MovementSummary returns per-product IN/OUT counts and quantity sums for
// movements dated within the period.
func (r *ReportRepository) MovementSummary(ctx context.Context, period models.ReportPeriod) ([]*models.MovementReportRow, error) {
	query := `
		SELECT p.product_id, p.product_name,
			SUM(CASE WHEN sm.movement_type = 'IN' THEN 1 ELSE 0 END) AS in_count,
			SUM(CASE WHEN sm.movement_type = 'OUT' THEN 1 ELSE 0 END) AS out_count,
			COALESCE(SUM(CASE WHEN sm.movement_type = 'IN' THEN sm.quantity END), 0) AS in_qty,
			COALESCE(SUM(CASE WHEN sm.movement_type = 'OUT' THEN sm.quantity END), 0) AS out_qty
		FROM Product p
		JOIN StockMovement sm ON sm.product_id = p.product_id
		WHERE sm.movement_date BETWEEN ? AND ?
		GROUP BY p.product_id, p.product_name
		HAVING in_count > 0 OR out_count > 0
		ORDER BY p.product_name`

	start, end := period.Start(), period.End()
	rows, err := r.db.QueryContext(ctx, query,
		start.Format(util.DateFormat), end.Format(util.DateFormat))
	if err != nil {
		return nil, fmt.Errorf("querying movement summary: %w", err)
	}
	defer rows.Close()

	var result []*models.MovementReportRow
	for rows.Next() {
		var row models.MovementReportRow
		if err := rows.Scan(&row.ProductID, &row.ProductName,
			&row.InCount, &row.OutCount, &row.InQuantity, &row.OutQuantity); err != nil {
			return nil, fmt.Errorf("scanning movement summary row: %w", err)
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}

// SupplierDeliveries returns per-supplier counts and quantity totals of IN
// movements naming the supplier, within the period.
func (r *ReportRepository) SupplierDeliveries(ctx context.Context, period models.ReportPeriod) ([]*models.SupplierDeliveryRow, error) {
	query := `
		SELECT s.supplier_id, s.supplier_name,
			COUNT(*) AS delivery_count,
			SUM(sm.quantity) AS total_qty
		FROM Supplier s
		JOIN StockMovement sm ON sm.supplier_id = s.supplier_id
		WHERE sm.movement_type = 'IN'
			AND sm.movement_date BETWEEN ? AND ?
		GROUP BY s.supplier_id, s.supplier_name
		ORDER BY s.supplier_name`

	start, end := period.Start(), period.End()
	rows, err := r.db.QueryContext(ctx, query,
		start.Format(util.DateFormat), end.Format(util.DateFormat))
	if err != nil {
		return nil, fmt.Errorf("querying supplier deliveries: %w", err)
	}
	defer rows.Close()

	var result []*models.SupplierDeliveryRow
	for rows.Next() {
		var row models.SupplierDeliveryRow
		if err := rows.Scan(&row.SupplierID, &row.SupplierName,
			&row.DeliveryCount, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scanning supplier delivery row: %w", err)
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}

// SalesTotals returns, for each active product with OUT activity in the
// period, the total quantity sold and the count of distinct days with at
// least one OUT movement. The average daily figure is computed by the
// caller from the days in the month.
func (r *ReportRepository) SalesTotals(ctx context.Context, period models.ReportPeriod) ([]*models.SalesReportRow, error) {
	query := `
		SELECT p.product_id, p.product_name, p.unit_of_measure,
			COALESCE(SUM(sm.quantity), 0) AS total_sold,
			COUNT(DISTINCT sm.movement_date) AS days_with_sales
		FROM Product p
		JOIN StockMovement sm ON sm.product_id = p.product_id
		WHERE p.product_status = 'Active'
			AND sm.movement_type = 'OUT'
			AND sm.movement_date BETWEEN ? AND ?
		GROUP BY p.product_id, p.product_name, p.unit_of_measure
		HAVING total_sold > 0
		ORDER BY total_sold DESC`

	start, end := period.Start(), period.End()
	rows, err := r.db.QueryContext(ctx, query,
		start.Format(util.DateFormat), end.Format(util.DateFormat))
	if err != nil {
		return nil, fmt.Errorf("querying sales totals: %w", err)
	}
	defer rows.Close()

	var result []*models.SalesReportRow
	for rows.Next() {
		var row models.SalesReportRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitOfMeasure,
			&row.TotalSold, &row.DaysWithSales); err != nil {
			return nil, fmt.Errorf("scanning sales row: %w", err)
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}
