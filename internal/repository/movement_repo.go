package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/util"
)

// MovementRepository handles the stock movement ledger. The ledger is
// append-only: there are no update or delete operations, and corrections
// are recorded as compensating entries.
type MovementRepository struct {
	db *sql.DB
}

// NewMovementRepository creates a new movement repository.
func NewMovementRepository(db *sql.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

// Append inserts a new ledger entry and assigns its generated ID.
func (r *MovementRepository) Append(ctx context.Context, tx *sql.Tx, m *models.StockMovement) error {
	query := `
		INSERT INTO StockMovement (
			product_id, location_id, supplier_id, quantity, movement_type, movement_date, reason
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, query,
		m.ProductID,
		m.LocationID,
		nullableInt64(m.SupplierID),
		m.Quantity,
		string(m.Type),
		m.Date.Format(util.DateFormat),
		nullableString(m.Reason),
	)
	if err != nil {
		return fmt.Errorf("appending movement: %w", err)
	}

	m.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading movement id: %w", err)
	}
	return nil
}

// Get retrieves a single ledger entry by ID.
func (r *MovementRepository) Get(ctx context.Context, id int64) (*models.StockMovement, error) {
	query := movementSelect + `
	WHERE m.movement_id = ?`

	m, err := scanMovementFields(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("movement: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning movement: %w", err)
	}
	return m, nil
}

const movementSelect = `
	SELECT m.movement_id, m.product_id, m.location_id, m.supplier_id,
		m.quantity, m.movement_type, m.movement_date, m.reason,
		p.product_name, l.location_name, s.supplier_name
	FROM StockMovement m
	JOIN Product p ON m.product_id = p.product_id
	JOIN StorageLocation l ON m.location_id = l.location_id
	LEFT JOIN Supplier s ON m.supplier_id = s.supplier_id`

// List retrieves ledger entries with filtering and pagination, newest first.
func (r *MovementRepository) List(ctx context.Context, filter models.MovementFilter, page models.Pagination) (*models.MovementList, error) {
	var conditions []string
	var args []any

	if filter.ProductID != 0 {
		conditions = append(conditions, "m.product_id = ?")
		args = append(args, filter.ProductID)
	}
	if filter.LocationID != 0 {
		conditions = append(conditions, "m.location_id = ?")
		args = append(args, filter.LocationID)
	}
	if filter.SupplierID != 0 {
		conditions = append(conditions, "m.supplier_id = ?")
		args = append(args, filter.SupplierID)
	}
	if filter.Type != nil {
		conditions = append(conditions, "m.movement_type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.From != nil {
		conditions = append(conditions, "m.movement_date >= ?")
		args = append(args, filter.From.Format(util.DateFormat))
	}
	if filter.To != nil {
		conditions = append(conditions, "m.movement_date <= ?")
		args = append(args, filter.To.Format(util.DateFormat))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM StockMovement m %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting movements: %w", err)
	}

	// Get page
	query := fmt.Sprintf(`%s
	%s
	ORDER BY m.movement_date DESC, m.movement_id DESC
	LIMIT ? OFFSET ?`, movementSelect, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying movements: %w", err)
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		m, err := scanMovementFields(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning movement row: %w", err)
		}
		movements = append(movements, m)
	}

	return &models.MovementList{
		Movements:  movements,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, rows.Err()
}

// CurrentStock folds the ledger for a product: IN-sum minus OUT-sum,
// optionally scoped to a location and/or cut off at an as-of date.
// Products with no entries fold to zero.
func (r *MovementRepository) CurrentStock(ctx context.Context, productID int64, locationID *int64, asOf *time.Time) (decimal.Decimal, error) {
	conditions := []string{"product_id = ?"}
	args := []any{productID}

	if locationID != nil {
		conditions = append(conditions, "location_id = ?")
		args = append(args, *locationID)
	}
	if asOf != nil {
		conditions = append(conditions, "movement_date <= ?")
		args = append(args, asOf.Format(util.DateFormat))
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(CASE WHEN movement_type = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM StockMovement
		WHERE %s`, strings.Join(conditions, " AND "))

	var stock decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stock); err != nil {
		return decimal.Zero, fmt.Errorf("folding stock for product %d: %w", productID, err)
	}
	return stock, nil
}

// CountForSupplier returns the number of ledger entries naming a supplier.
func (r *MovementRepository) CountForSupplier(ctx context.Context, supplierID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM StockMovement WHERE supplier_id = ?", supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting supplier movements: %w", err)
	}
	return count, nil
}

// Count returns the total number of ledger entries.
func (r *MovementRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM StockMovement").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting movements: %w", err)
	}
	return count, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *MovementRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func scanMovementFields(scan func(dest ...any) error) (*models.StockMovement, error) {
	var m models.StockMovement
	var supplierID sql.NullInt64
	var reason, supplierName sql.NullString
	var movementType, dateStr string

	err := scan(
		&m.ID, &m.ProductID, &m.LocationID, &supplierID,
		&m.Quantity, &movementType, &dateStr, &reason,
		&m.ProductName, &m.LocationName, &supplierName,
	)
	if err != nil {
		return nil, err
	}

	if supplierID.Valid {
		m.SupplierID = &supplierID.Int64
	}
	if reason.Valid {
		m.Reason = reason.String
	}
	if supplierName.Valid {
		m.SupplierName = supplierName.String
	}
	m.Type = models.MovementType(movementType)
	m.Date, _ = time.Parse(util.DateFormat, dateStr)

	return &m, nil
}
