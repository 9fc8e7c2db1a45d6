package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pantryos/pantryos/internal/models"
)

// ProductRepository handles product data access. Every product row it
// returns carries CurrentStock folded from the movement ledger; stock is
// never read from a stored column.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// currentStockExpr derives a product's on-hand quantity as the IN-sum minus
// the OUT-sum of its ledger entries.
const currentStockExpr = `COALESCE((
		SELECT SUM(CASE WHEN sm.movement_type = 'IN' THEN sm.quantity ELSE -sm.quantity END)
		FROM StockMovement sm
		WHERE sm.product_id = p.product_id
	), 0)`

const productSelect = `
	SELECT p.product_id, p.product_name, p.description, p.category, p.unit_of_measure,
		p.reorder_level, p.supplier_id, p.location_id, p.product_status,
		s.supplier_name, l.location_name,
		` + currentStockExpr + ` AS current_stock
	FROM Product p
	LEFT JOIN Supplier s ON p.supplier_id = s.supplier_id
	LEFT JOIN StorageLocation l ON p.location_id = l.location_id`

// Create inserts a new product and assigns its generated ID.
func (r *ProductRepository) Create(ctx context.Context, tx *sql.Tx, p *models.Product) error {
	query := `
		INSERT INTO Product (
			product_name, description, category, unit_of_measure,
			reorder_level, supplier_id, location_id, product_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, query,
		p.Name,
		nullableString(p.Description),
		string(p.Category),
		p.UnitOfMeasure,
		p.ReorderLevel,
		nullableInt64(p.SupplierID),
		nullableInt64(p.LocationID),
		string(p.Status),
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading product id: %w", err)
	}
	return nil
}

// Get retrieves a product by ID, including its derived stock.
func (r *ProductRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	query := productSelect + `
	WHERE p.product_id = ?`

	return r.scanProduct(r.db.QueryRowContext(ctx, query, id))
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, tx *sql.Tx, p *models.Product) error {
	query := `
		UPDATE Product SET
			product_name = ?, description = ?, category = ?, unit_of_measure = ?,
			reorder_level = ?, supplier_id = ?, location_id = ?, product_status = ?
		WHERE product_id = ?`

	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, query,
		p.Name,
		nullableString(p.Description),
		string(p.Category),
		p.UnitOfMeasure,
		p.ReorderLevel,
		nullableInt64(p.SupplierID),
		nullableInt64(p.LocationID),
		string(p.Status),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("product %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product. A product referenced by ledger entries cannot
// be deleted; the constraint violation surfaces as ErrRowInUse.
func (r *ProductRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, "DELETE FROM Product WHERE product_id = ?", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("product %d has recorded movements: %w", id, ErrRowInUse)
		}
		return fmt.Errorf("deleting product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves products with filtering and pagination. The low-stock
// filter compares the ledger-derived stock against the reorder level, the
// same fold used everywhere else.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter, page models.Pagination) (*models.ProductList, error) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		conditions = append(conditions, "(p.product_name LIKE ? OR p.description LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Status != nil {
		conditions = append(conditions, "p.product_status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Category != nil {
		conditions = append(conditions, "p.category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.LocationID != nil {
		conditions = append(conditions, "p.location_id = ?")
		args = append(args, *filter.LocationID)
	}
	if filter.SupplierID != nil {
		conditions = append(conditions, "p.supplier_id = ?")
		args = append(args, *filter.SupplierID)
	}
	if filter.LowStockOnly {
		conditions = append(conditions, currentStockExpr+" <= p.reorder_level")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM Product p %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting products: %w", err)
	}

	// Get page
	query := fmt.Sprintf(`%s
	%s
	ORDER BY p.product_name
	LIMIT ? OFFSET ?`, productSelect, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := r.scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return &models.ProductList{
		Products:   products,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, rows.Err()
}

// CountByStatus returns the number of products per status.
func (r *ProductRepository) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT product_status, COUNT(*) FROM Product GROUP BY product_status")
	if err != nil {
		return nil, fmt.Errorf("counting products by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		counts[models.Status(status)] = count
	}
	return counts, rows.Err()
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *ProductRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ProductRepository) scanProduct(row *sql.Row) (*models.Product, error) {
	p, err := scanProductFields(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) scanProductRow(rows *sql.Rows) (*models.Product, error) {
	p, err := scanProductFields(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning product row: %w", err)
	}
	return p, nil
}

func scanProductFields(scan func(dest ...any) error) (*models.Product, error) {
	var p models.Product
	var desc, supplierName, locationName sql.NullString
	var supplierID, locationID sql.NullInt64
	var category, status string

	err := scan(
		&p.ID, &p.Name, &desc, &category, &p.UnitOfMeasure,
		&p.ReorderLevel, &supplierID, &locationID, &status,
		&supplierName, &locationName,
		&p.CurrentStock,
	)
	if err != nil {
		return nil, err
	}

	if desc.Valid {
		p.Description = desc.String
	}
	if supplierID.Valid {
		p.SupplierID = &supplierID.Int64
	}
	if locationID.Valid {
		p.LocationID = &locationID.Int64
	}
	if supplierName.Valid {
		p.SupplierName = supplierName.String
	}
	if locationName.Valid {
		p.LocationName = locationName.String
	}
	p.Category = models.ProductCategory(category)
	p.Status = models.Status(status)

	return &p, nil
}
