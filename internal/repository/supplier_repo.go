package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pantryos/pantryos/internal/models"
)

// SupplierRepository handles supplier data access.
type SupplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a new supplier repository.
func NewSupplierRepository(db *sql.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Create inserts a new supplier and assigns its generated ID.
func (r *SupplierRepository) Create(ctx context.Context, tx *sql.Tx, s *models.Supplier) error {
	query := `
		INSERT INTO Supplier (
			supplier_name, contact_person, contact_number, email, address, supplier_status
		) VALUES (?, ?, ?, ?, ?, ?)`

	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, query,
		s.Name,
		s.ContactPerson,
		s.ContactNumber,
		nullableString(s.Email),
		nullableString(s.Address),
		string(s.Status),
	)
	if err != nil {
		return fmt.Errorf("inserting supplier: %w", err)
	}

	s.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading supplier id: %w", err)
	}
	return nil
}

// Get retrieves a supplier by ID.
func (r *SupplierRepository) Get(ctx context.Context, id int64) (*models.Supplier, error) {
	query := `
		SELECT supplier_id, supplier_name, contact_person, contact_number,
			email, address, supplier_status
		FROM Supplier
		WHERE supplier_id = ?`

	return r.scanSupplier(r.db.QueryRowContext(ctx, query, id))
}

// Update modifies an existing supplier.
func (r *SupplierRepository) Update(ctx context.Context, tx *sql.Tx, s *models.Supplier) error {
	query := `
		UPDATE Supplier SET
			supplier_name = ?, contact_person = ?, contact_number = ?,
			email = ?, address = ?, supplier_status = ?
		WHERE supplier_id = ?`

	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, query,
		s.Name,
		s.ContactPerson,
		s.ContactNumber,
		nullableString(s.Email),
		nullableString(s.Address),
		string(s.Status),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("supplier %d: %w", s.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a supplier. A supplier referenced by products or ledger
// entries cannot be deleted.
func (r *SupplierRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, "DELETE FROM Supplier WHERE supplier_id = ?", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("supplier %d is referenced by products or movements: %w", id, ErrRowInUse)
		}
		return fmt.Errorf("deleting supplier: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("supplier %d: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves suppliers with filtering and pagination.
func (r *SupplierRepository) List(ctx context.Context, filter models.SupplierFilter, page models.Pagination) (*models.SupplierList, error) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		conditions = append(conditions, "(supplier_name LIKE ? OR contact_person LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Status != nil {
		conditions = append(conditions, "supplier_status = ?")
		args = append(args, string(*filter.Status))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM Supplier %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting suppliers: %w", err)
	}

	// Get page
	query := fmt.Sprintf(`
		SELECT supplier_id, supplier_name, contact_person, contact_number,
			email, address, supplier_status
		FROM Supplier
		%s
		ORDER BY supplier_name
		LIMIT ? OFFSET ?`, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		s, err := r.scanSupplierRow(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}

	return &models.SupplierList{
		Suppliers:  suppliers,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, rows.Err()
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *SupplierRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *SupplierRepository) scanSupplier(row *sql.Row) (*models.Supplier, error) {
	var s models.Supplier
	var email, address sql.NullString
	var status string

	err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.ContactNumber, &email, &address, &status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supplier: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning supplier: %w", err)
	}

	if email.Valid {
		s.Email = email.String
	}
	if address.Valid {
		s.Address = address.String
	}
	s.Status = models.Status(status)

	return &s, nil
}

func (r *SupplierRepository) scanSupplierRow(rows *sql.Rows) (*models.Supplier, error) {
	var s models.Supplier
	var email, address sql.NullString
	var status string

	err := rows.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.ContactNumber, &email, &address, &status)
	if err != nil {
		return nil, fmt.Errorf("scanning supplier row: %w", err)
	}

	if email.Valid {
		s.Email = email.String
	}
	if address.Valid {
		s.Address = address.String
	}
	s.Status = models.Status(status)

	return &s, nil
}
