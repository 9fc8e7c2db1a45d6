package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pantryos/pantryos/internal/models"
)

// LocationRepository handles storage location data access.
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new storage location repository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create inserts a new storage location and assigns its generated ID.
func (r *LocationRepository) Create(ctx context.Context, tx *sql.Tx, l *models.StorageLocation) error {
	query := `
		INSERT INTO StorageLocation (
			location_name, area_description, capacity, temperature_control
		) VALUES (?, ?, ?, ?)`

	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, query,
		l.Name,
		nullableString(l.AreaDescription),
		l.Capacity,
		string(l.TemperatureControl),
	)
	if err != nil {
		return fmt.Errorf("inserting location: %w", err)
	}

	l.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading location id: %w", err)
	}
	return nil
}

// Get retrieves a storage location by ID.
func (r *LocationRepository) Get(ctx context.Context, id int64) (*models.StorageLocation, error) {
	query := `
		SELECT location_id, location_name, area_description, capacity, temperature_control
		FROM StorageLocation
		WHERE location_id = ?`

	return r.scanLocation(r.db.QueryRowContext(ctx, query, id))
}

// Update modifies an existing storage location.
func (r *LocationRepository) Update(ctx context.Context, tx *sql.Tx, l *models.StorageLocation) error {
	query := `
		UPDATE StorageLocation SET
			location_name = ?, area_description = ?, capacity = ?, temperature_control = ?
		WHERE location_id = ?`

	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, query,
		l.Name,
		nullableString(l.AreaDescription),
		l.Capacity,
		string(l.TemperatureControl),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating location: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("location %d: %w", l.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a storage location. A location referenced by products or
// ledger entries cannot be deleted.
func (r *LocationRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	execer := r.getExecer(tx)
	result, err := execer.ExecContext(ctx, "DELETE FROM StorageLocation WHERE location_id = ?", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("location %d is referenced by products or movements: %w", id, ErrRowInUse)
		}
		return fmt.Errorf("deleting location: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("location %d: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves storage locations with filtering and pagination.
func (r *LocationRepository) List(ctx context.Context, filter models.LocationFilter, page models.Pagination) (*models.LocationList, error) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		conditions = append(conditions, "(location_name LIKE ? OR area_description LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM StorageLocation %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting locations: %w", err)
	}

	// Get page
	query := fmt.Sprintf(`
		SELECT location_id, location_name, area_description, capacity, temperature_control
		FROM StorageLocation
		%s
		ORDER BY location_name
		LIMIT ? OFFSET ?`, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.StorageLocation
	for rows.Next() {
		l, err := r.scanLocationRow(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return &models.LocationList{
		Locations:  locations,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, rows.Err()
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *LocationRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *LocationRepository) scanLocation(row *sql.Row) (*models.StorageLocation, error) {
	var l models.StorageLocation
	var area sql.NullString
	var tempControl string

	err := row.Scan(&l.ID, &l.Name, &area, &l.Capacity, &tempControl)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("location: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning location: %w", err)
	}

	if area.Valid {
		l.AreaDescription = area.String
	}
	l.TemperatureControl = models.TemperatureControl(tempControl)

	return &l, nil
}

func (r *LocationRepository) scanLocationRow(rows *sql.Rows) (*models.StorageLocation, error) {
	var l models.StorageLocation
	var area sql.NullString
	var tempControl string

	err := rows.Scan(&l.ID, &l.Name, &area, &l.Capacity, &tempControl)
	if err != nil {
		return nil, fmt.Errorf("scanning location row: %w", err)
	}

	if area.Valid {
		l.AreaDescription = area.String
	}
	l.TemperatureControl = models.TemperatureControl(tempControl)

	return &l, nil
}
