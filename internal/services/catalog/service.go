// Package catalog provides management operations for the product catalog,
// suppliers and storage locations. All inputs are validated before any
// database call is made.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/repository"
)

// Service provides catalog management operations.
type Service struct {
	db        *sql.DB
	products  *repository.ProductRepository
	suppliers *repository.SupplierRepository
	locations *repository.LocationRepository
	movements *repository.MovementRepository
}

// NewService creates a new catalog service.
func NewService(db *sql.DB) *Service {
	return &Service{
		db:        db,
		products:  repository.NewProductRepository(db),
		suppliers: repository.NewSupplierRepository(db),
		locations: repository.NewLocationRepository(db),
		movements: repository.NewMovementRepository(db),
	}
}

// ============================================================================
// PRODUCTS
// ============================================================================

// CreateProduct creates a new product.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validating product: %w", err)
	}

	if err := s.checkProductRefs(ctx, input.SupplierID, input.LocationID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		UnitOfMeasure: input.UnitOfMeasure,
		ReorderLevel:  input.ReorderLevel,
		SupplierID:    input.SupplierID,
		LocationID:    input.LocationID,
		Status:        input.Status,
	}

	if err := s.products.Create(ctx, nil, product); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	return product, nil
}

// GetProduct retrieves a product by ID, with its derived current stock.
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

// UpdateProduct modifies an existing product.
func (s *Service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*models.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validating product: %w", err)
	}

	if err := s.checkProductRefs(ctx, input.SupplierID, input.LocationID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            input.ID,
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		UnitOfMeasure: input.UnitOfMeasure,
		ReorderLevel:  input.ReorderLevel,
		SupplierID:    input.SupplierID,
		LocationID:    input.LocationID,
		Status:        input.Status,
	}

	if err := s.products.Update(ctx, nil, product); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	return s.products.Get(ctx, product.ID)
}

// DeleteProduct removes a product. A product with recorded ledger entries
// cannot be deleted; mark it Inactive instead.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, nil, id)
}

// ListProducts retrieves products with filtering and pagination. Each
// product carries its stock folded from the ledger.
func (s *Service) ListProducts(ctx context.Context, filter models.ProductFilter, page models.Pagination) (*models.ProductList, error) {
	return s.products.List(ctx, filter, page)
}

// CountProductsByStatus returns product counts grouped by status, for the
// dashboard.
func (s *Service) CountProductsByStatus(ctx context.Context) (map[models.Status]int, error) {
	return s.products.CountByStatus(ctx)
}

// LowStockProducts returns active products at or below their reorder level.
func (s *Service) LowStockProducts(ctx context.Context) ([]*models.Product, error) {
	active := models.StatusActive
	filter := models.ProductFilter{
		Status:       &active,
		LowStockOnly: true,
	}
	list, err := s.products.List(ctx, filter, models.Pagination{Page: 1, PageSize: 100})
	if err != nil {
		return nil, fmt.Errorf("listing low stock products: %w", err)
	}
	return list.Products, nil
}

// ============================================================================
// SUPPLIERS
// ============================================================================

// CreateSupplier creates a new supplier.
func (s *Service) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*models.Supplier, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validating supplier: %w", err)
	}

	supplier := &models.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Address:       input.Address,
		Status:        input.Status,
	}

	if err := s.suppliers.Create(ctx, nil, supplier); err != nil {
		return nil, fmt.Errorf("creating supplier: %w", err)
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID.
func (s *Service) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	return s.suppliers.Get(ctx, id)
}

// GetSupplierDetail retrieves a supplier together with its recent delivery
// history from the ledger.
func (s *Service) GetSupplierDetail(ctx context.Context, id int64) (*SupplierDetail, error) {
	supplier, err := s.suppliers.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.movements.CountForSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := s.movements.List(ctx,
		models.MovementFilter{SupplierID: id},
		models.Pagination{Page: 1, PageSize: 10})
	if err != nil {
		return nil, fmt.Errorf("listing supplier movements: %w", err)
	}

	return &SupplierDetail{
		Supplier:      supplier,
		MovementCount: count,
		Recent:        recent.Movements,
	}, nil
}

// UpdateSupplier modifies an existing supplier.
func (s *Service) UpdateSupplier(ctx context.Context, input UpdateSupplierInput) (*models.Supplier, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validating supplier: %w", err)
	}

	supplier := &models.Supplier{
		ID:            input.ID,
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Address:       input.Address,
		Status:        input.Status,
	}

	if err := s.suppliers.Update(ctx, nil, supplier); err != nil {
		return nil, fmt.Errorf("updating supplier: %w", err)
	}

	return supplier, nil
}

// DeleteSupplier removes a supplier. A supplier referenced by products or
// ledger entries cannot be deleted.
func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.suppliers.Delete(ctx, nil, id)
}

// ListSuppliers retrieves suppliers with filtering and pagination.
func (s *Service) ListSuppliers(ctx context.Context, filter models.SupplierFilter, page models.Pagination) (*models.SupplierList, error) {
	return s.suppliers.List(ctx, filter, page)
}

// ============================================================================
// STORAGE LOCATIONS
// ============================================================================

// CreateLocation creates a new storage location.
func (s *Service) CreateLocation(ctx context.Context, input CreateLocationInput) (*models.StorageLocation, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validating location: %w", err)
	}

	location := &models.StorageLocation{
		Name:               input.Name,
		AreaDescription:    input.AreaDescription,
		Capacity:           input.Capacity,
		TemperatureControl: input.TemperatureControl,
	}

	if err := s.locations.Create(ctx, nil, location); err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}

	return location, nil
}

// GetLocation retrieves a storage location by ID.
func (s *Service) GetLocation(ctx context.Context, id int64) (*models.StorageLocation, error) {
	return s.locations.Get(ctx, id)
}

// GetLocationDetail retrieves a storage location together with the products
// assigned to it.
func (s *Service) GetLocationDetail(ctx context.Context, id int64) (*LocationDetail, error) {
	location, err := s.locations.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	list, err := s.products.List(ctx,
		models.ProductFilter{LocationID: &id},
		models.Pagination{Page: 1, PageSize: 100})
	if err != nil {
		return nil, fmt.Errorf("listing location products: %w", err)
	}

	return &LocationDetail{
		Location: location,
		Products: list.Products,
	}, nil
}

// UpdateLocation modifies an existing storage location.
func (s *Service) UpdateLocation(ctx context.Context, input UpdateLocationInput) (*models.StorageLocation, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validating location: %w", err)
	}

	location := &models.StorageLocation{
		ID:                 input.ID,
		Name:               input.Name,
		AreaDescription:    input.AreaDescription,
		Capacity:           input.Capacity,
		TemperatureControl: input.TemperatureControl,
	}

	if err := s.locations.Update(ctx, nil, location); err != nil {
		return nil, fmt.Errorf("updating location: %w", err)
	}

	return location, nil
}

// DeleteLocation removes a storage location. A location referenced by
// products or ledger entries cannot be deleted.
func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	return s.locations.Delete(ctx, nil, id)
}

// ListLocations retrieves storage locations with filtering and pagination.
func (s *Service) ListLocations(ctx context.Context, filter models.LocationFilter, page models.Pagination) (*models.LocationList, error) {
	return s.locations.List(ctx, filter, page)
}

// ============================================================================
// HELPERS
// ============================================================================

// checkProductRefs verifies that a product's optional supplier and location
// references point at existing rows, so the failure surfaces as a clear
// message instead of a foreign key error.
func (s *Service) checkProductRefs(ctx context.Context, supplierID, locationID *int64) error {
	if supplierID != nil {
		if _, err := s.suppliers.Get(ctx, *supplierID); err != nil {
			return fmt.Errorf("supplier %d: %w", *supplierID, err)
		}
	}
	if locationID != nil {
		if _, err := s.locations.Get(ctx, *locationID); err != nil {
			return fmt.Errorf("location %d: %w", *locationID, err)
		}
	}
	return nil
}
