package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/util"
)

// CreateProductInput contains data for creating a product.
type CreateProductInput struct {
	Name          string
	Description   string
	Category      models.ProductCategory
	UnitOfMeasure string
	ReorderLevel  decimal.Decimal
	SupplierID    *int64
	LocationID    *int64
	Status        models.Status
}

// Validate checks the input before any database call is made.
func (in CreateProductInput) Validate() error {
	var errs []error

	if !util.ContainsLetter(in.Name) {
		errs = append(errs, errors.New("product name is required"))
	}
	if !in.Category.Valid() {
		errs = append(errs, fmt.Errorf("invalid category %q", in.Category))
	}
	if !util.ContainsLetter(in.UnitOfMeasure) {
		errs = append(errs, errors.New("unit of measure is required"))
	}
	if in.ReorderLevel.Sign() < 0 {
		errs = append(errs, errors.New("reorder level cannot be negative"))
	}
	if !in.Status.Valid() {
		errs = append(errs, fmt.Errorf("invalid status %q", in.Status))
	}

	return errors.Join(errs...)
}

// UpdateProductInput contains data for updating a product.
type UpdateProductInput struct {
	ID int64
	CreateProductInput
}

// Validate checks the input before any database call is made.
func (in UpdateProductInput) Validate() error {
	var errs []error

	if in.ID <= 0 {
		errs = append(errs, errors.New("product id is required"))
	}
	if err := in.CreateProductInput.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// CreateSupplierInput contains data for creating a supplier.
type CreateSupplierInput struct {
	Name          string
	ContactPerson string
	ContactNumber string
	Email         string
	Address       string
	Status        models.Status
}

// Validate checks the input before any database call is made.
func (in CreateSupplierInput) Validate() error {
	var errs []error

	if !util.ContainsLetter(in.Name) {
		errs = append(errs, errors.New("supplier name is required"))
	}
	if !util.ContainsLetter(in.ContactPerson) {
		errs = append(errs, errors.New("contact person is required"))
	}
	if in.ContactNumber == "" {
		errs = append(errs, errors.New("contact number is required"))
	}
	if !in.Status.Valid() {
		errs = append(errs, fmt.Errorf("invalid status %q", in.Status))
	}

	return errors.Join(errs...)
}

// UpdateSupplierInput contains data for updating a supplier.
type UpdateSupplierInput struct {
	ID int64
	CreateSupplierInput
}

// Validate checks the input before any database call is made.
func (in UpdateSupplierInput) Validate() error {
	var errs []error

	if in.ID <= 0 {
		errs = append(errs, errors.New("supplier id is required"))
	}
	if err := in.CreateSupplierInput.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// CreateLocationInput contains data for creating a storage location.
type CreateLocationInput struct {
	Name               string
	AreaDescription    string
	Capacity           decimal.Decimal
	TemperatureControl models.TemperatureControl
}

// Validate checks the input before any database call is made.
func (in CreateLocationInput) Validate() error {
	var errs []error

	if !util.ContainsLetter(in.Name) {
		errs = append(errs, errors.New("location name is required"))
	}
	if in.Capacity.Sign() < 0 {
		errs = append(errs, errors.New("capacity cannot be negative"))
	}
	if !in.TemperatureControl.Valid() {
		errs = append(errs, fmt.Errorf("invalid temperature control %q", in.TemperatureControl))
	}

	return errors.Join(errs...)
}

// UpdateLocationInput contains data for updating a storage location.
type UpdateLocationInput struct {
	ID int64
	CreateLocationInput
}

// Validate checks the input before any database call is made.
func (in UpdateLocationInput) Validate() error {
	var errs []error

	if in.ID <= 0 {
		errs = append(errs, errors.New("location id is required"))
	}
	if err := in.CreateLocationInput.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SupplierDetail combines a supplier with its recent delivery history.
type SupplierDetail struct {
	Supplier      *models.Supplier
	MovementCount int
	Recent        []*models.StockMovement
}

// LocationDetail combines a storage location with the products stored there.
type LocationDetail struct {
	Location *models.StorageLocation
	Products []*models.Product
}
