package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
)

// ErrInsufficientStock is returned when an OUT movement would take a
// product's folded stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// RecordMovementInput contains data for appending a ledger entry.
type RecordMovementInput struct {
	ProductID  int64
	LocationID int64
	SupplierID *int64
	Quantity   decimal.Decimal
	Type       models.MovementType
	Date       time.Time
	Reason     string
}

// Validate checks the input before any database call is made.
func (in RecordMovementInput) Validate() error {
	var errs []error

	if in.ProductID <= 0 {
		errs = append(errs, errors.New("product is required"))
	}
	if in.LocationID <= 0 {
		errs = append(errs, errors.New("location is required"))
	}
	if in.SupplierID != nil && *in.SupplierID <= 0 {
		errs = append(errs, errors.New("invalid supplier"))
	}
	if in.Quantity.Sign() <= 0 {
		errs = append(errs, errors.New("quantity must be greater than zero"))
	}
	if !in.Type.Valid() {
		errs = append(errs, fmt.Errorf("invalid movement type %q", in.Type))
	}
	if in.Date.IsZero() {
		errs = append(errs, errors.New("movement date is required"))
	}

	return errors.Join(errs...)
}
