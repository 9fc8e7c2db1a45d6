package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

func (m MovementType) String() string {
	return string(m)
}

// Valid reports whether the movement type is one of the known values.
func (m MovementType) Valid() bool {
	return m == MovementIn || m == MovementOut
}

// StockMovement is a single ledger entry. Entries are immutable once
// recorded; corrections are made with compensating entries, so the ledger
// is strictly append-only and all stock levels fold over it.
type StockMovement struct {
	ID         int64
	ProductID  int64
	LocationID int64
	SupplierID *int64
	Quantity   decimal.Decimal
	Type       MovementType
	Date       time.Time
	Reason     string

	// Joined fields
	ProductName  string
	LocationName string
	SupplierName string
}

// SignedQuantity returns the quantity with OUT movements negated, the
// term this entry contributes to a stock fold.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Type == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// MovementFilter defines filters for querying the ledger.
type MovementFilter struct {
	ProductID  int64
	LocationID int64
	SupplierID int64
	Type       *MovementType
	From       *time.Time
	To         *time.Time
}

// MovementList represents a paginated list of ledger entries.
type MovementList struct {
	Movements  []*StockMovement
	Total      int
	Page       int
	TotalPages int
}
