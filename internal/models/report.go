package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod identifies the calendar month a report covers.
type ReportPeriod struct {
	Year  int
	Month time.Month
}

// Validate checks the period is a plausible calendar month.
func (p ReportPeriod) Validate() error {
	if p.Year < 2000 || p.Year > 2100 {
		return fmt.Errorf("year out of range: %d", p.Year)
	}
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("invalid month: %d", p.Month)
	}
	return nil
}

// Start returns the first day of the month.
func (p ReportPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month.
func (p ReportPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (p ReportPeriod) Days() int {
	return p.End().Day()
}

func (p ReportPeriod) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// InventoryReportRow is one line of the monthly inventory snapshot:
// an active product with its stock as of the end of the month.
type InventoryReportRow struct {
	ProductID    int64
	ProductName  string
	LocationName string
	Stock        decimal.Decimal
	ReorderLevel decimal.Decimal
	Status       StockStatus
}

// MovementReportRow aggregates a product's ledger activity for a month.
type MovementReportRow struct {
	ProductID   int64
	ProductName string
	InCount     int
	OutCount    int
	InQuantity  decimal.Decimal
	OutQuantity decimal.Decimal
}

// SupplierDeliveryRow aggregates a supplier's IN deliveries for a month.
type SupplierDeliveryRow struct {
	SupplierID    int64
	SupplierName  string
	DeliveryCount int
	TotalQuantity decimal.Decimal
}

// SalesReportRow aggregates a product's OUT movements for a month.
// AvgDailySales is TotalSold divided by the days in the month, rounded
// to 2 decimals half-up, independent of DaysWithSales.
type SalesReportRow struct {
	ProductID     int64
	ProductName   string
	UnitOfMeasure string
	TotalSold     decimal.Decimal
	DaysWithSales int
	AvgDailySales decimal.Decimal
}
