package models

import (
	"github.com/shopspring/decimal"
)

// TemperatureControl represents the temperature regime of a storage location.
type TemperatureControl string

const (
	TemperatureNone         TemperatureControl = "None"
	TemperatureRefrigerated TemperatureControl = "Refrigerated"
	TemperatureFreezer      TemperatureControl = "Freezer"
)

func (t TemperatureControl) String() string {
	return string(t)
}

// Valid reports whether the temperature control is one of the known values.
func (t TemperatureControl) Valid() bool {
	return t == TemperatureNone || t == TemperatureRefrigerated || t == TemperatureFreezer
}

// TemperatureControls lists all temperature regimes in display order.
func TemperatureControls() []TemperatureControl {
	return []TemperatureControl{TemperatureNone, TemperatureRefrigerated, TemperatureFreezer}
}

// StorageLocation represents a physical storage area.
type StorageLocation struct {
	ID                 int64
	Name               string
	AreaDescription    string
	Capacity           decimal.Decimal
	TemperatureControl TemperatureControl
}

// LocationFilter defines filters for querying storage locations.
type LocationFilter struct {
	Search string
}

// LocationList represents a paginated list of storage locations.
type LocationList struct {
	Locations  []*StorageLocation
	Total      int
	Page       int
	TotalPages int
}
