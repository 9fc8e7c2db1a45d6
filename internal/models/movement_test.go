package models

import (
	"testing"
)

func TestMovementType_Valid(t *testing.T) {
	tests := []struct {
		mtype MovementType
		want  bool
	}{
		{MovementIn, true},
		{MovementOut, true},
		{MovementType("in"), false},
		{MovementType("TRANSFER"), false},
		{MovementType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mtype), func(t *testing.T) {
			if got := tt.mtype.Valid(); got != tt.want {
				t.Errorf("MovementType(%q).Valid() = %v, want %v", tt.mtype, got, tt.want)
			}
		})
	}
}

func TestStockMovement_SignedQuantity(t *testing.T) {
	tests := []struct {
		name     string
		mtype    MovementType
		quantity string
		want     string
	}{
		{"IN counts positive", MovementIn, "50", "50"},
		{"OUT counts negative", MovementOut, "10", "-10"},
		{"Fractional OUT", MovementOut, "2.75", "-2.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &StockMovement{Type: tt.mtype, Quantity: dec(tt.quantity)}
			if got := m.SignedQuantity(); !got.Equal(dec(tt.want)) {
				t.Errorf("SignedQuantity() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStockMovement_LedgerFold(t *testing.T) {
	// Stock is the fold of signed quantities over the ledger.
	entries := []*StockMovement{
		{Type: MovementIn, Quantity: dec("50")},
		{Type: MovementOut, Quantity: dec("12.5")},
		{Type: MovementIn, Quantity: dec("20")},
		{Type: MovementOut, Quantity: dec("7.5")},
	}

	stock := dec("0")
	for _, m := range entries {
		stock = stock.Add(m.SignedQuantity())
	}

	if !stock.Equal(dec("50")) {
		t.Errorf("folded stock = %s, want 50", stock)
	}
}
