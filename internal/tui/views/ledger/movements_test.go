package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/util"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMovementsView_New(t *testing.T) {
	view := NewMovementsView(nil)
	if view == nil {
		t.Fatal("expected non-nil view")
	}
	if view.table == nil {
		t.Fatal("expected non-nil table")
	}
}

func TestMovementsView_EmptyRender(t *testing.T) {
	view := NewMovementsView(nil)
	output := view.Render(120, 40)

	if !strings.Contains(output, "STOCK MOVEMENTS") {
		t.Error("expected title in output")
	}
	if !strings.Contains(output, "No movements recorded") {
		t.Error("expected empty state message")
	}
}

func TestMovementsView_TypeFilter(t *testing.T) {
	view := NewMovementsView(nil)

	if view.TypeFilter() != nil {
		t.Error("expected no type filter initially")
	}

	in := models.MovementIn
	view.SetTypeFilter(&in)
	if view.TypeFilter() == nil || *view.TypeFilter() != models.MovementIn {
		t.Error("expected IN filter to be set")
	}

	output := view.Render(120, 40)
	if !strings.Contains(output, "Type:") {
		t.Error("expected filter indicator in output")
	}

	view.SetTypeFilter(nil)
	if view.TypeFilter() != nil {
		t.Error("expected filter cleared")
	}
}

func TestMovementsView_TypeFilterResetsPage(t *testing.T) {
	view := NewMovementsView(nil)
	view.page.Page = 3

	out := models.MovementOut
	view.SetTypeFilter(&out)
	if view.page.Page != 1 {
		t.Errorf("expected page 1 after filter, got %d", view.page.Page)
	}
}

func TestMovementsView_Pagination(t *testing.T) {
	view := NewMovementsView(nil)

	view.NextPage()
	view.PrevPage()
	view.PrevPage() // Should not go below 1
	if view.page.Page != 1 {
		t.Errorf("expected page 1, got %d", view.page.Page)
	}
}

func TestMovementsView_Navigation_Empty(t *testing.T) {
	view := NewMovementsView(nil)

	view.MoveUp()
	view.MoveDown()

	if view.SelectedMovement() != nil {
		t.Error("expected nil selected movement with no data")
	}
}

func TestMovementsView_RenderDetail_NilMovement(t *testing.T) {
	view := NewMovementsView(nil)
	output := view.RenderDetail(nil)

	if !strings.Contains(output, "No movement selected") {
		t.Error("expected 'No movement selected' for nil movement")
	}
}

func TestMovementsView_RenderDetail(t *testing.T) {
	view := NewMovementsView(nil)

	date, _ := parseDate("2025-06-01")
	movement := &models.StockMovement{
		ID:           1,
		ProductID:    1,
		LocationID:   1,
		Quantity:     dec("50"),
		Type:         models.MovementIn,
		Date:         date,
		Reason:       "Weekly restock",
		ProductName:  "Basmati Rice",
		LocationName: "Dry Storage A",
		SupplierName: "Metro Fresh Produce",
	}

	output := view.RenderDetail(movement)

	checks := []struct {
		label string
		value string
	}{
		{"title", "MOVEMENT DETAILS"},
		{"date", "2025-06-01"},
		{"type", "IN"},
		{"product", "Basmati Rice"},
		{"quantity", "50"},
		{"location", "Dry Storage A"},
		{"supplier", "Metro Fresh Produce"},
		{"reason", "Weekly restock"},
		{"immutability note", "compensating entry"},
	}

	for _, check := range checks {
		if !strings.Contains(output, check.value) {
			t.Errorf("expected %s (%q) in detail output", check.label, check.value)
		}
	}
}

func TestMovementsView_RenderDetail_NoEditAction(t *testing.T) {
	view := NewMovementsView(nil)

	date, _ := parseDate("2025-06-05")
	movement := &models.StockMovement{
		Quantity:     dec("10"),
		Type:         models.MovementOut,
		Date:         date,
		ProductName:  "Olive Oil",
		LocationName: "Dry Storage A",
	}

	output := view.RenderDetail(movement)
	if strings.Contains(output, "e:Edit") {
		t.Error("ledger entries are immutable; detail must not offer an edit action")
	}
	if strings.Contains(output, "x:Delete") {
		t.Error("ledger entries are immutable; detail must not offer a delete action")
	}
}

func parseDate(s string) (t time.Time, err error) {
	return time.Parse(util.DateFormat, s)
}
