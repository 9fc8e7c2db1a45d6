// Package ledger provides TUI views for the stock movement ledger.
package ledger

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/ledger"
	"github.com/pantryos/pantryos/internal/tui/components"
	"github.com/pantryos/pantryos/internal/util"
)

// MovementsView displays the stock movement ledger, newest first.
type MovementsView struct {
	service   *svc.Service
	table     *components.Table
	movements []*models.StockMovement
	page      models.Pagination
	filter    models.MovementFilter
	loading   bool
	err       error
}

// NewMovementsView creates a new movements view.
func NewMovementsView(service *svc.Service) *MovementsView {
	columns := []components.Column{
		{Title: "Date", Width: 10},
		{Title: "Type", Width: 4},
		{Title: "Product", Width: 24},
		{Title: "Qty", Width: 10, Align: lipgloss.Right},
		{Title: "Location", Width: 16},
		{Title: "Supplier", Width: 20},
		{Title: "Reason", Width: 20},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &MovementsView{
		service: service,
		table:   table,
		page:    models.Pagination{Page: 1, PageSize: 20},
	}
}

// Load fetches ledger entries from the database.
func (v *MovementsView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	result, err := v.service.ListMovements(ctx, v.filter, v.page)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.movements = result.Movements
	v.loading = false

	rows := make([][]string, len(v.movements))
	for i, m := range v.movements {
		supplier := m.SupplierName
		if supplier == "" {
			supplier = "-"
		}
		reason := m.Reason
		if reason == "" {
			reason = "-"
		}
		rows[i] = []string{
			m.Date.Format(util.DateFormat),
			string(m.Type),
			m.ProductName,
			m.Quantity.String(),
			m.LocationName,
			supplier,
			reason,
		}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(result.Page, result.TotalPages, result.Total)

	return nil
}

// SetTypeFilter cycles the type filter: all, IN only, OUT only.
func (v *MovementsView) SetTypeFilter(t *models.MovementType) {
	v.filter.Type = t
	v.page.Page = 1
}

// TypeFilter returns the active type filter.
func (v *MovementsView) TypeFilter() *models.MovementType {
	return v.filter.Type
}

// NextPage moves to the next page.
func (v *MovementsView) NextPage() {
	v.page.Page++
}

// PrevPage moves to the previous page.
func (v *MovementsView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
	}
}

// MoveUp moves the selection up.
func (v *MovementsView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *MovementsView) MoveDown() {
	v.table.MoveDown()
}

// SelectedMovement returns the currently selected ledger entry.
func (v *MovementsView) SelectedMovement() *models.StockMovement {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.movements) {
		return v.movements[idx]
	}
	return nil
}

// Render renders the ledger list.
func (v *MovementsView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== STOCK MOVEMENTS ==="))
	b.WriteString("\n\n")

	if v.filter.Type != nil {
		b.WriteString(labelStyle.Render("Type: "))
		b.WriteString(valueStyle.Render(string(*v.filter.Type)))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if v.table.Empty() {
		b.WriteString(labelStyle.Render("No movements recorded."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  Enter:Details  a:Record  t:Type filter  PgUp/Dn:Page"))

	return b.String()
}

// RenderDetail renders the detail view for the selected ledger entry.
// Entries are immutable, so the detail offers no edit action.
func (v *MovementsView) RenderDetail(m *models.StockMovement) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	if m == nil {
		return labelStyle.Render("No movement selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== MOVEMENT DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Date:") + " " + valueStyle.Render(m.Date.Format(util.DateFormat)) + "\n")
	b.WriteString(labelStyle.Render("Type:") + " " + valueStyle.Render(string(m.Type)) + "\n")
	b.WriteString(labelStyle.Render("Product:") + " " + valueStyle.Render(m.ProductName) + "\n")
	b.WriteString(labelStyle.Render("Quantity:") + " " + valueStyle.Render(m.Quantity.String()) + "\n")
	b.WriteString(labelStyle.Render("Location:") + " " + valueStyle.Render(m.LocationName) + "\n")
	if m.SupplierName != "" {
		b.WriteString(labelStyle.Render("Supplier:") + " " + valueStyle.Render(m.SupplierName) + "\n")
	}
	if m.Reason != "" {
		b.WriteString(labelStyle.Render("Reason:") + " " + valueStyle.Render(m.Reason) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Movements are permanent; record a compensating entry to correct."))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back"))

	return b.String()
}
