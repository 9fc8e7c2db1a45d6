package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/catalog"
	"github.com/pantryos/pantryos/internal/tui/components"
	"github.com/pantryos/pantryos/internal/util"
)

// SuppliersView displays the supplier list.
type SuppliersView struct {
	service   *svc.Service
	table     *components.Table
	suppliers []*models.Supplier
	detail    *svc.SupplierDetail
	page      models.Pagination
	filter    models.SupplierFilter
	loading   bool
	err       error
}

// NewSuppliersView creates a new suppliers view.
func NewSuppliersView(service *svc.Service) *SuppliersView {
	columns := []components.Column{
		{Title: "Name", Width: 24},
		{Title: "Contact Person", Width: 20},
		{Title: "Number", Width: 15},
		{Title: "Email", Width: 26},
		{Title: "Status", Width: 8},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &SuppliersView{
		service: service,
		table:   table,
		page:    models.Pagination{Page: 1, PageSize: 20},
	}
}

// Load fetches suppliers from the database.
func (v *SuppliersView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	result, err := v.service.ListSuppliers(ctx, v.filter, v.page)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.suppliers = result.Suppliers
	v.loading = false

	rows := make([][]string, len(v.suppliers))
	for i, s := range v.suppliers {
		email := s.Email
		if email == "" {
			email = "-"
		}
		rows[i] = []string{s.Name, s.ContactPerson, s.ContactNumber, email, string(s.Status)}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(result.Page, result.TotalPages, result.Total)

	return nil
}

// LoadDetail fetches the selected supplier's delivery history.
func (v *SuppliersView) LoadDetail(ctx context.Context) error {
	s := v.SelectedSupplier()
	if s == nil {
		return nil
	}
	detail, err := v.service.GetSupplierDetail(ctx, s.ID)
	if err != nil {
		v.err = err
		return err
	}
	v.detail = detail
	return nil
}

// SetSearch sets the search filter and resets paging.
func (v *SuppliersView) SetSearch(search string) {
	v.filter.Search = search
	v.page.Page = 1
}

// NextPage moves to the next page.
func (v *SuppliersView) NextPage() {
	v.page.Page++
}

// PrevPage moves to the previous page.
func (v *SuppliersView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
	}
}

// MoveUp moves the selection up.
func (v *SuppliersView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *SuppliersView) MoveDown() {
	v.table.MoveDown()
}

// SelectedSupplier returns the currently selected supplier.
func (v *SuppliersView) SelectedSupplier() *models.Supplier {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.suppliers) {
		return v.suppliers[idx]
	}
	return nil
}

// Render renders the supplier list.
func (v *SuppliersView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== SUPPLIERS ==="))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if v.table.Empty() {
		b.WriteString(labelStyle.Render("No suppliers found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  Enter:Details  a:Add  e:Edit  x:Delete  /:Search  PgUp/Dn:Page"))

	return b.String()
}

// RenderDetail renders the detail view for the selected supplier.
func (v *SuppliersView) RenderDetail(s *models.Supplier) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	if s == nil {
		return labelStyle.Render("No supplier selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== SUPPLIER DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("SUPPLIER"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Name:") + " " + valueStyle.Render(s.Name) + "\n")
	b.WriteString(labelStyle.Render("Contact Person:") + " " + valueStyle.Render(s.ContactPerson) + "\n")
	b.WriteString(labelStyle.Render("Contact Number:") + " " + valueStyle.Render(s.ContactNumber) + "\n")
	if s.Email != "" {
		b.WriteString(labelStyle.Render("Email:") + " " + valueStyle.Render(s.Email) + "\n")
	}
	if s.Address != "" {
		b.WriteString(labelStyle.Render("Address:") + " " + valueStyle.Render(s.Address) + "\n")
	}
	b.WriteString(labelStyle.Render("Status:") + " " + valueStyle.Render(string(s.Status)) + "\n")

	if v.detail != nil && v.detail.Supplier.ID == s.ID {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("DELIVERIES"))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Ledger Entries:") + " " + valueStyle.Render(fmt.Sprintf("%d", v.detail.MovementCount)) + "\n")
		for _, m := range v.detail.Recent {
			line := fmt.Sprintf("  %s  %-4s %10s  %s",
				m.Date.Format(util.DateFormat), string(m.Type), m.Quantity.String(), m.ProductName)
			b.WriteString(valueStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  e:Edit  x:Delete"))

	return b.String()
}
