// Package catalog provides TUI views for products, suppliers and storage
// locations.
package catalog

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/catalog"
	"github.com/pantryos/pantryos/internal/tui/components"
)

// ProductsView displays the product list with derived stock levels.
type ProductsView struct {
	service  *svc.Service
	table    *components.Table
	products []*models.Product
	page     models.Pagination
	filter   models.ProductFilter
	loading  bool
	err      error
}

// NewProductsView creates a new products view.
func NewProductsView(service *svc.Service) *ProductsView {
	columns := []components.Column{
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 15},
		{Title: "Stock", Width: 10, Align: lipgloss.Right},
		{Title: "Unit", Width: 6},
		{Title: "Reorder", Width: 8, Align: lipgloss.Right},
		{Title: "Level", Width: 12},
		{Title: "Location", Width: 16},
		{Title: "Status", Width: 8},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &ProductsView{
		service: service,
		table:   table,
		page:    models.Pagination{Page: 1, PageSize: 20},
	}
}

// Load fetches products from the database.
func (v *ProductsView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	result, err := v.service.ListProducts(ctx, v.filter, v.page)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.products = result.Products
	v.loading = false

	rows := make([][]string, len(v.products))
	for i, p := range v.products {
		location := p.LocationName
		if location == "" {
			location = "-"
		}
		rows[i] = []string{
			p.Name,
			string(p.Category),
			p.CurrentStock.String(),
			p.UnitOfMeasure,
			p.ReorderLevel.String(),
			string(p.StockLevel()),
			location,
			string(p.Status),
		}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(result.Page, result.TotalPages, result.Total)

	return nil
}

// SetSearch sets the search filter and resets paging.
func (v *ProductsView) SetSearch(search string) {
	v.filter.Search = search
	v.page.Page = 1
}

// ToggleLowStock toggles the low-stock filter and resets paging.
func (v *ProductsView) ToggleLowStock() {
	v.filter.LowStockOnly = !v.filter.LowStockOnly
	v.page.Page = 1
}

// LowStockOnly reports whether the low-stock filter is active.
func (v *ProductsView) LowStockOnly() bool {
	return v.filter.LowStockOnly
}

// NextPage moves to the next page.
func (v *ProductsView) NextPage() {
	v.page.Page++
}

// PrevPage moves to the previous page.
func (v *ProductsView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
	}
}

// MoveUp moves the selection up.
func (v *ProductsView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *ProductsView) MoveDown() {
	v.table.MoveDown()
}

// SelectedProduct returns the currently selected product.
func (v *ProductsView) SelectedProduct() *models.Product {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.products) {
		return v.products[idx]
	}
	return nil
}

// Render renders the product list.
func (v *ProductsView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== PRODUCTS ==="))
	b.WriteString("\n\n")

	if v.filter.LowStockOnly {
		b.WriteString(labelStyle.Render("Filter: low stock only"))
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
		b.WriteString(labelStyle.Render("No products found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  Enter:Details  a:Add  e:Edit  x:Delete  l:Low stock  /:Search  PgUp/Dn:Page"))

	return b.String()
}

// RenderDetail renders the detail view for the selected product.
func (v *ProductsView) RenderDetail(p *models.Product) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	critStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	if p == nil {
		return labelStyle.Render("No product selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== PRODUCT DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("PRODUCT"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Name:") + " " + valueStyle.Render(p.Name) + "\n")
	if p.Description != "" {
		b.WriteString(labelStyle.Render("Description:") + " " + valueStyle.Render(p.Description) + "\n")
	}
	b.WriteString(labelStyle.Render("Category:") + " " + valueStyle.Render(string(p.Category)) + "\n")
	b.WriteString(labelStyle.Render("Unit:") + " " + valueStyle.Render(p.UnitOfMeasure) + "\n")
	b.WriteString(labelStyle.Render("Status:") + " " + valueStyle.Render(string(p.Status)) + "\n")
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("STOCK"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Current Stock:") + " " + valueStyle.Render(p.CurrentStock.String()+" "+p.UnitOfMeasure) + "\n")
	b.WriteString(labelStyle.Render("Reorder Level:") + " " + valueStyle.Render(p.ReorderLevel.String()) + "\n")

	var levelStr string
	switch p.StockLevel() {
	case models.StockStatusOutOfStock:
		levelStr = critStyle.Render("OUT OF STOCK")
	case models.StockStatusLow:
		levelStr = warnStyle.Render("LOW")
	default:
		levelStr = valueStyle.Render("OK")
	}
	b.WriteString(labelStyle.Render("Level:") + " " + levelStr + "\n")
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("SOURCING"))
	b.WriteString("\n")
	supplier := p.SupplierName
	if supplier == "" {
		supplier = "-"
	}
	location := p.LocationName
	if location == "" {
		location = "-"
	}
	b.WriteString(labelStyle.Render("Supplier:") + " " + valueStyle.Render(supplier) + "\n")
	b.WriteString(labelStyle.Render("Location:") + " " + valueStyle.Render(location) + "\n")

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  e:Edit  x:Delete"))

	return b.String()
}
