package catalog

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/catalog"
	"github.com/pantryos/pantryos/internal/tui/components"
)

// LocationsView displays the storage location list.
type LocationsView struct {
	service   *svc.Service
	table     *components.Table
	locations []*models.StorageLocation
	detail    *svc.LocationDetail
	page      models.Pagination
	filter    models.LocationFilter
	loading   bool
	err       error
}

// NewLocationsView creates a new locations view.
func NewLocationsView(service *svc.Service) *LocationsView {
	columns := []components.Column{
		{Title: "Name", Width: 22},
		{Title: "Area", Width: 32},
		{Title: "Capacity", Width: 10, Align: lipgloss.Right},
		{Title: "Temperature", Width: 14},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &LocationsView{
		service: service,
		table:   table,
		page:    models.Pagination{Page: 1, PageSize: 20},
	}
}

// Load fetches storage locations from the database.
func (v *LocationsView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	result, err := v.service.ListLocations(ctx, v.filter, v.page)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.locations = result.Locations
	v.loading = false

	rows := make([][]string, len(v.locations))
	for i, l := range v.locations {
		area := l.AreaDescription
		if area == "" {
			area = "-"
		}
		rows[i] = []string{l.Name, area, l.Capacity.String(), string(l.TemperatureControl)}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(result.Page, result.TotalPages, result.Total)

	return nil
}

// LoadDetail fetches the products stored at the selected location.
func (v *LocationsView) LoadDetail(ctx context.Context) error {
	l := v.SelectedLocation()
	if l == nil {
		return nil
	}
	detail, err := v.service.GetLocationDetail(ctx, l.ID)
	if err != nil {
		v.err = err
		return err
	}
	v.detail = detail
	return nil
}

// SetSearch sets the search filter and resets paging.
func (v *LocationsView) SetSearch(search string) {
	v.filter.Search = search
	v.page.Page = 1
}

// NextPage moves to the next page.
func (v *LocationsView) NextPage() {
	v.page.Page++
}

// PrevPage moves to the previous page.
func (v *LocationsView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
	}
}

// MoveUp moves the selection up.
func (v *LocationsView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *LocationsView) MoveDown() {
	v.table.MoveDown()
}

// SelectedLocation returns the currently selected storage location.
func (v *LocationsView) SelectedLocation() *models.StorageLocation {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.locations) {
		return v.locations[idx]
	}
	return nil
}

// Render renders the location list.
func (v *LocationsView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== STORAGE LOCATIONS ==="))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if v.table.Empty() {
		b.WriteString(labelStyle.Render("No storage locations found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  Enter:Details  a:Add  e:Edit  x:Delete  /:Search  PgUp/Dn:Page"))

	return b.String()
}

// RenderDetail renders the detail view for the selected location.
func (v *LocationsView) RenderDetail(l *models.StorageLocation) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	if l == nil {
		return labelStyle.Render("No location selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== LOCATION DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("LOCATION"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Name:") + " " + valueStyle.Render(l.Name) + "\n")
	if l.AreaDescription != "" {
		b.WriteString(labelStyle.Render("Area:") + " " + valueStyle.Render(l.AreaDescription) + "\n")
	}
	b.WriteString(labelStyle.Render("Capacity:") + " " + valueStyle.Render(l.Capacity.String()) + "\n")
	b.WriteString(labelStyle.Render("Temperature:") + " " + valueStyle.Render(string(l.TemperatureControl)) + "\n")

	if v.detail != nil && v.detail.Location.ID == l.ID {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("PRODUCTS STORED HERE"))
		b.WriteString("\n")
		if len(v.detail.Products) == 0 {
			b.WriteString(labelStyle.Render("  None"))
			b.WriteString("\n")
		}
		for _, p := range v.detail.Products {
			line := "  " + p.Name + "  " + p.CurrentStock.String() + " " + p.UnitOfMeasure
			b.WriteString(valueStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  e:Edit  x:Delete"))

	return b.String()
}
