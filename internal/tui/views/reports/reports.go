// Package reports provides the TUI view for the monthly reports.
package reports

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/reports"
	"github.com/pantryos/pantryos/internal/tui/components"
)

// ReportType identifies one of the monthly reports.
type ReportType int

const (
	ReportInventory ReportType = iota
	ReportMovements
	ReportDeliveries
	ReportSales
)

var reportNames = []string{
	"Inventory Snapshot",
	"Movement Summary",
	"Supplier Deliveries",
	"Sales",
}

// Name returns the display name of the report.
func (r ReportType) Name() string {
	if int(r) < len(reportNames) {
		return reportNames[r]
	}
	return "Unknown"
}

// ReportsView displays the four monthly reports for a selected period.
type ReportsView struct {
	service *svc.Service
	table   *components.Table

	period  models.ReportPeriod
	current ReportType
	loaded  bool
	loading bool
	err     error

	rowCount int
}

// NewReportsView creates a reports view defaulting to the previous month.
func NewReportsView(service *svc.Service, now time.Time) *ReportsView {
	prev := now.AddDate(0, -1, 0)
	return &ReportsView{
		service: service,
		period:  models.ReportPeriod{Year: prev.Year(), Month: prev.Month()},
		current: ReportInventory,
	}
}

// Period returns the selected report period.
func (v *ReportsView) Period() models.ReportPeriod {
	return v.period
}

// Current returns the selected report type.
func (v *ReportsView) Current() ReportType {
	return v.current
}

// SelectReport switches directly to the given report type.
func (v *ReportsView) SelectReport(r ReportType) {
	if int(r) < len(reportNames) {
		v.current = r
		v.loaded = false
	}
}

// NextReport cycles to the next report type.
func (v *ReportsView) NextReport() {
	v.current = ReportType((int(v.current) + 1) % len(reportNames))
	v.loaded = false
}

// PrevReport cycles to the previous report type.
func (v *ReportsView) PrevReport() {
	v.current = ReportType((int(v.current) + len(reportNames) - 1) % len(reportNames))
	v.loaded = false
}

// NextMonth advances the period by one month.
func (v *ReportsView) NextMonth() {
	t := v.period.Start().AddDate(0, 1, 0)
	v.period = models.ReportPeriod{Year: t.Year(), Month: t.Month()}
	v.loaded = false
}

// PrevMonth moves the period back by one month.
func (v *ReportsView) PrevMonth() {
	t := v.period.Start().AddDate(0, -1, 0)
	v.period = models.ReportPeriod{Year: t.Year(), Month: t.Month()}
	v.loaded = false
}

// Load runs the selected report for the selected period.
func (v *ReportsView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	var err error
	switch v.current {
	case ReportInventory:
		err = v.loadInventory(ctx)
	case ReportMovements:
		err = v.loadMovements(ctx)
	case ReportDeliveries:
		err = v.loadDeliveries(ctx)
	case ReportSales:
		err = v.loadSales(ctx)
	}

	v.loading = false
	if err != nil {
		v.err = err
		return err
	}
	v.loaded = true
	return nil
}

func (v *ReportsView) loadInventory(ctx context.Context) error {
	result, err := v.service.InventoryReport(ctx, v.period)
	if err != nil {
		return err
	}

	v.table = components.NewTable([]components.Column{
		{Title: "Product", Width: 26},
		{Title: "Location", Width: 18},
		{Title: "Stock", Width: 10, Align: lipgloss.Right},
		{Title: "Reorder", Width: 8, Align: lipgloss.Right},
		{Title: "Status", Width: 13},
	})
	v.table.SetVisibleRows(20)

	rows := make([][]string, len(result))
	for i, r := range result {
		rows[i] = []string{
			r.ProductName,
			r.LocationName,
			r.Stock.String(),
			r.ReorderLevel.String(),
			string(r.Status),
		}
	}
	v.table.SetRows(rows)
	v.rowCount = len(rows)
	return nil
}

func (v *ReportsView) loadMovements(ctx context.Context) error {
	result, err := v.service.MovementReport(ctx, v.period)
	if err != nil {
		return err
	}

	v.table = components.NewTable([]components.Column{
		{Title: "Product", Width: 26},
		{Title: "IN #", Width: 6, Align: lipgloss.Right},
		{Title: "IN Qty", Width: 10, Align: lipgloss.Right},
		{Title: "OUT #", Width: 6, Align: lipgloss.Right},
		{Title: "OUT Qty", Width: 10, Align: lipgloss.Right},
	})
	v.table.SetVisibleRows(20)

	rows := make([][]string, len(result))
	for i, r := range result {
		rows[i] = []string{
			r.ProductName,
			strconv.Itoa(r.InCount),
			r.InQuantity.String(),
			strconv.Itoa(r.OutCount),
			r.OutQuantity.String(),
		}
	}
	v.table.SetRows(rows)
	v.rowCount = len(rows)
	return nil
}

func (v *ReportsView) loadDeliveries(ctx context.Context) error {
	result, err := v.service.SupplierDeliveryReport(ctx, v.period)
	if err != nil {
		return err
	}

	v.table = components.NewTable([]components.Column{
		{Title: "Supplier", Width: 28},
		{Title: "Deliveries", Width: 10, Align: lipgloss.Right},
		{Title: "Total Qty", Width: 12, Align: lipgloss.Right},
	})
	v.table.SetVisibleRows(20)

	rows := make([][]string, len(result))
	for i, r := range result {
		rows[i] = []string{
			r.SupplierName,
			strconv.Itoa(r.DeliveryCount),
			r.TotalQuantity.String(),
		}
	}
	v.table.SetRows(rows)
	v.rowCount = len(rows)
	return nil
}

func (v *ReportsView) loadSales(ctx context.Context) error {
	result, err := v.service.SalesReport(ctx, v.period)
	if err != nil {
		return err
	}

	v.table = components.NewTable([]components.Column{
		{Title: "Product", Width: 26},
		{Title: "Unit", Width: 6},
		{Title: "Total Sold", Width: 12, Align: lipgloss.Right},
		{Title: "Sale Days", Width: 9, Align: lipgloss.Right},
		{Title: "Avg/Day", Width: 10, Align: lipgloss.Right},
	})
	v.table.SetVisibleRows(20)

	rows := make([][]string, len(result))
	for i, r := range result {
		rows[i] = []string{
			r.ProductName,
			r.UnitOfMeasure,
			r.TotalSold.String(),
			strconv.Itoa(r.DaysWithSales),
			r.AvgDailySales.StringFixed(2),
		}
	}
	v.table.SetRows(rows)
	v.rowCount = len(rows)
	return nil
}

// MoveUp moves the table selection up.
func (v *ReportsView) MoveUp() {
	if v.table != nil {
		v.table.MoveUp()
	}
}

// MoveDown moves the table selection down.
func (v *ReportsView) MoveDown() {
	if v.table != nil {
		v.table.MoveDown()
	}
}

// Render renders the selected report.
func (v *ReportsView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== MONTHLY REPORTS ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Report: "))
	b.WriteString(valueStyle.Render(v.current.Name()))
	b.WriteString(labelStyle.Render("   Period: "))
	b.WriteString(valueStyle.Render(v.period.String()))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if !v.loaded {
		b.WriteString(labelStyle.Render("Press Enter to run the report."))
		b.WriteString("\n")
	} else if v.rowCount == 0 {
		b.WriteString(labelStyle.Render("No data for this period."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d rows", v.rowCount)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-4/Left/Right:Report  [/]:Month  Enter:Run  Up/Down:Scroll"))

	return b.String()
}
