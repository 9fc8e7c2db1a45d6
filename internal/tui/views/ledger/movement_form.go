package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/ledger"
	"github.com/pantryos/pantryos/internal/tui/components"
	"github.com/pantryos/pantryos/internal/util"
)

// MovementForm collects a new ledger entry. Because entries cannot be
// edited after the fact, the form shows a confirmation summary before
// submitting.
type MovementForm struct {
	productIDs  []int64
	locationIDs []int64
	supplierIDs []int64

	product   *components.Select
	location  *components.Select
	supplier  *components.Select
	mtype     *components.Select
	quantity  *components.Input
	dateYear  *components.Input
	dateMonth *components.Input
	dateDay   *components.Input
	reason    *components.Input

	focusIndex int
	fields     []components.FormField
	confirming bool
	submitted  bool
	cancelled  bool
	err        string
}

// NewMovementForm creates a movement form over the given reference data.
func NewMovementForm(products []*models.Product, locations []*models.StorageLocation, suppliers []*models.Supplier, today time.Time) *MovementForm {
	productOpts := make([]string, 0, len(products))
	productIDs := make([]int64, 0, len(products))
	for _, p := range products {
		productOpts = append(productOpts, p.Name)
		productIDs = append(productIDs, p.ID)
	}

	locationOpts := make([]string, 0, len(locations))
	locationIDs := make([]int64, 0, len(locations))
	for _, l := range locations {
		locationOpts = append(locationOpts, l.Name)
		locationIDs = append(locationIDs, l.ID)
	}

	supplierOpts := []string{"-"}
	supplierIDs := []int64{0}
	for _, s := range suppliers {
		supplierOpts = append(supplierOpts, s.Name)
		supplierIDs = append(supplierIDs, s.ID)
	}

	f := &MovementForm{
		productIDs:  productIDs,
		locationIDs: locationIDs,
		supplierIDs: supplierIDs,

		product:   components.NewSelect("Product", productOpts),
		location:  components.NewSelect("Location", locationOpts),
		supplier:  components.NewSelect("Supplier", supplierOpts),
		mtype:     components.NewSelect("Type", []string{"IN", "OUT"}),
		quantity:  components.NewInput("Quantity").SetRequired(true).SetWidth(10),
		dateYear:  components.NewInput("Year").SetRequired(true).SetWidth(6).SetMaxLength(4).SetValue(fmt.Sprintf("%d", today.Year())),
		dateMonth: components.NewInput("Month").SetRequired(true).SetWidth(4).SetMaxLength(2).SetValue(fmt.Sprintf("%02d", today.Month())),
		dateDay:   components.NewInput("Day").SetRequired(true).SetWidth(4).SetMaxLength(2).SetValue(fmt.Sprintf("%02d", today.Day())),
		reason:    components.NewInput("Reason").SetWidth(40),
	}

	f.fields = []components.FormField{
		f.product,
		f.location,
		f.supplier,
		f.mtype,
		f.quantity,
		f.dateYear,
		f.dateMonth,
		f.dateDay,
		f.reason,
	}
	f.fields[0].Focus(true)

	return f
}

// HandleKey handles key input. In the confirmation step only y/n/esc are
// accepted.
func (f *MovementForm) HandleKey(key string) {
	if f.confirming {
		switch key {
		case "y", "Y", "enter":
			f.submitted = true
		case "n", "N", "esc":
			f.confirming = false
		}
		return
	}

	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.startConfirm()
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.startConfirm()
		} else {
			f.nextField()
		}
	default:
		f.fields[f.focusIndex].HandleKey(key)
	}
}

func (f *MovementForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *MovementForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *MovementForm) startConfirm() {
	f.err = ""

	if len(f.productIDs) == 0 {
		f.err = "No products to move"
		return
	}
	if len(f.locationIDs) == 0 {
		f.err = "No storage locations"
		return
	}

	qty, err := decimal.NewFromString(f.quantity.Value())
	if err != nil || qty.Sign() <= 0 {
		f.err = "Quantity must be a positive number"
		return
	}
	if _, err := f.parseDate(); err != nil {
		f.err = "Invalid date"
		return
	}

	f.confirming = true
}

func (f *MovementForm) parseDate() (time.Time, error) {
	dateStr := fmt.Sprintf("%s-%s-%s", f.dateYear.Value(), f.dateMonth.Value(), f.dateDay.Value())
	return time.Parse(util.DateFormat, dateStr)
}

// IsSubmitted returns true if the entry was confirmed.
func (f *MovementForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *MovementForm) IsCancelled() bool {
	return f.cancelled
}

// GetData returns the form data as a record input.
func (f *MovementForm) GetData() (svc.RecordMovementInput, error) {
	qty, err := decimal.NewFromString(f.quantity.Value())
	if err != nil {
		return svc.RecordMovementInput{}, err
	}
	date, err := f.parseDate()
	if err != nil {
		return svc.RecordMovementInput{}, err
	}

	var supplierID *int64
	if idx := f.supplier.SelectedIndex(); idx > 0 {
		id := f.supplierIDs[idx]
		supplierID = &id
	}

	return svc.RecordMovementInput{
		ProductID:  f.productIDs[f.product.SelectedIndex()],
		LocationID: f.locationIDs[f.location.SelectedIndex()],
		SupplierID: supplierID,
		Quantity:   qty,
		Type:       models.MovementType(f.mtype.Value()),
		Date:       date,
		Reason:     f.reason.Value(),
	}, nil
}

// Render renders the form, or the confirmation summary when pending.
func (f *MovementForm) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	var b strings.Builder

	if f.confirming {
		b.WriteString(titleStyle.Render("═══ CONFIRM MOVEMENT ═══"))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Product:") + " " + valueStyle.Render(f.product.Value()) + "\n")
		b.WriteString(labelStyle.Render("Location:") + " " + valueStyle.Render(f.location.Value()) + "\n")
		if f.supplier.SelectedIndex() > 0 {
			b.WriteString(labelStyle.Render("Supplier:") + " " + valueStyle.Render(f.supplier.Value()) + "\n")
		}
		b.WriteString(labelStyle.Render("Type:") + " " + valueStyle.Render(f.mtype.Value()) + "\n")
		b.WriteString(labelStyle.Render("Quantity:") + " " + valueStyle.Render(f.quantity.Value()) + "\n")
		b.WriteString(labelStyle.Render("Date:") + " " + valueStyle.Render(
			fmt.Sprintf("%s-%s-%s", f.dateYear.Value(), f.dateMonth.Value(), f.dateDay.Value())) + "\n")
		if f.reason.Value() != "" {
			b.WriteString(labelStyle.Render("Reason:") + " " + valueStyle.Render(f.reason.Value()) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("This entry cannot be edited once recorded."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("[Y]es record  [N]o go back"))
		return b.String()
	}

	b.WriteString(titleStyle.Render("═══ RECORD MOVEMENT ═══"))
	b.WriteString("\n\n")

	for _, field := range f.fields {
		b.WriteString(field.Render())
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + f.err))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Review  Esc:Cancel"))

	return b.String()
}
