package catalog

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/catalog"
	"github.com/pantryos/pantryos/internal/tui/components"
)

// SupplierForm is a form for adding and editing suppliers.
type SupplierForm struct {
	mode     FormMode
	supplier *models.Supplier

	name          *components.Input
	contactPerson *components.Input
	contactNumber *components.Input
	email         *components.Input
	address       *components.Input
	status        *components.Select

	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// NewSupplierForm creates a supplier form.
func NewSupplierForm(mode FormMode) *SupplierForm {
	statusOpts := make([]string, 0, len(models.Statuses()))
	for _, s := range models.Statuses() {
		statusOpts = append(statusOpts, string(s))
	}

	f := &SupplierForm{
		mode: mode,

		name:          components.NewInput("Name").SetRequired(true).SetWidth(30),
		contactPerson: components.NewInput("Contact Person").SetRequired(true).SetWidth(25),
		contactNumber: components.NewInput("Contact Number").SetRequired(true).SetWidth(18),
		email:         components.NewInput("Email").SetWidth(30),
		address:       components.NewInput("Address").SetWidth(40),
		status:        components.NewSelect("Status", statusOpts),
	}

	f.fields = []components.FormField{
		f.name,
		f.contactPerson,
		f.contactNumber,
		f.email,
		f.address,
		f.status,
	}
	f.fields[0].Focus(true)

	return f
}

// SetSupplier populates the form with existing supplier data.
func (f *SupplierForm) SetSupplier(s *models.Supplier) {
	f.supplier = s
	f.name.SetValue(s.Name)
	f.contactPerson.SetValue(s.ContactPerson)
	f.contactNumber.SetValue(s.ContactNumber)
	f.email.SetValue(s.Email)
	f.address.SetValue(s.Address)

	for i, st := range models.Statuses() {
		if st == s.Status {
			f.status.SetSelected(i)
			break
		}
	}
}

// HandleKey handles key input.
func (f *SupplierForm) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.submit()
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.submit()
		} else {
			f.nextField()
		}
	default:
		f.fields[f.focusIndex].HandleKey(key)
	}
}

func (f *SupplierForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *SupplierForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *SupplierForm) submit() {
	f.err = ""

	valid := true
	if !f.name.Validate() {
		valid = false
	}
	if !f.contactPerson.Validate() {
		valid = false
	}
	if !f.contactNumber.Validate() {
		valid = false
	}

	if !valid {
		f.err = "Please fill in all required fields"
		return
	}

	f.submitted = true
}

// IsSubmitted returns true if the form was submitted.
func (f *SupplierForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *SupplierForm) IsCancelled() bool {
	return f.cancelled
}

// SupplierID returns the edited supplier's ID, or zero when adding.
func (f *SupplierForm) SupplierID() int64 {
	if f.supplier != nil {
		return f.supplier.ID
	}
	return 0
}

// GetData returns the form data as a create input.
func (f *SupplierForm) GetData() svc.CreateSupplierInput {
	return svc.CreateSupplierInput{
		Name:          f.name.Value(),
		ContactPerson: f.contactPerson.Value(),
		ContactNumber: f.contactNumber.Value(),
		Email:         f.email.Value(),
		Address:       f.address.Value(),
		Status:        models.Status(f.status.Value()),
	}
}

// Render renders the form.
func (f *SupplierForm) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	var b strings.Builder

	title := "ADD SUPPLIER"
	if f.mode == FormModeEdit {
		title = "EDIT SUPPLIER"
	}
	b.WriteString(titleStyle.Render("═══ " + title + " ═══"))
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
	b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Save  Esc:Cancel"))

	return b.String()
}
