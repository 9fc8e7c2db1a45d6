package catalog

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/catalog"
	"github.com/pantryos/pantryos/internal/tui/components"
)

// FormMode indicates whether a form adds or edits a row.
type FormMode int

const (
	FormModeAdd FormMode = iota
	FormModeEdit
)

// ProductForm is a form for adding and editing products.
type ProductForm struct {
	mode    FormMode
	product *models.Product

	// Option id lists parallel to the select options, index 0 meaning none.
	supplierIDs []int64
	locationIDs []int64

	name         *components.Input
	description  *components.Input
	category     *components.Select
	unit         *components.Input
	reorderLevel *components.Input
	supplier     *components.Select
	location     *components.Select
	status       *components.Select

	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// NewProductForm creates a product form. Suppliers and locations populate
// the reference selects.
func NewProductForm(mode FormMode, suppliers []*models.Supplier, locations []*models.StorageLocation) *ProductForm {
	categoryOpts := make([]string, 0, len(models.ProductCategories()))
	for _, c := range models.ProductCategories() {
		categoryOpts = append(categoryOpts, string(c))
	}

	supplierOpts := []string{"-"}
	supplierIDs := []int64{0}
	for _, s := range suppliers {
		supplierOpts = append(supplierOpts, s.Name)
		supplierIDs = append(supplierIDs, s.ID)
	}

	locationOpts := []string{"-"}
	locationIDs := []int64{0}
	for _, l := range locations {
		locationOpts = append(locationOpts, l.Name)
		locationIDs = append(locationIDs, l.ID)
	}

	statusOpts := make([]string, 0, len(models.Statuses()))
	for _, s := range models.Statuses() {
		statusOpts = append(statusOpts, string(s))
	}

	f := &ProductForm{
		mode:        mode,
		supplierIDs: supplierIDs,
		locationIDs: locationIDs,

		name:         components.NewInput("Name").SetRequired(true).SetWidth(30),
		description:  components.NewInput("Description").SetWidth(40),
		category:     components.NewSelect("Category", categoryOpts),
		unit:         components.NewInput("Unit").SetRequired(true).SetWidth(8).SetPlaceholder("kg"),
		reorderLevel: components.NewInput("Reorder Level").SetRequired(true).SetWidth(10).SetValue("0"),
		supplier:     components.NewSelect("Supplier", supplierOpts),
		location:     components.NewSelect("Location", locationOpts),
		status:       components.NewSelect("Status", statusOpts),
	}

	f.fields = []components.FormField{
		f.name,
		f.description,
		f.category,
		f.unit,
		f.reorderLevel,
		f.supplier,
		f.location,
		f.status,
	}
	f.fields[0].Focus(true)

	return f
}

// SetProduct populates the form with existing product data.
func (f *ProductForm) SetProduct(p *models.Product) {
	f.product = p
	f.name.SetValue(p.Name)
	f.description.SetValue(p.Description)
	f.unit.SetValue(p.UnitOfMeasure)
	f.reorderLevel.SetValue(p.ReorderLevel.String())

	for i, c := range models.ProductCategories() {
		if c == p.Category {
			f.category.SetSelected(i)
			break
		}
	}
	if p.SupplierID != nil {
		for i, id := range f.supplierIDs {
			if id == *p.SupplierID {
				f.supplier.SetSelected(i)
				break
			}
		}
	}
	if p.LocationID != nil {
		for i, id := range f.locationIDs {
			if id == *p.LocationID {
				f.location.SetSelected(i)
				break
			}
		}
	}
	for i, s := range models.Statuses() {
		if s == p.Status {
			f.status.SetSelected(i)
			break
		}
	}
}

// HandleKey handles key input.
func (f *ProductForm) HandleKey(key string) {
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

func (f *ProductForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *ProductForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *ProductForm) submit() {
	f.err = ""

	valid := true
	if !f.name.Validate() {
		valid = false
	}
	if !f.unit.Validate() {
		valid = false
	}
	if _, err := decimal.NewFromString(f.reorderLevel.Value()); err != nil {
		f.err = "Reorder level must be a number"
		valid = false
	}

	if !valid {
		if f.err == "" {
			f.err = "Please fill in all required fields"
		}
		return
	}

	f.submitted = true
}

// IsSubmitted returns true if the form was submitted.
func (f *ProductForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *ProductForm) IsCancelled() bool {
	return f.cancelled
}

// ProductID returns the edited product's ID, or zero when adding.
func (f *ProductForm) ProductID() int64 {
	if f.product != nil {
		return f.product.ID
	}
	return 0
}

// GetData returns the form data as a create input.
func (f *ProductForm) GetData() (svc.CreateProductInput, error) {
	reorder, err := decimal.NewFromString(f.reorderLevel.Value())
	if err != nil {
		return svc.CreateProductInput{}, err
	}

	var supplierID, locationID *int64
	if idx := f.supplier.SelectedIndex(); idx > 0 {
		id := f.supplierIDs[idx]
		supplierID = &id
	}
	if idx := f.location.SelectedIndex(); idx > 0 {
		id := f.locationIDs[idx]
		locationID = &id
	}

	return svc.CreateProductInput{
		Name:          f.name.Value(),
		Description:   f.description.Value(),
		Category:      models.ProductCategory(f.category.Value()),
		UnitOfMeasure: f.unit.Value(),
		ReorderLevel:  reorder,
		SupplierID:    supplierID,
		LocationID:    locationID,
		Status:        models.Status(f.status.Value()),
	}, nil
}

// Render renders the form.
func (f *ProductForm) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	var b strings.Builder

	title := "ADD PRODUCT"
	if f.mode == FormModeEdit {
		title = "EDIT PRODUCT"
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
