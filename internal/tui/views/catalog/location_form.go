package catalog

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/pantryos/pantryos/internal/models"
	svc "github.com/pantryos/pantryos/internal/services/catalog"
	"github.com/pantryos/pantryos/internal/tui/components"
)

// LocationForm is a form for adding and editing storage locations.
type LocationForm struct {
	mode     FormMode
	location *models.StorageLocation

	name        *components.Input
	area        *components.Input
	capacity    *components.Input
	temperature *components.Select

	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// NewLocationForm creates a storage location form.
func NewLocationForm(mode FormMode) *LocationForm {
	tempOpts := make([]string, 0, len(models.TemperatureControls()))
	for _, t := range models.TemperatureControls() {
		tempOpts = append(tempOpts, string(t))
	}

	f := &LocationForm{
		mode: mode,

		name:        components.NewInput("Name").SetRequired(true).SetWidth(25),
		area:        components.NewInput("Area").SetWidth(40),
		capacity:    components.NewInput("Capacity").SetRequired(true).SetWidth(10).SetValue("0"),
		temperature: components.NewSelect("Temperature", tempOpts),
	}

	f.fields = []components.FormField{
		f.name,
		f.area,
		f.capacity,
		f.temperature,
	}
	f.fields[0].Focus(true)

	return f
}

// SetLocation populates the form with existing location data.
func (f *LocationForm) SetLocation(l *models.StorageLocation) {
	f.location = l
	f.name.SetValue(l.Name)
	f.area.SetValue(l.AreaDescription)
	f.capacity.SetValue(l.Capacity.String())

	for i, t := range models.TemperatureControls() {
		if t == l.TemperatureControl {
			f.temperature.SetSelected(i)
			break
		}
	}
}

// HandleKey handles key input.
func (f *LocationForm) HandleKey(key string) {
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

func (f *LocationForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *LocationForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *LocationForm) submit() {
	f.err = ""

	valid := true
	if !f.name.Validate() {
		valid = false
	}
	if _, err := decimal.NewFromString(f.capacity.Value()); err != nil {
		f.err = "Capacity must be a number"
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
func (f *LocationForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *LocationForm) IsCancelled() bool {
	return f.cancelled
}

// LocationID returns the edited location's ID, or zero when adding.
func (f *LocationForm) LocationID() int64 {
	if f.location != nil {
		return f.location.ID
	}
	return 0
}

// GetData returns the form data as a create input.
func (f *LocationForm) GetData() (svc.CreateLocationInput, error) {
	capacity, err := decimal.NewFromString(f.capacity.Value())
	if err != nil {
		return svc.CreateLocationInput{}, err
	}

	return svc.CreateLocationInput{
		Name:               f.name.Value(),
		AreaDescription:    f.area.Value(),
		Capacity:           capacity,
		TemperatureControl: models.TemperatureControl(f.temperature.Value()),
	}, nil
}

// Render renders the form.
func (f *LocationForm) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	var b strings.Builder

	title := "ADD LOCATION"
	if f.mode == FormModeEdit {
		title = "EDIT LOCATION"
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
