package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pantryos/pantryos/internal/config"
	"github.com/pantryos/pantryos/internal/database"
	"github.com/pantryos/pantryos/internal/models"
	"github.com/pantryos/pantryos/internal/repository"
	catsvc "github.com/pantryos/pantryos/internal/services/catalog"
	ledgersvc "github.com/pantryos/pantryos/internal/services/ledger"
	reportsvc "github.com/pantryos/pantryos/internal/services/reports"
	catviews "github.com/pantryos/pantryos/internal/tui/views/catalog"
	ledgerviews "github.com/pantryos/pantryos/internal/tui/views/ledger"
	reportviews "github.com/pantryos/pantryos/internal/tui/views/reports"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// Module represents a view module in the application.
type Module string

const (
	ModuleDashboard Module = "dashboard"
	ModuleProducts  Module = "products"
	ModuleSuppliers Module = "suppliers"
	ModuleLocations Module = "locations"
	ModuleMovements Module = "movements"
	ModuleReports   Module = "reports"
	ModuleHelp      Module = "help"
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	db     *database.DB
	config *config.Config

	// Services
	catalogSvc *catsvc.Service
	ledgerSvc  *ledgersvc.Service
	reportsSvc *reportsvc.Service

	// Views
	productsView  *catviews.ProductsView
	suppliersView *catviews.SuppliersView
	locationsView *catviews.LocationsView
	movementsView *ledgerviews.MovementsView
	reportsView   *reportviews.ReportsView

	// Active forms (nil when closed)
	productForm  *catviews.ProductForm
	supplierForm *catviews.SupplierForm
	locationForm *catviews.LocationForm
	movementForm *ledgerviews.MovementForm

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool
	now         time.Time

	// Pending delete confirmation (nil when none)
	pendingDelete *deleteTarget

	// Current view
	currentModule  Module
	previousModule Module
	showDetail     bool
	showForm       bool
	searchMode     bool
	searchInput    string

	// Alerts
	alerts []Alert

	// Dashboard figures, refreshed on load
	activeProducts int
	lowStock       []*models.Product
	movementCount  int
}

type deleteTarget struct {
	kind string // "product", "supplier", "location"
	id   int64
	name string
}

// Alert represents a status line alert.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// tickMsg is sent periodically to update the UI.
type tickMsg time.Time

// New creates a new App instance.
func New(db *database.DB, cfg *config.Config) *App {
	catalogSvc := catsvc.NewService(db.DB)
	ledgerSvc := ledgersvc.NewService(db.DB)
	reportsSvc := reportsvc.NewService(db.DB)

	return &App{
		db:            db,
		config:        cfg,
		catalogSvc:    catalogSvc,
		ledgerSvc:     ledgerSvc,
		reportsSvc:    reportsSvc,
		productsView:  catviews.NewProductsView(catalogSvc),
		suppliersView: catviews.NewSuppliersView(catalogSvc),
		locationsView: catviews.NewLocationsView(catalogSvc),
		movementsView: ledgerviews.NewMovementsView(ledgerSvc),
		reportsView:   reportviews.NewReportsView(reportsSvc, time.Now()),
		theme:         NewTheme(cfg.Display.ColorScheme),
		keys:          DefaultKeyMap(),
		currentModule: ModuleDashboard,
		now:           time.Now(),
		alerts:        []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		a.loadDashboard(),
	)
}

// tickCmd returns a command that sends tick messages.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ============================================================================
// MESSAGES
// ============================================================================

type dashboardMsg struct {
	active        int
	lowStock      []*models.Product
	movementCount int
	err           error
}

type viewLoadedMsg struct {
	module Module
	err    error
}

type productFormReadyMsg struct {
	form *catviews.ProductForm
	err  error
}

type movementFormReadyMsg struct {
	form *ledgerviews.MovementForm
	err  error
}

type savedMsg struct {
	entity string
	err    error
}

type deletedMsg struct {
	entity string
	err    error
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tickMsg:
		a.now = time.Time(msg)
		return a, tickCmd()

	case dashboardMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load dashboard: "+msg.err.Error())
			return a, nil
		}
		a.activeProducts = msg.active
		a.lowStock = msg.lowStock
		a.movementCount = msg.movementCount
		if len(msg.lowStock) > 0 && a.config.Kitchen.LowStockAlerts {
			a.AddAlert(AlertWarning, fmt.Sprintf("%d product(s) at or below reorder level", len(msg.lowStock)))
		}
		return a, nil

	case viewLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, fmt.Sprintf("Failed to load %s: %s", msg.module, msg.err))
		}
		return a, nil

	case productFormReadyMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to open form: "+msg.err.Error())
			return a, nil
		}
		a.productForm = msg.form
		a.showForm = true
		a.showDetail = false
		return a, nil

	case movementFormReadyMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to open form: "+msg.err.Error())
			return a, nil
		}
		a.movementForm = msg.form
		a.showForm = true
		a.showDetail = false
		return a, nil

	case savedMsg:
		a.closeForms()
		if msg.err != nil {
			if errors.Is(msg.err, ledgersvc.ErrInsufficientStock) {
				a.AddAlert(AlertCritical, msg.err.Error())
			} else {
				a.AddAlert(AlertWarning, "Failed to save "+msg.entity+": "+msg.err.Error())
			}
		} else {
			a.AddAlert(AlertInfo, "Saved "+msg.entity)
		}
		return a, tea.Batch(a.loadCurrentModule(), a.loadDashboard())

	case deletedMsg:
		a.showDetail = false
		if msg.err != nil {
			if errors.Is(msg.err, repository.ErrRowInUse) {
				a.AddAlert(AlertCritical, "Cannot delete "+msg.entity+": still referenced")
			} else {
				a.AddAlert(AlertWarning, "Failed to delete "+msg.entity+": "+msg.err.Error())
			}
		} else {
			a.AddAlert(AlertInfo, "Deleted "+msg.entity)
		}
		return a, tea.Batch(a.loadCurrentModule(), a.loadDashboard())
	}

	return a, nil
}

func (a *App) closeForms() {
	a.showForm = false
	a.productForm = nil
	a.supplierForm = nil
	a.locationForm = nil
	a.movementForm = nil
}

// ============================================================================
// KEY HANDLING
// ============================================================================

func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit confirmation modal takes priority.
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
			return a, nil
		}
		return a, nil
	}

	// Delete confirmation modal.
	if a.pendingDelete != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			target := a.pendingDelete
			a.pendingDelete = nil
			return a, a.deleteTargetCmd(target)
		case "n", "N", "esc":
			a.pendingDelete = nil
		}
		return a, nil
	}

	// Forms consume all input before global keys.
	if a.showForm {
		return a.handleFormKeys(msg)
	}

	// Search mode consumes text input before global keys.
	if a.searchMode {
		return a.handleSearchKeys(msg)
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		module := a.keys.GetFunctionKeyModule(msg)
		switch module {
		case "quit":
			a.showConfirm = true
		case "help":
			a.previousModule = a.currentModule
			a.currentModule = ModuleHelp
		case "dashboard":
			a.currentModule = ModuleDashboard
			a.showDetail = false
			return a, a.loadDashboard()
		case "products":
			a.currentModule = ModuleProducts
			a.showDetail = false
			return a, a.loadView(ModuleProducts)
		case "suppliers":
			a.currentModule = ModuleSuppliers
			a.showDetail = false
			return a, a.loadView(ModuleSuppliers)
		case "locations":
			a.currentModule = ModuleLocations
			a.showDetail = false
			return a, a.loadView(ModuleLocations)
		case "movements":
			a.currentModule = ModuleMovements
			a.showDetail = false
			return a, a.loadView(ModuleMovements)
		case "reports":
			a.currentModule = ModuleReports
			a.showDetail = false
		}
		return a, nil
	}

	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	switch a.currentModule {
	case ModuleProducts:
		return a.handleProductKeys(msg)
	case ModuleSuppliers:
		return a.handleSupplierKeys(msg)
	case ModuleLocations:
		return a.handleLocationKeys(msg)
	case ModuleMovements:
		return a.handleMovementKeys(msg)
	case ModuleReports:
		return a.handleReportKeys(msg)
	}

	return a, nil
}

func (a *App) handleProductKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		switch msg.String() {
		case "esc":
			a.showDetail = false
		case "e":
			if p := a.productsView.SelectedProduct(); p != nil {
				return a, a.openProductForm(catviews.FormModeEdit, p)
			}
		case "x":
			if p := a.productsView.SelectedProduct(); p != nil {
				a.pendingDelete = &deleteTarget{kind: "product", id: p.ID, name: p.Name}
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.productsView.MoveUp()
	case "down", "j":
		a.productsView.MoveDown()
	case "enter":
		if a.productsView.SelectedProduct() != nil {
			a.showDetail = true
		}
	case "pgup":
		a.productsView.PrevPage()
		return a, a.loadView(ModuleProducts)
	case "pgdown":
		a.productsView.NextPage()
		return a, a.loadView(ModuleProducts)
	case "a":
		return a, a.openProductForm(catviews.FormModeAdd, nil)
	case "e":
		if p := a.productsView.SelectedProduct(); p != nil {
			return a, a.openProductForm(catviews.FormModeEdit, p)
		}
	case "x":
		if p := a.productsView.SelectedProduct(); p != nil {
			a.pendingDelete = &deleteTarget{kind: "product", id: p.ID, name: p.Name}
		}
	case "l":
		a.productsView.ToggleLowStock()
		return a, a.loadView(ModuleProducts)
	case "/", "s":
		a.searchMode = true
		a.searchInput = ""
	}

	return a, nil
}

func (a *App) handleSupplierKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		switch msg.String() {
		case "esc":
			a.showDetail = false
		case "e":
			if s := a.suppliersView.SelectedSupplier(); s != nil {
				form := catviews.NewSupplierForm(catviews.FormModeEdit)
				form.SetSupplier(s)
				a.supplierForm = form
				a.showForm = true
				a.showDetail = false
			}
		case "x":
			if s := a.suppliersView.SelectedSupplier(); s != nil {
				a.pendingDelete = &deleteTarget{kind: "supplier", id: s.ID, name: s.Name}
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.suppliersView.MoveUp()
	case "down", "j":
		a.suppliersView.MoveDown()
	case "enter":
		if a.suppliersView.SelectedSupplier() != nil {
			a.showDetail = true
			return a, a.loadSupplierDetail()
		}
	case "pgup":
		a.suppliersView.PrevPage()
		return a, a.loadView(ModuleSuppliers)
	case "pgdown":
		a.suppliersView.NextPage()
		return a, a.loadView(ModuleSuppliers)
	case "a":
		a.supplierForm = catviews.NewSupplierForm(catviews.FormModeAdd)
		a.showForm = true
	case "e":
		if s := a.suppliersView.SelectedSupplier(); s != nil {
			form := catviews.NewSupplierForm(catviews.FormModeEdit)
			form.SetSupplier(s)
			a.supplierForm = form
			a.showForm = true
		}
	case "x":
		if s := a.suppliersView.SelectedSupplier(); s != nil {
			a.pendingDelete = &deleteTarget{kind: "supplier", id: s.ID, name: s.Name}
		}
	case "/", "s":
		a.searchMode = true
		a.searchInput = ""
	}

	return a, nil
}

func (a *App) handleLocationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		switch msg.String() {
		case "esc":
			a.showDetail = false
		case "e":
			if l := a.locationsView.SelectedLocation(); l != nil {
				form := catviews.NewLocationForm(catviews.FormModeEdit)
				form.SetLocation(l)
				a.locationForm = form
				a.showForm = true
				a.showDetail = false
			}
		case "x":
			if l := a.locationsView.SelectedLocation(); l != nil {
				a.pendingDelete = &deleteTarget{kind: "location", id: l.ID, name: l.Name}
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.locationsView.MoveUp()
	case "down", "j":
		a.locationsView.MoveDown()
	case "enter":
		if a.locationsView.SelectedLocation() != nil {
			a.showDetail = true
			return a, a.loadLocationDetail()
		}
	case "pgup":
		a.locationsView.PrevPage()
		return a, a.loadView(ModuleLocations)
	case "pgdown":
		a.locationsView.NextPage()
		return a, a.loadView(ModuleLocations)
	case "a":
		a.locationForm = catviews.NewLocationForm(catviews.FormModeAdd)
		a.showForm = true
	case "e":
		if l := a.locationsView.SelectedLocation(); l != nil {
			form := catviews.NewLocationForm(catviews.FormModeEdit)
			form.SetLocation(l)
			a.locationForm = form
			a.showForm = true
		}
	case "x":
		if l := a.locationsView.SelectedLocation(); l != nil {
			a.pendingDelete = &deleteTarget{kind: "location", id: l.ID, name: l.Name}
		}
	case "/", "s":
		a.searchMode = true
		a.searchInput = ""
	}

	return a, nil
}

func (a *App) handleMovementKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		if msg.String() == "esc" {
			a.showDetail = false
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.movementsView.MoveUp()
	case "down", "j":
		a.movementsView.MoveDown()
	case "enter":
		if a.movementsView.SelectedMovement() != nil {
			a.showDetail = true
		}
	case "pgup":
		a.movementsView.PrevPage()
		return a, a.loadView(ModuleMovements)
	case "pgdown":
		a.movementsView.NextPage()
		return a, a.loadView(ModuleMovements)
	case "a":
		return a, a.openMovementForm()
	case "t":
		// Cycle all -> IN -> OUT -> all.
		in, out := models.MovementIn, models.MovementOut
		switch {
		case a.movementsView.TypeFilter() == nil:
			a.movementsView.SetTypeFilter(&in)
		case *a.movementsView.TypeFilter() == models.MovementIn:
			a.movementsView.SetTypeFilter(&out)
		default:
			a.movementsView.SetTypeFilter(nil)
		}
		return a, a.loadView(ModuleMovements)
	}

	return a, nil
}

func (a *App) handleReportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.reportsView.MoveUp()
	case "down", "j":
		a.reportsView.MoveDown()
	case "left", "h":
		a.reportsView.PrevReport()
	case "right", "l":
		a.reportsView.NextReport()
	case "[":
		a.reportsView.PrevMonth()
	case "]":
		a.reportsView.NextMonth()
	case "1", "2", "3", "4":
		a.reportsView.SelectReport(reportviews.ReportType(msg.String()[0] - '1'))
	case "enter":
		return a, a.loadView(ModuleReports)
	}
	return a, nil
}

func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case a.productForm != nil:
		a.productForm.HandleKey(key)
		if a.productForm.IsCancelled() {
			a.closeForms()
			return a, nil
		}
		if a.productForm.IsSubmitted() {
			return a, a.saveProduct()
		}
	case a.supplierForm != nil:
		a.supplierForm.HandleKey(key)
		if a.supplierForm.IsCancelled() {
			a.closeForms()
			return a, nil
		}
		if a.supplierForm.IsSubmitted() {
			return a, a.saveSupplier()
		}
	case a.locationForm != nil:
		a.locationForm.HandleKey(key)
		if a.locationForm.IsCancelled() {
			a.closeForms()
			return a, nil
		}
		if a.locationForm.IsSubmitted() {
			return a, a.saveLocation()
		}
	case a.movementForm != nil:
		a.movementForm.HandleKey(key)
		if a.movementForm.IsCancelled() {
			a.closeForms()
			return a, nil
		}
		if a.movementForm.IsSubmitted() {
			return a, a.saveMovement()
		}
	}

	return a, nil
}

func (a *App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		a.searchMode = false
		a.searchInput = ""
		a.applySearch("")
		return a, a.loadCurrentModule()
	case "enter":
		a.searchMode = false
		a.applySearch(a.searchInput)
		return a, a.loadCurrentModule()
	case "backspace":
		if len(a.searchInput) > 0 {
			a.searchInput = a.searchInput[:len(a.searchInput)-1]
		}
	default:
		if len(key) == 1 {
			a.searchInput += key
		}
	}

	return a, nil
}

func (a *App) applySearch(search string) {
	switch a.currentModule {
	case ModuleProducts:
		a.productsView.SetSearch(search)
	case ModuleSuppliers:
		a.suppliersView.SetSearch(search)
	case ModuleLocations:
		a.locationsView.SetSearch(search)
	}
}

// ============================================================================
// COMMANDS
// ============================================================================

func (a *App) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		counts, err := a.catalogSvc.CountProductsByStatus(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}
		lowStock, err := a.catalogSvc.LowStockProducts(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}
		movements, err := a.ledgerSvc.MovementCount(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}

		return dashboardMsg{
			active:        counts[models.StatusActive],
			lowStock:      lowStock,
			movementCount: movements,
		}
	}
}

func (a *App) loadView(module Module) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch module {
		case ModuleProducts:
			err = a.productsView.Load(ctx)
		case ModuleSuppliers:
			err = a.suppliersView.Load(ctx)
		case ModuleLocations:
			err = a.locationsView.Load(ctx)
		case ModuleMovements:
			err = a.movementsView.Load(ctx)
		case ModuleReports:
			err = a.reportsView.Load(ctx)
		}
		return viewLoadedMsg{module: module, err: err}
	}
}

func (a *App) loadCurrentModule() tea.Cmd {
	if a.currentModule == ModuleDashboard {
		return a.loadDashboard()
	}
	return a.loadView(a.currentModule)
}

func (a *App) loadSupplierDetail() tea.Cmd {
	return func() tea.Msg {
		err := a.suppliersView.LoadDetail(context.Background())
		return viewLoadedMsg{module: ModuleSuppliers, err: err}
	}
}

func (a *App) loadLocationDetail() tea.Cmd {
	return func() tea.Msg {
		err := a.locationsView.LoadDetail(context.Background())
		return viewLoadedMsg{module: ModuleLocations, err: err}
	}
}

// openProductForm loads supplier and location reference lists, then opens
// the form.
func (a *App) openProductForm(mode catviews.FormMode, product *models.Product) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		suppliers, err := a.catalogSvc.ListSuppliers(ctx, models.SupplierFilter{}, models.Pagination{Page: 1, PageSize: 100})
		if err != nil {
			return productFormReadyMsg{err: err}
		}
		locations, err := a.catalogSvc.ListLocations(ctx, models.LocationFilter{}, models.Pagination{Page: 1, PageSize: 100})
		if err != nil {
			return productFormReadyMsg{err: err}
		}

		form := catviews.NewProductForm(mode, suppliers.Suppliers, locations.Locations)
		if product != nil {
			form.SetProduct(product)
		}
		return productFormReadyMsg{form: form}
	}
}

// openMovementForm loads reference lists for the selects, then opens the
// form.
func (a *App) openMovementForm() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		active := models.StatusActive
		products, err := a.catalogSvc.ListProducts(ctx,
			models.ProductFilter{Status: &active}, models.Pagination{Page: 1, PageSize: 100})
		if err != nil {
			return movementFormReadyMsg{err: err}
		}
		locations, err := a.catalogSvc.ListLocations(ctx, models.LocationFilter{}, models.Pagination{Page: 1, PageSize: 100})
		if err != nil {
			return movementFormReadyMsg{err: err}
		}
		suppliers, err := a.catalogSvc.ListSuppliers(ctx, models.SupplierFilter{}, models.Pagination{Page: 1, PageSize: 100})
		if err != nil {
			return movementFormReadyMsg{err: err}
		}

		form := ledgerviews.NewMovementForm(products.Products, locations.Locations, suppliers.Suppliers, a.now)
		return movementFormReadyMsg{form: form}
	}
}

func (a *App) saveProduct() tea.Cmd {
	form := a.productForm
	return func() tea.Msg {
		input, err := form.GetData()
		if err != nil {
			return savedMsg{entity: "product", err: err}
		}

		ctx := context.Background()
		if id := form.ProductID(); id != 0 {
			_, err = a.catalogSvc.UpdateProduct(ctx, catsvc.UpdateProductInput{ID: id, CreateProductInput: input})
		} else {
			_, err = a.catalogSvc.CreateProduct(ctx, input)
		}
		return savedMsg{entity: "product", err: err}
	}
}

func (a *App) saveSupplier() tea.Cmd {
	form := a.supplierForm
	return func() tea.Msg {
		input := form.GetData()

		ctx := context.Background()
		var err error
		if id := form.SupplierID(); id != 0 {
			_, err = a.catalogSvc.UpdateSupplier(ctx, catsvc.UpdateSupplierInput{ID: id, CreateSupplierInput: input})
		} else {
			_, err = a.catalogSvc.CreateSupplier(ctx, input)
		}
		return savedMsg{entity: "supplier", err: err}
	}
}

func (a *App) saveLocation() tea.Cmd {
	form := a.locationForm
	return func() tea.Msg {
		input, err := form.GetData()
		if err != nil {
			return savedMsg{entity: "location", err: err}
		}

		ctx := context.Background()
		if id := form.LocationID(); id != 0 {
			_, err = a.catalogSvc.UpdateLocation(ctx, catsvc.UpdateLocationInput{ID: id, CreateLocationInput: input})
		} else {
			_, err = a.catalogSvc.CreateLocation(ctx, input)
		}
		return savedMsg{entity: "location", err: err}
	}
}

func (a *App) saveMovement() tea.Cmd {
	form := a.movementForm
	return func() tea.Msg {
		input, err := form.GetData()
		if err != nil {
			return savedMsg{entity: "movement", err: err}
		}

		_, err = a.ledgerSvc.RecordMovement(context.Background(), input)
		return savedMsg{entity: "movement", err: err}
	}
}

func (a *App) deleteTargetCmd(target *deleteTarget) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch target.kind {
		case "product":
			err = a.catalogSvc.DeleteProduct(ctx, target.id)
		case "supplier":
			err = a.catalogSvc.DeleteSupplier(ctx, target.id)
		case "location":
			err = a.catalogSvc.DeleteLocation(ctx, target.id)
		}
		return deletedMsg{entity: target.kind, err: err}
	}
}

// ============================================================================
// RENDERING
// ============================================================================

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("PantryOS shutting down...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := a.height - 6 // header, alert, footer
	switch {
	case a.showConfirm:
		b.WriteString(a.renderQuitDialog(contentHeight))
	case a.pendingDelete != nil:
		b.WriteString(a.renderDeleteDialog(contentHeight))
	default:
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

func (a *App) renderHeader() string {
	title := fmt.Sprintf("PANTRYOS KITCHEN INVENTORY v%s", Version)

	kitchenInfo := fmt.Sprintf("%s | PRODUCTS: %d | MOVEMENTS: %d",
		a.config.Kitchen.Name,
		a.activeProducts,
		a.movementCount,
	)

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(kitchenInfo) - 2
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(kitchenInfo)

	separator := a.theme.DrawDoubleLine(a.width)

	return header + "\n" + separator
}

func (a *App) renderAlertBar() string {
	timeStr := a.now.Format(a.config.Display.DateFormat + " " + a.config.Display.TimeFormat)

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertCritical:
			alertText = a.theme.AlertCrit.Render("CRITICAL: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("WARNING: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render("INFO: " + alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("All stock levels nominal")
	}

	timeDisplay := a.theme.Value.Render(timeStr)
	divider := a.theme.StatusDivider.Render()

	return timeDisplay + divider + alertText
}

func (a *App) renderContent(height int) string {
	content := a.getModuleContent()

	contentWidth := a.width
	if contentWidth > MaxContentWidth {
		contentWidth = MaxContentWidth
	}

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(content))
}

func (a *App) getModuleContent() string {
	switch a.currentModule {
	case ModuleDashboard:
		return a.renderDashboard()
	case ModuleProducts:
		return a.renderProducts()
	case ModuleSuppliers:
		return a.renderSuppliers()
	case ModuleLocations:
		return a.renderLocations()
	case ModuleMovements:
		return a.renderMovements()
	case ModuleReports:
		return a.reportsView.Render(a.width, a.height-6)
	case ModuleHelp:
		return a.renderHelp()
	default:
		return ""
	}
}

func (a *App) renderSearchBar() string {
	if !a.searchMode {
		return ""
	}
	return a.theme.Label.Render("SEARCH: ") +
		a.theme.Accent.Render(a.searchInput) +
		a.theme.Accent.Render("_") + "\n\n"
}

func (a *App) renderProducts() string {
	if a.showForm && a.productForm != nil {
		return a.productForm.Render()
	}
	if a.showDetail {
		return a.productsView.RenderDetail(a.productsView.SelectedProduct())
	}
	return a.renderSearchBar() + a.productsView.Render(a.width, a.height-6)
}

func (a *App) renderSuppliers() string {
	if a.showForm && a.supplierForm != nil {
		return a.supplierForm.Render()
	}
	if a.showDetail {
		return a.suppliersView.RenderDetail(a.suppliersView.SelectedSupplier())
	}
	return a.renderSearchBar() + a.suppliersView.Render(a.width, a.height-6)
}

func (a *App) renderLocations() string {
	if a.showForm && a.locationForm != nil {
		return a.locationForm.Render()
	}
	if a.showDetail {
		return a.locationsView.RenderDetail(a.locationsView.SelectedLocation())
	}
	return a.renderSearchBar() + a.locationsView.Render(a.width, a.height-6)
}

func (a *App) renderMovements() string {
	if a.showForm && a.movementForm != nil {
		return a.movementForm.Render()
	}
	if a.showDetail {
		return a.movementsView.RenderDetail(a.movementsView.SelectedMovement())
	}
	return a.movementsView.Render(a.width, a.height-6)
}

func (a *App) renderDashboard() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ KITCHEN OVERVIEW ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("INVENTORY"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Active Products:  %d\n", a.activeProducts))
	b.WriteString(fmt.Sprintf("  Ledger Entries:   %d\n", a.movementCount))
	b.WriteString("\n")

	b.WriteString(a.theme.Subtitle.Render("LOW STOCK"))
	b.WriteString("\n")
	if len(a.lowStock) == 0 {
		b.WriteString("  " + a.theme.Success.Render("All products above reorder level") + "\n")
	} else {
		for i, p := range a.lowStock {
			if i >= 10 {
				b.WriteString(a.theme.Muted.Render(fmt.Sprintf("  ... and %d more\n", len(a.lowStock)-10)))
				break
			}
			level := a.theme.Warning.Render("LOW")
			if p.StockLevel() == models.StockStatusOutOfStock {
				level = a.theme.Error.Render("OUT")
			}
			b.WriteString(fmt.Sprintf("  %-26s %10s %-4s  [%s]\n",
				p.Name, p.CurrentStock.String(), p.UnitOfMeasure, level))
		}
	}
	b.WriteString("\n")

	b.WriteString(a.theme.Muted.Render("Press F2-F6 to open a module, F9 for help."))

	return b.String()
}

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("NAVIGATION"))
	b.WriteString("\n\n")

	navItems := [][2]string{
		{"F1", "Dashboard"},
		{"F2", "Products"},
		{"F3", "Suppliers"},
		{"F4", "Storage Locations"},
		{"F5", "Stock Movements"},
		{"F6", "Monthly Reports"},
		{"F9", "Help"},
		{"F10", "Quit"},
	}

	for _, item := range navItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("CONTROLS"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"Up/Down", "Navigate"},
		{"Enter", "Select / Run report"},
		{"Esc", "Back/Cancel"},
		{"a", "Add row / Record movement"},
		{"e", "Edit selected"},
		{"x", "Delete selected"},
		{"l", "Low stock filter (products)"},
		{"t", "Type filter (movements)"},
		{"/", "Search"},
		{"[/]", "Report month"},
		{"PgUp/Dn", "Page navigation"},
	}

	for _, item := range ctrlItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Stock is always derived from the movement ledger; movements cannot be edited."))
	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

func (a *App) renderQuitDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

func (a *App) renderDeleteDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM DELETE") + "\n\n" +
			a.theme.Base.Render(fmt.Sprintf("Delete %s %q?", a.pendingDelete.kind, a.pendingDelete.name)) + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

func (a *App) renderFooter() string {
	separator := a.theme.DrawHorizontalLine(a.width)
	help := a.keys.StatusBarHelp()
	return separator + "\n" + a.theme.Footer.Render(help)
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, db *database.DB, cfg *config.Config) error {
	app := New(db, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
