package models

// Supplier represents a supplier of products and IN movements.
type Supplier struct {
	ID            int64
	Name          string
	ContactPerson string
	ContactNumber string
	Email         string
	Address       string
	Status        Status
}

// SupplierFilter defines filters for querying suppliers.
type SupplierFilter struct {
	Search string
	Status *Status
}

// SupplierList represents a paginated list of suppliers.
type SupplierList struct {
	Suppliers  []*Supplier
	Total      int
	Page       int
	TotalPages int
}
