// Package seed provides demo data generation for a cloud kitchen.
package seed

// SeedSuppliers defines the suppliers for seeding.
var SeedSuppliers = []struct {
	Name          string
	ContactPerson string
	ContactNumber string
	Email         string
	Address       string
}{
	{"Metro Fresh Produce", "Dana Reyes", "0917-555-0101", "orders@metrofresh.example", "14 Market Road"},
	{"Golden Grain Trading", "Marco Lim", "0917-555-0102", "sales@goldengrain.example", "88 Mill Street"},
	{"Coldchain Meats Inc", "Priya Nair", "0917-555-0103", "dispatch@coldchain.example", "3 Abattoir Avenue"},
	{"Pack-Rite Supplies", "Jun Santos", "0917-555-0104", "hello@packrite.example", "21 Industrial Park"},
	{"AquaPure Beverages", "Lena Cruz", "0917-555-0105", "lena@aquapure.example", "56 Spring Lane"},
	{"Brightline Chemicals", "Omar Haddad", "0917-555-0106", "orders@brightline.example", "9 Depot Road"},
}

// SeedLocations defines the storage locations for seeding.
var SeedLocations = []struct {
	Name               string
	AreaDescription    string
	Capacity           string
	TemperatureControl string
}{
	{"Dry Storage A", "Main dry goods shelving", "500", "None"},
	{"Dry Storage B", "Overflow shelving near prep", "300", "None"},
	{"Walk-in Chiller", "Produce and dairy chiller", "200", "Refrigerated"},
	{"Walk-in Freezer", "Meat and frozen goods", "250", "Freezer"},
	{"Chemical Cabinet", "Locked cleaning supply cabinet", "50", "None"},
}

// SeedProducts defines the products for seeding. Supplier and Location are
// indexes into SeedSuppliers and SeedLocations.
var SeedProducts = []struct {
	Name          string
	Description   string
	Category      string
	UnitOfMeasure string
	ReorderLevel  string
	Supplier      int
	Location      int
	// Weekly delivery and daily usage quantities for history generation.
	DeliveryQty string
	DailyUseMax int
}{
	{"Basmati Rice", "Long grain basmati rice, 25kg sacks", "Ingredient", "kg", "50", 1, 0, "100", 12},
	{"All-Purpose Flour", "Bleached flour for batters and breading", "Ingredient", "kg", "30", 1, 0, "60", 8},
	{"Chicken Breast", "Boneless skinless, vacuum packed", "Ingredient", "kg", "25", 2, 3, "80", 15},
	{"Beef Chuck", "Cubed beef chuck for stews", "Ingredient", "kg", "15", 2, 3, "40", 8},
	{"Tomatoes", "Fresh roma tomatoes", "Ingredient", "kg", "10", 0, 2, "30", 10},
	{"Red Onions", "Fresh red onions", "Ingredient", "kg", "10", 0, 2, "25", 8},
	{"Cooking Oil", "Refined palm olein, 17L tins", "Ingredient", "L", "20", 1, 0, "51", 6},
	{"Soy Sauce", "Brewed soy sauce, 1L bottles", "Ingredient", "L", "6", 1, 0, "12", 2},
	{"Meal Boxes Large", "Kraft meal boxes, 1000ml", "Packaging", "pcs", "200", 3, 1, "1000", 120},
	{"Meal Boxes Small", "Kraft meal boxes, 500ml", "Packaging", "pcs", "150", 3, 1, "800", 90},
	{"Cutlery Packs", "Spoon-fork-napkin packs", "Packaging", "pcs", "300", 3, 1, "1200", 150},
	{"Paper Bags", "Branded takeaway bags", "Packaging", "pcs", "100", 3, 1, "500", 80},
	{"Bottled Water 500ml", "Purified drinking water", "Beverage", "pcs", "48", 4, 0, "240", 40},
	{"Iced Tea Concentrate", "Lemon iced tea syrup, 2L", "Beverage", "L", "8", 4, 2, "20", 4},
	{"Dish Detergent", "Concentrated dishwashing liquid", "Cleaning Supply", "L", "10", 5, 4, "20", 3},
	{"Surface Sanitizer", "Food-safe sanitizing solution", "Cleaning Supply", "L", "5", 5, 4, "10", 2},
	{"Chef Knives", "8 inch stainless chef knives", "Utensil", "pcs", "2", 3, 0, "4", 0},
	{"Stock Pots 20L", "Stainless stock pots", "Equipment", "pcs", "1", 3, 0, "2", 0},
}

// MovementReasons used for generated OUT entries.
var MovementReasons = []string{
	"Lunch service",
	"Dinner service",
	"Catering order",
	"Prep batch",
	"Spoilage write-off",
}
