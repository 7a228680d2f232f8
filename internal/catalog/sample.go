package catalog

import "github.com/shopspring/decimal"

// SampleProducts returns the built-in demonstration catalog used when no
// spreadsheet and no cache is available.
func SampleProducts() []Product {
	return []Product{
		{
			PartNumber:  "P001",
			Description: "Steel Pipe 10mm",
			Supplier:    "ABC Steel Co.",
			UnitPrice:   decimal.RequireFromString("25.50"),
			Weight:      decimal.RequireFromString("2.5"),
			DefaultQty:  1,
		},
		{
			PartNumber:  "P002",
			Description: "Copper Wire 5m",
			Supplier:    "ElectroTech Ltd.",
			UnitPrice:   decimal.RequireFromString("15.75"),
			Weight:      decimal.RequireFromString("0.8"),
			DefaultQty:  1,
		},
		{
			PartNumber:  "P003",
			Description: "Concrete Block",
			Supplier:    "BuildMax Inc.",
			UnitPrice:   decimal.RequireFromString("8.25"),
			Weight:      decimal.RequireFromString("15.0"),
			DefaultQty:  1,
		},
		{
			PartNumber:  "P004",
			Description: "Paint Bucket 5L",
			Supplier:    "ColorWorks",
			UnitPrice:   decimal.RequireFromString("45.00"),
			Weight:      decimal.RequireFromString("5.2"),
			DefaultQty:  1,
		},
		{
			PartNumber:  "P005",
			Description: "Safety Helmet",
			Supplier:    "SafeGuard Pro",
			UnitPrice:   decimal.RequireFromString("32.80"),
			Weight:      decimal.RequireFromString("0.4"),
			DefaultQty:  1,
		},
	}
}
