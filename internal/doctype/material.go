package doctype

import (
	"fmt"
	"time"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/ledger"
)

// MaterialList is the material release form. Unlike the notes it shows a
// computed total price column on screen, and its export keeps the display
// strings as-is rather than reshaping them around header fields.
type MaterialList struct{}

func (MaterialList) Name() string         { return "material-list" }
func (MaterialList) Title() string        { return "Material List" }
func (MaterialList) NumberPrefix() string { return "MRF" }
func (MaterialList) TemplateFile() string { return "mrf_template.docx" }

func (MaterialList) Columns() []string {
	return []string{"Part Number", "Description", "Supplier", "Qty", "Unit Price", "Total Price", "Weight"}
}

func (MaterialList) FormatRow(item ledger.LineItem) []string {
	_, _, _, totalPrice, _ := rowNumbers(item)
	total := item.DisplayPrice
	if unit, ok := ledger.ParseAmount(item.DisplayPrice); ok && !unit.Equal(totalPrice) {
		// Keep the currency label from the unit price.
		total = ledger.ReplaceAmount(item.DisplayPrice, totalPrice.StringFixed(2))
	}
	return []string{
		item.PartNumber,
		item.Description,
		item.Supplier,
		item.DisplayQty,
		item.DisplayPrice,
		total,
		item.DisplayWeight,
	}
}

func (m MaterialList) ExportRows(_ clientcache.HeaderRecord, items []ledger.LineItem) ([]string, [][]any) {
	columns := m.Columns()

	var rows [][]any
	for _, item := range items {
		formatted := m.FormatRow(item)
		row := make([]any, len(formatted))
		for i, v := range formatted {
			row[i] = v
		}
		rows = append(rows, row)
	}
	return columns, rows
}

func (MaterialList) OutputBaseName(header clientcache.HeaderRecord, now time.Time) string {
	return fmt.Sprintf("MRF-%s-%s-%s",
		now.Format("02-01-06"),
		sanitizeName(header.Project, "Project"),
		sanitizeName(header.Incharge, "Incharge"))
}
