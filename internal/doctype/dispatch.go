package doctype

import (
	"fmt"
	"time"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/ledger"
)

// DispatchNote documents outgoing shipments. It shares the delivery note
// shape minus the supplier column.
type DispatchNote struct{}

func (DispatchNote) Name() string         { return "dispatch-note" }
func (DispatchNote) Title() string        { return "Dispatch Note" }
func (DispatchNote) NumberPrefix() string { return "DSN" }
func (DispatchNote) TemplateFile() string { return "dispatch_note_template.docx" }

func (DispatchNote) Columns() []string {
	return []string{"Part Number", "Description", "Qty", "Unit Price", "Weight"}
}

func (DispatchNote) FormatRow(item ledger.LineItem) []string {
	return []string{
		item.PartNumber,
		item.Description,
		item.DisplayQty,
		item.DisplayPrice,
		item.DisplayWeight,
	}
}

func (DispatchNote) ExportRows(header clientcache.HeaderRecord, items []ledger.LineItem) ([]string, [][]any) {
	columns := []string{
		"Dispatch Note No.", "Dispatch Date", "Customer", "Project",
		"Part Number", "Description", "Qty", "Unit Price",
		"Unit Weight (kg)", "Total Price", "Total Weight (kg)",
	}

	var rows [][]any
	for _, item := range items {
		if item.PartNumber == "" || item.Description == "" {
			continue
		}
		qty, unitPrice, unitWeight, totalPrice, totalWeight := rowNumbers(item)
		rows = append(rows, []any{
			header.DocumentNo, header.Date, header.Customer, header.Project,
			item.PartNumber, item.Description, qty, cellFloat(unitPrice),
			cellFloat(unitWeight), cellFloat(totalPrice), cellFloat(totalWeight),
		})
	}
	return columns, rows
}

func (DispatchNote) OutputBaseName(header clientcache.HeaderRecord, _ time.Time) string {
	number := header.DocumentNo
	if number == "" {
		number = "DSN"
	}
	return fmt.Sprintf("%s-%s", number, sanitizeName(header.Customer, "Customer"))
}
