package doctype

import (
	"fmt"
	"time"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/ledger"
)

// DeliveryNote documents incoming material deliveries. Its export rows carry
// the full header block alongside each line item, the way the delivery note
// spreadsheet backup is laid out.
type DeliveryNote struct{}

func (DeliveryNote) Name() string         { return "delivery-note" }
func (DeliveryNote) Title() string        { return "Delivery Note" }
func (DeliveryNote) NumberPrefix() string { return "DN" }
func (DeliveryNote) TemplateFile() string { return "delivery_note_template.docx" }

func (DeliveryNote) Columns() []string {
	return []string{"Part Number", "Description", "Qty", "Supplier", "Unit Price", "Weight"}
}

func (DeliveryNote) FormatRow(item ledger.LineItem) []string {
	return []string{
		item.PartNumber,
		item.Description,
		item.DisplayQty,
		item.Supplier,
		item.DisplayPrice,
		item.DisplayWeight,
	}
}

func (DeliveryNote) ExportRows(header clientcache.HeaderRecord, items []ledger.LineItem) ([]string, [][]any) {
	columns := []string{
		"Delivery Note No.", "Delivery Note Date", "Customer", "Project",
		"Address", "Phone", "Attn.", "Customer PO Ref", "Quotation", "Subject",
		"Contact Number", "Part Number", "Description", "Supplier", "Qty",
		"Unit Price", "Unit Weight (kg)", "Total Price", "Total Weight (kg)",
	}

	var rows [][]any
	for _, item := range items {
		if item.PartNumber == "" || item.Description == "" {
			continue
		}
		qty, unitPrice, unitWeight, totalPrice, totalWeight := rowNumbers(item)
		rows = append(rows, []any{
			header.DocumentNo, header.Date, header.Customer, header.Project,
			header.Address, header.Phone, header.Incharge, header.CustomerPO,
			header.Quotation, header.Subject, header.ContactNum,
			item.PartNumber, item.Description, item.Supplier, qty,
			cellFloat(unitPrice), cellFloat(unitWeight),
			cellFloat(totalPrice), cellFloat(totalWeight),
		})
	}
	return columns, rows
}

func (DeliveryNote) OutputBaseName(header clientcache.HeaderRecord, _ time.Time) string {
	number := header.DocumentNo
	if number == "" {
		number = "DN"
	}
	return fmt.Sprintf("%s-%s", number, sanitizeName(header.Customer, "Customer"))
}
