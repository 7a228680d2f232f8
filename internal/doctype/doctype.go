// Package doctype defines the per-document-type behaviour shared by the
// delivery note, dispatch note and material list generators.
//
// Each document type supplies its table columns, how a ledger row is
// rendered into those columns, the flat row set written to a spreadsheet
// export, its document number prefix and its .docx template file. Everything
// else in the pipeline is common.
package doctype

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/ledger"
)

// Type is the capability interface implemented by each document variant.
type Type interface {
	// Name is the CLI-facing identifier, e.g. "delivery-note".
	Name() string

	// Title is the human-readable document title.
	Title() string

	// NumberPrefix prefixes generated document numbers, e.g. "DN".
	NumberPrefix() string

	// TemplateFile is the .docx template file name under the templates
	// directory.
	TemplateFile() string

	// Columns are the on-screen table columns for this document type.
	Columns() []string

	// FormatRow renders one ledger row into Columns() order.
	FormatRow(item ledger.LineItem) []string

	// ExportRows reshapes the ledger plus header metadata into the flat
	// column set written to a spreadsheet export.
	ExportRows(header clientcache.HeaderRecord, items []ledger.LineItem) ([]string, [][]any)

	// OutputBaseName is the default export file name, without extension.
	OutputBaseName(header clientcache.HeaderRecord, now time.Time) string
}

// ForName resolves a CLI document type name.
func ForName(name string) (Type, error) {
	for _, t := range All() {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown document type %q (want delivery-note, dispatch-note or material-list)", name)
}

// All returns the supported document types.
func All() []Type {
	return []Type{DeliveryNote{}, DispatchNote{}, MaterialList{}}
}

// rowNumbers parses the quantity-weighted numeric values out of a ledger
// row's display strings. Unparsable values come back zero, matching the
// export behaviour of skipping rather than failing on odd rows.
func rowNumbers(item ledger.LineItem) (qty int, unitPrice, unitWeight, totalPrice, totalWeight decimal.Decimal) {
	qty = item.Qty
	q := decimal.NewFromInt(int64(qty))
	if price, ok := ledger.ParseAmount(item.DisplayPrice); ok {
		unitPrice = price.Round(2)
		totalPrice = price.Mul(q).Round(2)
	}
	if weight, ok := ledger.ParseAmount(item.DisplayWeight); ok {
		unitWeight = weight.Round(3)
		totalWeight = weight.Mul(q).Round(3)
	}
	return qty, unitPrice, unitWeight, totalPrice, totalWeight
}

// cellFloat converts a decimal for a numeric spreadsheet cell.
func cellFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func sanitizeName(s, fallback string) string {
	if s == "" {
		return fallback
	}
	out := []rune(s)
	for i, r := range out {
		switch r {
		case ' ', '/', '\\':
			out[i] = '_'
		}
	}
	return string(out)
}
