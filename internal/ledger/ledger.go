// Package ledger holds the ordered working list of line items a user builds
// before exporting a document.
//
// Line items carry their values as display strings ("3 pcs", "SAR 25.50",
// "2.500 kg") exactly as they appear in the generated document; numeric
// operations parse the numeric portion back out. Order is significant:
// insertion order is display and print order, and rows are reorderable.
package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/almayssan/formsgen/internal/catalog"
	"github.com/almayssan/formsgen/internal/currency"
)

// Editable fields for Edit.
const (
	FieldQty    = "qty"
	FieldPrice  = "price"
	FieldWeight = "weight"
)

// Move directions.
const (
	MoveUp   = -1
	MoveDown = 1
)

var (
	// ErrSelectionRequired is returned by Remove when the ledger has more
	// than one row and no rows were selected.
	ErrSelectionRequired = errors.New("select item(s) to remove")

	// ErrInvalidQty is returned by Edit when the new quantity does not
	// parse to a positive integer. The prior value is retained.
	ErrInvalidQty = errors.New("quantity must be a positive integer")
)

var numberPattern = regexp.MustCompile(`-?\d+(?:,\d{3})*(?:\.\d+)?`)

// LineItem is one ledger row. Product fields are copied at add time, so a
// later catalog reload does not disturb rows already on the ledger.
type LineItem struct {
	PartNumber    string
	Description   string
	Supplier      string
	Qty           int
	DisplayQty    string
	DisplayPrice  string
	DisplayWeight string
}

// Ledger is the ordered list of line items.
type Ledger struct {
	items []LineItem
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Len reports the number of rows.
func (l *Ledger) Len() int { return len(l.items) }

// Items returns a copy of the rows in display order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Add appends a line item for product with the given quantity. A quantity
// below one falls back to the product's default. The same product may be
// added more than once; each call yields its own row.
func (l *Ledger) Add(product catalog.Product, qty int) {
	if qty < 1 {
		qty = product.DefaultQty
	}
	if qty < 1 {
		qty = 1
	}

	l.items = append(l.items, LineItem{
		PartNumber:    product.PartNumber,
		Description:   product.Description,
		Supplier:      product.Supplier,
		Qty:           qty,
		DisplayQty:    FormatQty(qty),
		DisplayPrice:  currency.Format(product.UnitPrice, currency.BaseCurrency),
		DisplayWeight: FormatWeight(product.Weight),
	})
}

// Remove deletes the selected rows. A single-row ledger is cleared without
// requiring a selection; otherwise an empty selection is an error and the
// remaining rows keep their order.
func (l *Ledger) Remove(selection []int) error {
	if len(l.items) == 0 {
		return errors.New("there are no items to remove")
	}
	if len(l.items) == 1 {
		l.items = l.items[:0]
		return nil
	}
	if len(selection) == 0 {
		return ErrSelectionRequired
	}

	drop := make(map[int]bool, len(selection))
	for _, idx := range selection {
		if idx < 0 || idx >= len(l.items) {
			return fmt.Errorf("row %d out of range", idx)
		}
		drop[idx] = true
	}

	kept := l.items[:0]
	for i, item := range l.items {
		if !drop[i] {
			kept = append(kept, item)
		}
	}
	l.items = kept
	return nil
}

// Move swaps the row at index with its neighbour in the given direction.
// Moves past either boundary are no-ops.
func (l *Ledger) Move(index, direction int) {
	target := index + direction
	if index < 0 || index >= len(l.items) || target < 0 || target >= len(l.items) {
		return
	}
	l.items[index], l.items[target] = l.items[target], l.items[index]
}

// Edit updates one editable field of a row in place. Quantity must parse to
// a positive integer ("3" and "3 pcs" both work); otherwise the edit is
// rejected and the prior value retained. Price and weight accept the value
// as given.
func (l *Ledger) Edit(row int, field, value string) error {
	if row < 0 || row >= len(l.items) {
		return fmt.Errorf("row %d out of range", row)
	}
	value = strings.TrimSpace(value)

	switch field {
	case FieldQty:
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return ErrInvalidQty
		}
		qty, err := strconv.Atoi(fields[0])
		if err != nil || qty < 1 {
			return ErrInvalidQty
		}
		l.items[row].Qty = qty
		l.items[row].DisplayQty = FormatQty(qty)
	case FieldPrice:
		l.items[row].DisplayPrice = value
	case FieldWeight:
		l.items[row].DisplayWeight = value
	default:
		return fmt.Errorf("field %q is not editable", field)
	}
	return nil
}

// Reprice rewrites every row's display price in the target currency by
// multiplying its numeric portion by rate. Rows whose current price has no
// numeric portion are skipped.
func (l *Ledger) Reprice(targetCode string, rate decimal.Decimal) {
	for i := range l.items {
		amount, ok := ParseAmount(l.items[i].DisplayPrice)
		if !ok {
			continue
		}
		l.items[i].DisplayPrice = currency.Format(amount.Mul(rate).Round(2), targetCode)
	}
}

// Reset removes all rows.
func (l *Ledger) Reset() {
	l.items = l.items[:0]
}

// Totals sums quantity-weighted price and weight across all rows, parsing
// the display strings. Rows with unparsable values contribute zero.
func (l *Ledger) Totals() (totalPrice, totalWeight decimal.Decimal) {
	for _, item := range l.items {
		qty := decimal.NewFromInt(int64(item.Qty))
		if price, ok := ParseAmount(item.DisplayPrice); ok {
			totalPrice = totalPrice.Add(price.Mul(qty))
		}
		if weight, ok := ParseAmount(item.DisplayWeight); ok {
			totalWeight = totalWeight.Add(weight.Mul(qty))
		}
	}
	return totalPrice.Round(2), totalWeight.Round(3)
}

// FormatQty renders a quantity for display, e.g. "3 pcs".
func FormatQty(qty int) string {
	if qty < 1 {
		qty = 1
	}
	return fmt.Sprintf("%d pcs", qty)
}

// FormatWeight renders a weight for display, e.g. "2.500 kg".
func FormatWeight(weight decimal.Decimal) string {
	return weight.StringFixed(3) + " kg"
}

// ReplaceAmount swaps the numeric portion of a display string for a new
// amount, keeping the surrounding label ("USD 25.50" -> "USD 76.50"). The
// display is returned unchanged when it has no numeric portion.
func ReplaceAmount(display, amount string) string {
	loc := numberPattern.FindStringIndex(display)
	if loc == nil {
		return display
	}
	return display[:loc[0]] + amount + display[loc[1]:]
}

// ParseAmount extracts the numeric portion of a display string such as
// "USD 108.09", "25.50 SAR" or "2.500 kg". Thousands separators are
// accepted. The second return is false when no number is present.
func ParseAmount(display string) (decimal.Decimal, bool) {
	match := numberPattern.FindString(display)
	if match == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
