// Package catalog loads and searches the product reference list.
//
// Products come from a spreadsheet upload, a local JSON cache written on the
// last successful upload, or a built-in sample set, in that order. A load
// never fails: every error degrades to the next source in the chain.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column headers recognized in catalog spreadsheets. Part Number and
// Description are required; the rest are optional with defaults.
const (
	ColPartNumber  = "Part Number"
	ColDescription = "Description"
	ColSupplier    = "Supplier"
	ColUnitPrice   = "Unit Price"
	ColWeight      = "Weight"
	ColQty         = "Qty"
)

// ErrMissingColumns reports a catalog file without the required headers.
var ErrMissingColumns = errors.New("catalog file is missing required columns")

// Product is one catalog entry. Products are immutable once loaded; a
// re-upload replaces the whole list.
type Product struct {
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Weight      decimal.Decimal `json:"weight"`
	DefaultQty  int             `json:"default_qty"`
}

// Catalog holds the loaded product list in file order.
type Catalog struct {
	products []Product
}

// Load builds a catalog from source, which is either a spreadsheet path or
// empty. An empty source loads the JSON cache at cachePath, falling back to
// the built-in sample set. A successful spreadsheet load rewrites the cache
// so later launches skip the spreadsheet step. Load never returns an error:
// malformed input degrades to the sample set and is logged.
func Load(source, cachePath string) *Catalog {
	if source == "" {
		if products, err := readCache(cachePath); err == nil && len(products) > 0 {
			return &Catalog{products: products}
		} else if err != nil && !os.IsNotExist(err) {
			log.Printf("catalog: cache unreadable, using sample data: %v", err)
		}
		return &Catalog{products: SampleProducts()}
	}

	products, err := ReadFile(source)
	if err != nil {
		log.Printf("catalog: cannot read %s, using sample data: %v", source, err)
		return &Catalog{products: SampleProducts()}
	}

	if err := writeCache(cachePath, products); err != nil {
		log.Printf("catalog: cache write failed: %v", err)
	}
	return &Catalog{products: products}
}

// Validate checks that path is a readable catalog file with the required
// Part Number and Description columns.
func Validate(path string) error {
	_, err := ReadFile(path)
	return err
}

// Len reports the number of loaded products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns a copy of the full product list in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search returns products whose part number or description contains query,
// case-insensitively. An empty query returns the full list. Result order
// preserves catalog order; there is no ranking.
func (c *Catalog) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Products()
	}

	var matches []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.PartNumber), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Lookup finds a product by exact part number, ignoring surrounding space.
func (c *Catalog) Lookup(partNumber string) (Product, bool) {
	want := strings.TrimSpace(partNumber)
	for _, p := range c.products {
		if strings.TrimSpace(p.PartNumber) == want {
			return p, true
		}
	}
	return Product{}, false
}

// ReadFile parses a catalog spreadsheet (.xlsx) or CSV export (.csv) into a
// product list. The header row is matched by name, so column order does not
// matter and extra columns are ignored.
func ReadFile(path string) ([]Product, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	default:
		rows, err = readSheetRows(path)
	}
	if err != nil {
		return nil, err
	}
	return productsFromRows(rows)
}

func readSheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func productsFromRows(rows [][]string) ([]Product, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog file is empty")
	}

	cols := indexHeaders(rows[0])
	var missing []string
	for _, required := range []string{ColPartNumber, ColDescription} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var products []Product
	for _, row := range rows[1:] {
		part := cell(row, ColPartNumber)
		desc := cell(row, ColDescription)
		if part == "" && desc == "" {
			continue
		}

		products = append(products, Product{
			PartNumber:  part,
			Description: desc,
			Supplier:    cell(row, ColSupplier),
			UnitPrice:   parseDecimal(cell(row, ColUnitPrice)),
			Weight:      parseDecimal(cell(row, ColWeight)),
			DefaultQty:  parseQty(cell(row, ColQty)),
		})
	}
	return products, nil
}

// indexHeaders maps the known column names onto their positions in the
// header row, matching case-insensitively.
func indexHeaders(header []string) map[string]int {
	known := []string{ColPartNumber, ColDescription, ColSupplier, ColUnitPrice, ColWeight, ColQty}
	cols := make(map[string]int, len(known))
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, name := range known {
			if strings.EqualFold(h, name) {
				if _, seen := cols[name]; !seen {
					cols[name] = i
				}
			}
		}
	}
	return cols
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseQty(s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func readCache(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}
	return products, nil
}

func writeCache(path string, products []Product) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
