// Package forms reads the YAML form files that drive document generation:
// the header block a clerk would type into the window, plus the list of
// catalog items and quantities to put on the ledger.
package forms

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/almayssan/formsgen/internal/catalog"
	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/ledger"
)

// Form is one document's worth of input.
type Form struct {
	Header Header `yaml:"header"`
	Items  []Item `yaml:"items"`
}

// Header mirrors the header entry fields of the generator windows.
type Header struct {
	Customer   string `yaml:"customer"`
	Project    string `yaml:"project"`
	Address    string `yaml:"address"`
	Phone      string `yaml:"phone"`
	Incharge   string `yaml:"incharge"`
	ContactNum string `yaml:"contact_number"`
	CustomerPO string `yaml:"customer_po"`
	Quotation  string `yaml:"quotation"`
	Subject    string `yaml:"subject"`
	Date       string `yaml:"date"`
	DocumentNo string `yaml:"document_number"`
}

// Item selects a catalog product by part number. Description, supplier,
// price and weight may be given inline for items that are not in the
// catalog, or to override the catalog values.
type Item struct {
	PartNumber  string  `yaml:"part_number"`
	Description string  `yaml:"description"`
	Supplier    string  `yaml:"supplier"`
	Qty         int     `yaml:"qty"`
	UnitPrice   *string `yaml:"unit_price"`
	Weight      *string `yaml:"weight"`
}

// Load reads and validates a form file.
func Load(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}

	var form Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("parse form %s: %w", path, err)
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return &form, nil
}

// Validate enforces the inputs the windows enforced before any write:
// customer name, a document date (defaulted to today when absent) and at
// least one item with a positive quantity.
func (f *Form) Validate() error {
	if f.Header.Customer == "" {
		return fmt.Errorf("customer name is required")
	}
	if f.Header.Date == "" {
		f.Header.Date = time.Now().Format("2006-01-02")
	}
	if len(f.Items) == 0 {
		return fmt.Errorf("no items to export; add items to the form")
	}
	for i, item := range f.Items {
		if item.PartNumber == "" {
			return fmt.Errorf("item %d: part_number is required", i+1)
		}
		if item.Qty < 0 {
			return fmt.Errorf("item %d (%s): qty must be a positive integer", i+1, item.PartNumber)
		}
	}
	return nil
}

// HeaderRecord converts the header block into the shape stored in the
// client info log and used for template tokens.
func (f *Form) HeaderRecord() clientcache.HeaderRecord {
	return clientcache.HeaderRecord{
		Customer:   f.Header.Customer,
		Project:    f.Header.Project,
		Address:    f.Header.Address,
		Phone:      f.Header.Phone,
		Incharge:   f.Header.Incharge,
		ContactNum: f.Header.ContactNum,
		CustomerPO: f.Header.CustomerPO,
		Quotation:  f.Header.Quotation,
		Subject:    f.Header.Subject,
		Date:       f.Header.Date,
		DocumentNo: f.Header.DocumentNo,
	}
}

// BuildLedger resolves each form item against the catalog and adds it to a
// fresh ledger. Items not found in the catalog must carry an inline
// description; inline price and weight override the catalog values.
func (f *Form) BuildLedger(cat *catalog.Catalog) (*ledger.Ledger, error) {
	led := ledger.New()

	for i, item := range f.Items {
		product, ok := cat.Lookup(item.PartNumber)
		if !ok {
			if item.Description == "" {
				return nil, fmt.Errorf("item %d: part number %q not found in catalog", i+1, item.PartNumber)
			}
			product = catalog.Product{PartNumber: item.PartNumber, DefaultQty: 1}
		}

		if item.Description != "" {
			product.Description = item.Description
		}
		if item.Supplier != "" {
			product.Supplier = item.Supplier
		}
		if item.UnitPrice != nil {
			d, err := decimal.NewFromString(*item.UnitPrice)
			if err != nil {
				return nil, fmt.Errorf("item %d (%s): invalid unit_price: %w", i+1, item.PartNumber, err)
			}
			product.UnitPrice = d
		}
		if item.Weight != nil {
			d, err := decimal.NewFromString(*item.Weight)
			if err != nil {
				return nil, fmt.Errorf("item %d (%s): invalid weight: %w", i+1, item.PartNumber, err)
			}
			product.Weight = d
		}

		led.Add(product, item.Qty)
	}
	return led, nil
}
