package doctype

import (
	"testing"
	"time"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/ledger"
)

func testItem() ledger.LineItem {
	return ledger.LineItem{
		PartNumber:    "P001",
		Description:   "Steel Pipe 10mm",
		Supplier:      "ABC Steel Co.",
		Qty:           3,
		DisplayQty:    "3 pcs",
		DisplayPrice:  "SAR 25.50",
		DisplayWeight: "2.500 kg",
	}
}

func testHeader() clientcache.HeaderRecord {
	return clientcache.HeaderRecord{
		Customer:   "ABC Steel Co.",
		Project:    "Warehouse Ext.",
		Incharge:   "J. Smith",
		Date:       "21/08/2026",
		DocumentNo: "DN001-08-26",
	}
}

func TestForName(t *testing.T) {
	for _, name := range []string{"delivery-note", "dispatch-note", "material-list"} {
		dt, err := ForName(name)
		if err != nil {
			t.Fatalf("ForName(%q): %v", name, err)
		}
		if dt.Name() != name {
			t.Errorf("ForName(%q).Name() = %q", name, dt.Name())
		}
	}
	if _, err := ForName("invoice"); err == nil {
		t.Error("expected error for unknown document type")
	}
}

func TestFormatRowMatchesColumns(t *testing.T) {
	item := testItem()
	for _, dt := range All() {
		row := dt.FormatRow(item)
		if len(row) != len(dt.Columns()) {
			t.Errorf("%s: row has %d cells for %d columns", dt.Name(), len(row), len(dt.Columns()))
		}
	}
}

func TestDeliveryNoteExportRows(t *testing.T) {
	header := testHeader()
	items := []ledger.LineItem{
		testItem(),
		{PartNumber: "P999"}, // no description, must be skipped
	}

	columns, rows := DeliveryNote{}.ExportRows(header, items)
	if len(rows) != 1 {
		t.Fatalf("expected 1 export row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) != len(columns) {
		t.Fatalf("row has %d cells for %d columns", len(row), len(columns))
	}

	at := func(name string) any {
		for i, c := range columns {
			if c == name {
				return row[i]
			}
		}
		t.Fatalf("column %q not found", name)
		return nil
	}

	if got := at("Delivery Note No."); got != "DN001-08-26" {
		t.Errorf("document number = %v", got)
	}
	if got := at("Qty"); got != 3 {
		t.Errorf("qty = %v, want 3", got)
	}
	if got := at("Unit Price"); got != 25.5 {
		t.Errorf("unit price = %v, want 25.5", got)
	}
	if got := at("Total Price"); got != 76.5 {
		t.Errorf("total price = %v, want 76.5", got)
	}
	if got := at("Total Weight (kg)"); got != 7.5 {
		t.Errorf("total weight = %v, want 7.5", got)
	}
}

func TestMaterialListTotalKeepsCurrencyLabel(t *testing.T) {
	row := MaterialList{}.FormatRow(testItem())
	// Columns: Part Number, Description, Supplier, Qty, Unit Price, Total Price, Weight.
	if row[4] != "SAR 25.50" {
		t.Errorf("unit price = %q", row[4])
	}
	if row[5] != "SAR 76.50" {
		t.Errorf("total price = %q, want %q", row[5], "SAR 76.50")
	}
}

func TestOutputBaseNames(t *testing.T) {
	header := testHeader()
	now := time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC)

	if got := (DeliveryNote{}).OutputBaseName(header, now); got != "DN001-08-26-ABC_Steel_Co." {
		t.Errorf("delivery note name = %q", got)
	}
	if got := (MaterialList{}).OutputBaseName(header, now); got != "MRF-21-08-26-Warehouse_Ext.-J._Smith" {
		t.Errorf("material list name = %q", got)
	}

	empty := clientcache.HeaderRecord{}
	if got := (DispatchNote{}).OutputBaseName(empty, now); got != "DSN-Customer" {
		t.Errorf("dispatch note fallback name = %q", got)
	}
}
