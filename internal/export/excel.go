// Package export renders a ledger plus header metadata into its output
// forms: a spreadsheet, a populated .docx template, or a PDF print job.
//
// Each export is a single linear pass; there is no partial or resumable
// state. Validation failures surface before anything is written.
package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/doctype"
	"github.com/almayssan/formsgen/internal/ledger"
	"github.com/almayssan/formsgen/pkg/utils"
)

// ErrExists signals that the destination file exists and overwrite was not
// confirmed.
var ErrExists = errors.New("destination file already exists")

// ErrNoRows signals an export with nothing to write.
var ErrNoRows = errors.New("no valid rows to export")

// Widths applied to known columns in spreadsheet exports.
var columnWidths = map[string]float64{
	"Part Number":       20,
	"Description":       40,
	"Qty":               10,
	"Supplier":          20,
	"Unit Price":        15,
	"Total Price":       15,
	"Weight":            12,
	"Unit Weight (kg)":  12,
	"Total Weight (kg)": 12,
}

// ToSpreadsheet writes the ledger rows, reshaped through the document
// type's column mapping, to a new .xlsx file. An existing destination is
// only overwritten when overwrite is set.
func ToSpreadsheet(t doctype.Type, header clientcache.HeaderRecord, items []ledger.LineItem, path string, overwrite bool) error {
	columns, rows := t.ExportRows(header, items)
	if len(rows) == 0 {
		return ErrNoRows
	}

	if utils.FileExists(path) && !overwrite {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headerRow := make([]any, len(columns))
	for i, c := range columns {
		headerRow[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i, col := range columns {
		width, ok := columnWidths[col]
		if !ok {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}

// AppendBackup appends the export rows to the per-document-type spreadsheet
// backup log, creating it with a header row on first use.
func AppendBackup(t doctype.Type, header clientcache.HeaderRecord, items []ledger.LineItem, path string) error {
	columns, rows := t.ExportRows(header, items)
	if len(rows) == 0 {
		return nil
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	var f *excelize.File
	start := 1
	if utils.FileExists(path) {
		var err error
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("open backup log: %w", err)
		}
		existing, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return fmt.Errorf("read backup log: %w", err)
		}
		start = len(existing) + 1
	} else {
		f = excelize.NewFile()
		headerRow := make([]any, len(columns))
		for i, c := range columns {
			headerRow[i] = c
		}
		if err := f.SetSheetRow(f.GetSheetName(0), "A1", &headerRow); err != nil {
			return err
		}
		start = 2
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, start+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("append backup row: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save backup log: %w", err)
	}
	return nil
}
