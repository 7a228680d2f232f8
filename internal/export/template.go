package export

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/docx"
	"github.com/almayssan/formsgen/internal/doctype"
	"github.com/almayssan/formsgen/internal/ledger"
	"github.com/almayssan/formsgen/pkg/utils"
)

// itemTableSignature identifies the item table inside a document template
// by its header row labels.
var itemTableSignature = []string{"no.", "item", "description"}

// ToTemplate opens the document type's .docx template, substitutes every
// {Token} placeholder with the matching header field across body, headers
// and footers, repopulates the item table with one row per ledger entry
// (index, part number, description, quantity), and saves the result to
// outPath.
func ToTemplate(t doctype.Type, header clientcache.HeaderRecord, items []ledger.LineItem, templatePath, outPath string) error {
	if len(items) == 0 {
		return ErrNoRows
	}

	doc, err := docx.Open(templatePath)
	if err != nil {
		return fmt.Errorf("open template %s: %w", templatePath, err)
	}

	doc.SubstituteTokens(header.Placeholders())

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.PartNumber,
			item.Description,
			strconv.Itoa(item.Qty),
		})
	}
	if err := doc.PopulateTable(itemTableSignature, rows); err != nil {
		return err
	}

	if err := utils.EnsureDir(filepath.Dir(outPath)); err != nil {
		return err
	}
	if err := doc.Save(outPath); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	return nil
}

// TemplatePath resolves the document type's template file under the
// templates directory.
func TemplatePath(t doctype.Type, templatesDir string) string {
	return filepath.Join(templatesDir, t.TemplateFile())
}
