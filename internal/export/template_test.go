package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/almayssan/formsgen/internal/doctype"
	"github.com/almayssan/formsgen/internal/docx"
)

// writeTestTemplate creates a minimal .docx template with header tokens and
// an item table.
func writeTestTemplate(t *testing.T, dir string) string {
	t.Helper()

	body := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Customer: {Customer}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Ref: {Delivery_No}</w:t></w:r></w:p>` +
		`<w:tbl>` +
		`<w:tr><w:tc><w:p><w:r><w:t>No.</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>Item</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>Description</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>Qty</w:t></w:r></w:p></w:tc></w:tr>` +
		`<w:tr><w:tc><w:p><w:r><w:t>placeholder</w:t></w:r></w:p></w:tc></w:tr>` +
		`</w:tbl>` +
		`</w:body></w:document>`

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   body,
	} {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "delivery_note_template.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestToTemplate(t *testing.T) {
	dir := t.TempDir()
	templatePath := writeTestTemplate(t, dir)
	outPath := filepath.Join(dir, "exports", "DN001-08-26-ABC_Steel_Co..docx")

	l, header := buildTestLedger(t)
	if err := ToTemplate(doctype.DeliveryNote{}, header, l.Items(), templatePath, outPath); err != nil {
		t.Fatalf("ToTemplate: %v", err)
	}

	doc, err := docx.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	text := doc.Text()

	for _, want := range []string{
		"Customer: ABC Steel Co.",
		"Ref: DN001-08-26",
		"Steel Pipe 10mm",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q: %q", want, text)
		}
	}
	if strings.Contains(text, "placeholder") {
		t.Error("template placeholder row survived export")
	}
	if strings.Contains(text, "{Customer}") {
		t.Error("header token not substituted")
	}
}

func TestToTemplateEmptyLedger(t *testing.T) {
	dir := t.TempDir()
	templatePath := writeTestTemplate(t, dir)

	_, header := buildTestLedger(t)
	err := ToTemplate(doctype.DeliveryNote{}, header, nil, templatePath, filepath.Join(dir, "out.docx"))
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("ToTemplate = %v, want ErrNoRows", err)
	}
}

func TestTemplatePath(t *testing.T) {
	got := TemplatePath(doctype.MaterialList{}, "assets/templates")
	want := filepath.Join("assets", "templates", "mrf_template.docx")
	if got != want {
		t.Errorf("TemplatePath = %q, want %q", got, want)
	}
}
