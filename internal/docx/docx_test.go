package docx

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// buildPackage assembles a minimal .docx zip from part name/content pairs.
func buildPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "word/header1.xml", "word/footer1.xml"} {
		content, ok := parts[name]
		if !ok {
			continue
		}
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create part %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write part %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const testBody = `<w:document><w:body>` +
	`<w:p><w:r><w:t>Deliver to {Cust</w:t></w:r><w:r><w:t>omer} today</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Thank you for your business</w:t></w:r></w:p>` +
	`<w:tbl>` +
	`<w:tr><w:tc><w:p><w:r><w:t>No.</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>Item</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>Description</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>Qty</w:t></w:r></w:p></w:tc></w:tr>` +
	`<w:tr><w:tc><w:p><w:r><w:t>STALE</w:t></w:r></w:p></w:tc></w:tr>` +
	`</w:tbl>` +
	`</w:body></w:document>`

func openTestDocument(t *testing.T) *Document {
	t.Helper()

	data := buildPackage(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   testBody,
		"word/header1.xml":    `<w:hdr><w:p><w:r><w:t>Ref: {Delivery_No}</w:t></w:r></w:p></w:hdr>`,
		"word/footer1.xml":    `<w:ftr><w:p><w:r><w:t>Page</w:t></w:r></w:p></w:ftr>`,
	})
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	return doc
}

func TestSubstituteTokensAcrossRuns(t *testing.T) {
	doc := openTestDocument(t)

	n := doc.SubstituteTokens(map[string]string{
		"Customer":    "ABC Steel Co.",
		"Delivery_No": "DN001-08-26",
		"Unused":      "never",
	})
	if n != 2 {
		t.Fatalf("replaced %d tokens, want 2", n)
	}

	text := doc.Text()
	if !strings.Contains(text, "Deliver to ABC Steel Co. today") {
		t.Errorf("token split across runs not substituted: %q", text)
	}
	if !strings.Contains(text, "Ref: DN001-08-26") {
		t.Errorf("header token not substituted: %q", text)
	}
	if !strings.Contains(text, "Thank you for your business") {
		t.Errorf("unrelated paragraph was disturbed: %q", text)
	}
	if strings.Contains(text, "{Customer}") || strings.Contains(text, "{Cust") {
		t.Errorf("token remnants left behind: %q", text)
	}
}

func TestSubstituteLeavesTokenFreePartsUntouched(t *testing.T) {
	doc := openTestDocument(t)
	before, _ := doc.Part("word/footer1.xml")
	footer := string(before)

	doc.SubstituteTokens(map[string]string{"Customer": "X", "Delivery_No": "Y"})

	after, _ := doc.Part("word/footer1.xml")
	if string(after) != footer {
		t.Errorf("footer without tokens changed:\nbefore: %s\nafter:  %s", footer, after)
	}
}

func TestSubstituteEscapesValues(t *testing.T) {
	doc := openTestDocument(t)
	doc.SubstituteTokens(map[string]string{"Customer": "Smith & Sons <Intl>"})

	body, _ := doc.Part("word/document.xml")
	if !bytes.Contains(body, []byte("Smith &amp; Sons &lt;Intl&gt;")) {
		t.Errorf("special characters not escaped in XML: %s", body)
	}
	if !strings.Contains(doc.Text(), "Smith & Sons <Intl>") {
		t.Errorf("Text() should unescape: %q", doc.Text())
	}
}

func TestPopulateTable(t *testing.T) {
	doc := openTestDocument(t)

	rows := [][]string{
		{"1", "P001", "Steel Pipe 10mm", "3"},
		{"2", "P002", "Copper Wire 5m", "2"},
	}
	if err := doc.PopulateTable([]string{"no.", "item", "description"}, rows); err != nil {
		t.Fatalf("PopulateTable: %v", err)
	}

	body, _ := doc.Part("word/document.xml")
	text := string(body)
	if strings.Contains(text, "STALE") {
		t.Error("stale template row survived population")
	}
	for _, want := range []string{"Steel Pipe 10mm", "Copper Wire 5m"} {
		if !strings.Contains(text, want) {
			t.Errorf("row content %q missing from table", want)
		}
	}

	table := tablePattern.FindString(text)
	if got := len(rowPattern.FindAllString(table, -1)); got != 3 {
		t.Errorf("table has %d rows, want header + 2", got)
	}
}

func TestPopulateTableNoMatch(t *testing.T) {
	doc := openTestDocument(t)
	err := doc.PopulateTable([]string{"no.", "item", "weight"}, nil)
	if err == nil {
		t.Fatal("expected an error when no table matches the signature")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	doc := openTestDocument(t)
	doc.SubstituteTokens(map[string]string{"Customer": "ABC Steel Co."})

	path := filepath.Join(t.TempDir(), "out.docx")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open saved document: %v", err)
	}
	if !strings.Contains(reopened.Text(), "Deliver to ABC Steel Co. today") {
		t.Errorf("substitution lost on round trip: %q", reopened.Text())
	}
	if part, ok := reopened.Part("[Content_Types].xml"); !ok || string(part) != "<Types/>" {
		t.Errorf("untouched part not preserved: %q", part)
	}
}
