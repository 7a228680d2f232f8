// Package docx performs the two template operations the document exporter
// needs on .docx files: placeholder token substitution and item-table
// population.
//
// A .docx file is a zip of XML parts. Word splits paragraph text into
// formatting runs at arbitrary points, so a literal "{Customer}" in the
// template may be spread across several runs. Substitution therefore works
// per paragraph: all run texts are concatenated, tokens are replaced in the
// joined text, the first run receives the result and the remaining runs are
// cleared. That quirk is contained entirely in this package.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	textPartPattern = regexp.MustCompile(`^word/(document|header\d*|footer\d*)\.xml$`)

	paragraphPattern = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*)?>.*?</w:p>`)
	tablePattern     = regexp.MustCompile(`(?s)<w:tbl(?:\s[^>]*)?>.*?</w:tbl>`)
	rowPattern       = regexp.MustCompile(`(?s)<w:tr(?:\s[^>]*)?>.*?</w:tr>`)
	cellPattern      = regexp.MustCompile(`(?s)<w:tc(?:\s[^>]*)?>.*?</w:tc>`)
	textPattern      = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
)

// Document is an opened .docx package held in memory. Parts that are not
// touched are written back to disk byte for byte.
type Document struct {
	names []string
	parts map[string][]byte
}

// Open reads the .docx package at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	return OpenBytes(data)
}

// OpenBytes reads a .docx package from memory.
func OpenBytes(data []byte) (*Document, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read docx package: %w", err)
	}

	doc := &Document{parts: make(map[string][]byte, len(r.File))}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		doc.names = append(doc.names, f.Name)
		doc.parts[f.Name] = content
	}
	return doc, nil
}

// Save writes the package to path, preserving part order.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range d.names {
		part, err := w.Create(name)
		if err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
		if _, err := part.Write(d.parts[name]); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Part returns the raw XML of a named package part.
func (d *Document) Part(name string) ([]byte, bool) {
	p, ok := d.parts[name]
	return p, ok
}

// Text returns the plain text of every text-bearing part, for inspection.
func (d *Document) Text() string {
	var b strings.Builder
	for _, name := range d.names {
		if !textPartPattern.MatchString(name) {
			continue
		}
		for _, m := range textPattern.FindAllStringSubmatch(string(d.parts[name]), -1) {
			b.WriteString(unescape(m[1]))
		}
	}
	return b.String()
}

// SubstituteTokens replaces every "{Name}" token from mapping in the
// document body, headers and footers, and returns the number of token
// occurrences replaced. Text that matches no token is left untouched,
// regardless of how the template splits runs.
func (d *Document) SubstituteTokens(mapping map[string]string) int {
	total := 0
	for _, name := range d.names {
		if !textPartPattern.MatchString(name) {
			continue
		}
		replaced := paragraphPattern.ReplaceAllStringFunc(string(d.parts[name]), func(p string) string {
			out, n := substituteInParagraph(p, mapping)
			total += n
			return out
		})
		d.parts[name] = []byte(replaced)
	}
	return total
}

// substituteInParagraph joins the paragraph's run texts, replaces tokens in
// the joined text, then puts the result in the first run and clears the
// rest. Paragraphs without tokens are returned unchanged.
func substituteInParagraph(paragraph string, mapping map[string]string) (string, int) {
	locs := textPattern.FindAllStringSubmatchIndex(paragraph, -1)
	if len(locs) == 0 {
		return paragraph, 0
	}

	var joined strings.Builder
	for _, loc := range locs {
		joined.WriteString(unescape(paragraph[loc[2]:loc[3]]))
	}
	full := joined.String()

	count := 0
	replaced := full
	for name, value := range mapping {
		token := "{" + name + "}"
		if n := strings.Count(replaced, token); n > 0 {
			count += n
			replaced = strings.ReplaceAll(replaced, token, value)
		}
	}
	if count == 0 {
		return paragraph, 0
	}

	var b strings.Builder
	prev := 0
	for i, loc := range locs {
		b.WriteString(paragraph[prev:loc[0]])
		if i == 0 {
			b.WriteString(`<w:t xml:space="preserve">` + escape(replaced) + `</w:t>`)
		} else {
			b.WriteString(`<w:t></w:t>`)
		}
		prev = loc[1]
	}
	b.WriteString(paragraph[prev:])
	return b.String(), count
}

// PopulateTable finds the item table in the document body — the first table
// whose header row contains every label in signature (case-insensitive) —
// deletes all body rows after the header row, and appends one row per entry
// in rows. It fails when no table matches.
func (d *Document) PopulateTable(signature []string, rows [][]string) error {
	const bodyPart = "word/document.xml"
	body, ok := d.parts[bodyPart]
	if !ok {
		return fmt.Errorf("document has no %s part", bodyPart)
	}

	found := false
	replaced := tablePattern.ReplaceAllStringFunc(string(body), func(table string) string {
		if found || !matchesSignature(table, signature) {
			return table
		}
		found = true
		return rebuildTable(table, rows)
	})
	if !found {
		return fmt.Errorf("could not find the item table in the document template")
	}

	d.parts[bodyPart] = []byte(replaced)
	return nil
}

// matchesSignature checks the first row's cell texts against the expected
// header labels.
func matchesSignature(table string, signature []string) bool {
	first := rowPattern.FindString(table)
	if first == "" {
		return false
	}

	var headers []string
	for _, cell := range cellPattern.FindAllString(first, -1) {
		var text strings.Builder
		for _, m := range textPattern.FindAllStringSubmatch(cell, -1) {
			text.WriteString(unescape(m[1]))
		}
		headers = append(headers, strings.ToLower(strings.TrimSpace(text.String())))
	}

	for _, want := range signature {
		if !containsHeader(headers, strings.ToLower(want)) {
			return false
		}
	}
	return true
}

func containsHeader(headers []string, want string) bool {
	for _, h := range headers {
		if h == want {
			return true
		}
	}
	return false
}

// rebuildTable keeps everything through the header row, drops the remaining
// rows and appends freshly built rows before the table close.
func rebuildTable(table string, rows [][]string) string {
	firstRow := rowPattern.FindStringIndex(table)
	if firstRow == nil {
		return table
	}

	const closeTag = "</w:tbl>"
	var b strings.Builder
	b.WriteString(table[:firstRow[1]])
	for _, row := range rows {
		b.WriteString(buildRow(row))
	}
	b.WriteString(closeTag)
	return b.String()
}

func buildRow(cells []string) string {
	var b strings.Builder
	b.WriteString("<w:tr>")
	for _, cell := range cells {
		b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr>`)
		b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		b.WriteString(escape(cell))
		b.WriteString(`</w:t></w:r></w:p></w:tc>`)
	}
	b.WriteString("</w:tr>")
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}
