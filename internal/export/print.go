package export

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/doctype"
	"github.com/almayssan/formsgen/internal/ledger"
	"github.com/almayssan/formsgen/pkg/utils"
)

// ToPDFAndPrint renders the template export to a temporary .docx, converts
// it to PDF with the configured external converter and hands the PDF to the
// OS print command. The populated PDF path is returned so callers can keep
// or show it. Both steps depend on host tooling (LibreOffice and a print
// spooler by default).
func ToPDFAndPrint(t doctype.Type, header clientcache.HeaderRecord, items []ledger.LineItem, templatePath, converter, printCmd string) (string, error) {
	workDir, err := os.MkdirTemp("", "formsgen-print-")
	if err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}

	docxPath := utils.TempFileName(workDir, strings.ToLower(t.NumberPrefix()), ".docx")
	if err := ToTemplate(t, header, items, templatePath, docxPath); err != nil {
		return "", err
	}

	pdfPath, err := convertToPDF(converter, docxPath, workDir)
	if err != nil {
		return "", err
	}

	if out, err := exec.Command(printCmd, pdfPath).CombinedOutput(); err != nil {
		return pdfPath, fmt.Errorf("print command %s failed: %v: %s", printCmd, err, strings.TrimSpace(string(out)))
	}
	return pdfPath, nil
}

func convertToPDF(converter, docxPath, outDir string) (string, error) {
	cmd := exec.Command(converter, "--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdf conversion failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if !utils.FileExists(pdfPath) {
		return "", fmt.Errorf("pdf conversion produced no output at %s", pdfPath)
	}
	return pdfPath, nil
}
