package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/almayssan/formsgen/internal/catalog"
	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/config"
	"github.com/almayssan/formsgen/internal/currency"
	"github.com/almayssan/formsgen/internal/doctype"
	"github.com/almayssan/formsgen/internal/export"
	"github.com/almayssan/formsgen/internal/forms"
	"github.com/almayssan/formsgen/pkg/utils"
)

var (
	formPath      string
	xlsxOut       string
	docxOut       string
	printDoc      bool
	forceWrite    bool
	displayCurr   string
	useLiveRate   bool
	skipClientLog bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <delivery-note|dispatch-note|material-list>",
	Short: "Generate a document from a form file",
	Long: `Generate runs the full pipeline for one document: load the catalog,
build the ledger from the form file's items, number the document from the
client log, substitute the header fields into the document template, and
write the requested outputs.

Without --xlsx, --docx or --print, a .docx is written to the exports
directory under the document's default name. The header record is appended
to the client log after a successful export (duplicates are skipped).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&formPath, "form", "", "Path to the YAML form file (required)")
	generateCmd.Flags().StringVar(&xlsxOut, "xlsx", "", "Write a spreadsheet export to this path")
	generateCmd.Flags().StringVar(&docxOut, "docx", "", "Write a populated template to this path")
	generateCmd.Flags().BoolVar(&printDoc, "print", false, "Convert to PDF and send to the system printer")
	generateCmd.Flags().BoolVar(&forceWrite, "force", false, "Overwrite existing output files without asking")
	generateCmd.Flags().StringVar(&displayCurr, "currency", "", "Display currency for prices (default from config)")
	generateCmd.Flags().BoolVar(&useLiveRate, "live-rate", false, "Fetch a live exchange rate (falls back to the static rate)")
	generateCmd.Flags().BoolVar(&skipClientLog, "no-log", false, "Do not append the header record to the client log")
	generateCmd.MarkFlagRequired("form")
}

func runGenerate(typeName string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	dt, err := doctype.ForName(typeName)
	if err != nil {
		return err
	}

	form, err := forms.Load(formPath)
	if err != nil {
		return err
	}

	cat := catalog.Load(cfg.CatalogFile, cfg.CacheFile)
	led, err := form.BuildLedger(cat)
	if err != nil {
		return err
	}

	store := clientcache.NewStore(cfg.ClientLog)
	header := form.HeaderRecord()
	if header.DocumentNo == "" {
		header.DocumentNo = store.NextDocumentNumber(dt.NumberPrefix(), time.Now())
	}
	autofill(&header, store)

	rates, err := cfg.Rates()
	if err != nil {
		return err
	}
	conv := currency.NewWithRates(rates, os.Getenv(currency.EnvAPIKey))

	target := displayCurr
	if target == "" {
		target = cfg.Currency
	}
	if !strings.EqualFold(target, currency.BaseCurrency) {
		rate, err := conv.Rate(target, useLiveRate)
		if err != nil {
			return err
		}
		led.Reprice(strings.ToUpper(target), rate)
	}

	items := led.Items()
	fmt.Printf("%s %s for %s: %d item(s)\n", dt.Title(), header.DocumentNo, header.Customer, len(items))

	if xlsxOut != "" {
		if err := export.ToSpreadsheet(dt, header, items, xlsxOut, forceWrite); err != nil {
			return err
		}
		fmt.Printf("  spreadsheet: %s\n", xlsxOut)
	}

	docxPath := docxOut
	if docxPath == "" && xlsxOut == "" && !printDoc {
		docxPath = filepath.Join(cfg.ExportsDir, dt.OutputBaseName(header, time.Now())+".docx")
	}
	if docxPath != "" {
		if !forceWrite && utils.FileExists(docxPath) {
			return fmt.Errorf("%w: %s (use --force to overwrite)", export.ErrExists, docxPath)
		}
		template := export.TemplatePath(dt, cfg.TemplatesDir)
		if err := export.ToTemplate(dt, header, items, template, docxPath); err != nil {
			return err
		}
		fmt.Printf("  document:    %s\n", docxPath)
	}

	if printDoc {
		template := export.TemplatePath(dt, cfg.TemplatesDir)
		pdfPath, err := export.ToPDFAndPrint(dt, header, items, template, cfg.PDFConverter, cfg.PrintCommand)
		if err != nil {
			return err
		}
		fmt.Printf("  sent to printer: %s\n", pdfPath)
	}

	backup := filepath.Join(filepath.Dir(cfg.ClientLog), strings.ReplaceAll(dt.Name(), "-", "_")+"_log.xlsx")
	if err := export.AppendBackup(dt, header, items, backup); err != nil {
		fmt.Fprintf(os.Stderr, "warning: backup log not updated: %v\n", err)
	}

	if !skipClientLog {
		added, err := store.AppendIfNew(header)
		if err != nil {
			return fmt.Errorf("update client log: %w", err)
		}
		if added {
			fmt.Printf("  client log:  recorded %s / %s / %s\n", header.Customer, header.Project, header.DocumentNo)
		}
	}
	return nil
}

// autofill fills empty header fields from the customer's most recent record,
// the way the windows autofilled a returning client.
func autofill(header *clientcache.HeaderRecord, store *clientcache.Store) {
	records := store.FindByCustomer(header.Customer)
	if len(records) == 0 {
		return
	}
	last := records[len(records)-1]

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&header.Project, last.Project)
	fill(&header.Address, last.Address)
	fill(&header.Phone, last.Phone)
	fill(&header.Incharge, last.Incharge)
	fill(&header.ContactNum, last.ContactNum)
	fill(&header.CustomerPO, last.CustomerPO)
	fill(&header.Quotation, last.Quotation)
}
