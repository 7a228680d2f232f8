// Package config loads the application configuration from a YAML file.
//
// Every setting has a default, and a missing config file is not an error:
// the tool runs entirely on defaults out of the box.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/almayssan/formsgen/internal/currency"
)

// Config holds the global application settings.
type Config struct {
	// CatalogFile is a spreadsheet to load the product catalog from. When
	// empty, the JSON cache (and then the built-in sample set) is used.
	CatalogFile string `yaml:"catalog_file"`

	// CacheFile is the JSON product cache written after a successful
	// catalog import.
	CacheFile string `yaml:"cache_file"`

	// ClientLog is the append-only JSON log of header records shared by
	// all document types.
	ClientLog string `yaml:"client_log"`

	// TemplatesDir holds the .docx document templates.
	TemplatesDir string `yaml:"templates_dir"`

	// ExportsDir is the default destination for generated documents.
	ExportsDir string `yaml:"exports_dir"`

	// Currency is the display currency, one of the static rate table's
	// entries.
	Currency string `yaml:"currency"`

	// StaticRates optionally overrides the built-in conversion table from
	// the base currency.
	StaticRates map[string]string `yaml:"static_rates"`

	// PDFConverter is the external document-to-PDF converter command.
	PDFConverter string `yaml:"pdf_converter"`

	// PrintCommand is the OS print spooler command handed the PDF.
	PrintCommand string `yaml:"print_command"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		CatalogFile:  "",
		CacheFile:    "backup/product_cache.json",
		ClientLog:    "backup/client_info_cache.json",
		TemplatesDir: "assets/templates",
		ExportsDir:   "assets/exports",
		Currency:     currency.BaseCurrency,
		PDFConverter: "soffice",
		PrintCommand: "lp",
	}
}

// Load reads the YAML config at path, filling unset fields with defaults.
// A missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Currency == "" {
		cfg.Currency = currency.BaseCurrency
	}
	return cfg, nil
}

// Rates merges the config's static rate overrides over the built-in table.
func (c *Config) Rates() (map[string]decimal.Decimal, error) {
	rates := currency.StaticRates()
	for code, raw := range c.StaticRates {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("static rate for %s: %w", code, err)
		}
		rates[code] = d
	}
	return rates, nil
}
