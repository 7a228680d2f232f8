package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	if cfg.ClientLog != want.ClientLog || cfg.TemplatesDir != want.TemplatesDir {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Currency != "SAR" {
		t.Errorf("default currency = %q, want SAR", cfg.Currency)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
catalog_file: data/products.xlsx
currency: USD
static_rates:
  USD: "0.266"
  AED: "0.98"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CatalogFile != "data/products.xlsx" {
		t.Errorf("catalog_file = %q", cfg.CatalogFile)
	}
	if cfg.Currency != "USD" {
		t.Errorf("currency = %q", cfg.Currency)
	}
	// Unset fields keep their defaults.
	if cfg.PDFConverter != "soffice" {
		t.Errorf("pdf_converter = %q, want default soffice", cfg.PDFConverter)
	}

	rates, err := cfg.Rates()
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	if rates["USD"].String() != "0.266" {
		t.Errorf("USD override = %s", rates["USD"])
	}
	if rates["AED"].String() != "0.98" {
		t.Errorf("AED rate = %s", rates["AED"])
	}
	if rates["SAR"].String() != "1" {
		t.Errorf("base rate missing: %s", rates["SAR"])
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("currency: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRatesRejectsBadOverride(t *testing.T) {
	cfg := Default()
	cfg.StaticRates = map[string]string{"EUR": "not-a-number"}
	if _, err := cfg.Rates(); err == nil {
		t.Fatal("expected error for unparsable rate")
	}
}
