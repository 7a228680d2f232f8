// Package cmd defines the CLI surface: catalog management, client log
// queries and document generation.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cfgFile is the path to the main configuration file, overridable with
// --config.
var cfgFile string

// verbose enables log output for degradation paths that are otherwise
// silent.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "formsgen",
	Short: "Generate delivery notes, dispatch notes and material lists",
	Long: `formsgen builds business documents from a cached product catalog: search
the catalog, assemble line items from a form file, autofill header metadata
from the client log, and export the result as a spreadsheet, a populated
.docx template, or a PDF print job.

Example usage:
  formsgen catalog import price_list.xlsx   # load and cache the catalog
  formsgen catalog search "steel"           # search part numbers and descriptions
  formsgen generate delivery-note --form dn.yaml --docx out.docx`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml",
		"Path to the main configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

// initEnv picks up a .env file when present; the only variable of interest
// is the live exchange-rate API key.
func initEnv() {
	_ = godotenv.Load()
	log.SetFlags(0)
	if !verbose {
		log.SetOutput(io.Discard)
	}
}
