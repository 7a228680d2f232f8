package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almayssan/formsgen/internal/catalog"
	"github.com/almayssan/formsgen/internal/config"
	"github.com/almayssan/formsgen/internal/currency"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the cached product catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Load a product list and write the local cache",
	Long: `Import validates the spreadsheet (Part Number and Description columns are
required), loads all products and rewrites the local JSON cache so later
runs skip the spreadsheet step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if err := catalog.Validate(args[0]); err != nil {
			return fmt.Errorf("catalog file is not usable: %w", err)
		}

		cat := catalog.Load(args[0], cfg.CacheFile)
		fmt.Printf("Imported %d product(s); cache written to %s\n", cat.Len(), cfg.CacheFile)
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search part numbers and descriptions",
	Long: `Search matches the query as a case-insensitive substring of the part
number or description. Without a query the full catalog is listed in its
original order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		cat := catalog.Load(cfg.CatalogFile, cfg.CacheFile)
		matches := cat.Search(query)
		if len(matches) == 0 {
			fmt.Println("No matching products.")
			return nil
		}

		for _, p := range matches {
			fmt.Printf("%-15s %-40s %-20s %12s %10s kg\n",
				p.PartNumber, p.Description, p.Supplier,
				currency.Format(p.UnitPrice, cfg.Currency), p.Weight.StringFixed(3))
		}
		fmt.Printf("%d product(s)\n", len(matches))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
}
