package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almayssan/formsgen/internal/clientcache"
	"github.com/almayssan/formsgen/internal/config"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Query the client info log",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the distinct customers in the log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		store := clientcache.NewStore(cfg.ClientLog)
		customers := store.UniqueCustomers()
		if len(customers) == 0 {
			fmt.Println("No customers on record.")
			return nil
		}
		for _, c := range customers {
			fmt.Println(c)
		}
		return nil
	},
}

var clientsFindCmd = &cobra.Command{
	Use:   "find <customer>",
	Short: "Show all header records for one customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		store := clientcache.NewStore(cfg.ClientLog)
		records := store.FindByCustomer(args[0])
		if len(records) == 0 {
			fmt.Printf("No records for customer %q.\n", args[0])
			return nil
		}

		for _, r := range records {
			fmt.Printf("%-14s %-12s %-30s %s\n", r.DocumentNo, r.Date, r.Project, r.Subject)
		}
		fmt.Printf("%d record(s)\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsFindCmd)
}
