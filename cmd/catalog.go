package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List reference categories and similarity methods",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME")
	for _, category := range cfg.Catalog.Categories {
		fmt.Fprintf(w, "%s\t%s\n", category.ID, category.Name)
	}
	fmt.Fprintln(w, "\t")
	fmt.Fprintln(w, "METHOD\tNAME")
	for _, method := range cfg.Catalog.Methods {
		fmt.Fprintf(w, "%s\t%s\n", method.ID, method.Name)
	}
	fmt.Fprintf(w, "%s\t%s\n", config.CompareAll, "Run all methods at once")
	return w.Flush()
}
