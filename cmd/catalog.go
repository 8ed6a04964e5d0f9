package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/waddle/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print the threat catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			cfg.Catalog.Path = file
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		source := "built-in"
		if cfg.Catalog.Path != "" {
			source = cfg.Catalog.Path
		}
		fmt.Fprintf(w, "Catalog: %s\n\n", source)

		fmt.Fprintf(w, "%-4s  %-16s  %-24s  %s\n", "Code", "WADDLE", "STRIDE", "Threats")
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for _, c := range cat.Categories() {
			fmt.Fprintf(w, "%-4s  %-16s  %-24s  %d\n", c.Code, c.Name, c.Stride, countCategory(cat, c.Code))
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "%2s  %-12s  %-16s  %s\n", "#", "Node", "Label", "Eligible threats")
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for _, n := range cat.Nodes() {
			fmt.Fprintf(w, "%2d  %-12s  %-16s  %d\n", n.Ordinal+1, n.ID, n.Label, len(cat.ThreatsFor(n.ID)))
		}

		fmt.Fprintf(w, "\n%d nodes, %d categories, %d threats\n",
			cat.NodeCount(), len(cat.Categories()), len(cat.Threats()))
		return nil
	},
}

func countCategory(cat *catalog.Catalog, code string) int {
	n := 0
	for _, t := range cat.Threats() {
		if t.CategoryCode == code {
			n++
		}
	}
	return n
}

func init() {
	catalogCmd.Flags().String("file", "", "Catalog YAML file to validate (default: configured or built-in)")
}
