package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"procure.GO/core/errs"
	catalogService "procure.GO/service/catalog"
)

var (
	importFile   string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "items:import",
	Short: "Import catalog items from CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return errs.IO("open", importFile, err)
		}
		defer f.Close()

		return withApp(func(a *app) error {
			res, err := catalogService.ImportItems(a.items, f, catalogService.ImportOptions{
				Suppliers: a.suppliers,
				DryRun:    importDryRun,
			})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, w := range res.Warnings {
				fmt.Fprintf(out, "  [warn] %s\n", w)
			}
			fmt.Fprintf(out, `
=== Import Report ===
CSV rows:       %d
Created:        %d
Updated:        %d
Skipped:        %d
Mode:           %s
Total time:     %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
				map[bool]string{true: "dry run", false: "write"}[importDryRun],
				res.TotalTime.Round(time.Millisecond))
			return nil
		})
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate rows without writing")
	rootCmd.AddCommand(importCmd)
}
