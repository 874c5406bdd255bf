package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atomlabs/atom/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a broker CSV export",
	Long: `Import a broker CSV export into the journal.

Column names are auto-detected (date/symbol/side/price/quantity and
their common broker synonyms). Fills are reconciled through a
weighted-average-cost position ledger: each fill that reduces or flips
a position becomes a closed trade with its realized P/L, and positions
still held at the end of the file are journaled as open trades.

Examples:
  atom import binance-export.csv
  atom import fills.csv --tags swing,imported`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importTags []string

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringSliceVarP(&importTags, "tags", "t", []string{"imported"}, "tags attached to every imported trade")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	fills, skipped, err := importer.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	res, err := importer.Reconcile(fills, importer.Options{
		Tags:  importTags,
		Notes: "Imported from " + filepath.Base(path),
	})
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	for _, t := range res.Closed {
		if err := j.InsertTrade(t); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.ID, err)
		}
	}
	for _, t := range res.Open {
		if err := j.InsertTrade(t); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.ID, err)
		}
	}

	fmt.Printf("✓ Imported %s\n", path)
	fmt.Printf("  Fills applied:  %d (skipped %d rows)\n", res.Fills, skipped)
	fmt.Printf("  Closed trades:  %d\n", len(res.Closed))
	fmt.Printf("  Open positions: %d\n", len(res.Open))
	return nil
}
