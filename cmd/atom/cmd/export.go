package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomlabs/atom/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal as CSV",
	Long: `Export every journaled trade as CSV.

The file round-trips cleanly through spreadsheets: one row per trade,
optional fields left blank, tags joined with ';'.

Examples:
  atom export -o trades.csv
  atom export > trades.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades()
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		out = f
	}

	if err := journal.ExportCSV(out, trades); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	if exportOutput != "" {
		fmt.Printf("✓ Exported %d trades to %s\n", len(trades), exportOutput)
	}
	return nil
}
