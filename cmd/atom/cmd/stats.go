package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomlabs/atom/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute performance statistics over closed trades",
	Long: `Compute performance statistics over every closed trade.

The report covers Optimal f position sizing, System Quality Number,
the runs-test Z-score for streak dependency, MAE/MFE excursion
analysis, profit factor, R expectancy, recovery factor, the equity
curve and per-tag breakdowns.

Examples:
  atom stats
  atom stats --json > report.json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit the report as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListClosedTrades()
	if err != nil {
		return fmt.Errorf("list closed trades: %w", err)
	}

	rep := stats.Compute(trades)

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	stats.PrintReport(os.Stdout, rep)
	return nil
}
