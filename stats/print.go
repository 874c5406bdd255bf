package stats

import (
	"fmt"
	"io"
)

// PrintReport writes a human-readable rendition of the report.
func PrintReport(w io.Writer, r Report) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Performance Report")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Closed Trades: %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", r.ProfitableTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.WinRate)
	fmt.Fprintf(w, "Total P/L:     %s\n", r.TotalPnL.StringFixed(2))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Position Sizing (Optimal f)")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Optimal f:     %.2f\n", r.OptimalF)
	fmt.Fprintf(w, "AHPR:          %.4f\n", r.AHPR)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "System Quality")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "SQN:           %.2f (%s)\n", r.SQN.Value, r.SQN.Rating)
	fmt.Fprintf(w, "Z-Score:       %.2f (%s)\n", r.ZScore.Value, r.ZScore.Verdict)
	if r.ZScore.Description != "" {
		fmt.Fprintf(w, "               %s\n", r.ZScore.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance Ratios")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Profit Factor:   %.2f\n", r.ProfitFactor)
	fmt.Fprintf(w, "R Expectancy:    %.2f\n", r.RExpectancy)
	fmt.Fprintf(w, "Recovery Factor: %.2f\n", r.RecoveryFactor)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Excursion Analysis (MAE/MFE)")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Avg MAE Ratio: %.2f\n", r.MAEMFE.AvgMAERatio)
	fmt.Fprintf(w, "Avg MFE Ratio: %.2f\n", r.MAEMFE.AvgMFERatio)
	for _, rec := range r.MAEMFE.Recommendations {
		fmt.Fprintf(w, "- %s\n", rec)
	}

	if len(r.TagStats) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tags")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, ts := range r.TagStats {
			fmt.Fprintf(w, "%-16s %10s  %6.2f%% win  (%d trades)\n",
				ts.Tag, ts.PnL.StringFixed(2), ts.WinRate, ts.Count)
		}
	}

	if n := len(r.EquityCurve); n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Final Balance: %s\n", r.EquityCurve[n-1].Balance.StringFixed(2))
	}
}
