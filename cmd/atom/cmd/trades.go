package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/atomlabs/atom/ai"
	"github.com/atomlabs/atom/journal"
	"github.com/atomlabs/atom/pkg/id"
	"github.com/atomlabs/atom/risk"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Record and inspect journaled trades",
	Long: `Record and inspect journaled trades.

Subcommands:
  list   - List all trades
  show   - Show one trade in full
  add    - Record a new open trade
  close  - Close an open trade and compute its P/L

Examples:
  atom trades add --symbol BTC/USDT --direction long --entry 42000.5 --qty 0.25 --stop 41000
  atom trades close <trade-id> --exit 44000 --mae 41500 --mfe 44800
  atom trades list`,
}

var tradesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trades",
	Args:  cobra.NoArgs,
	RunE:  runTradesList,
}

var tradesShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesShow,
}

var tradesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new open trade",
	Args:  cobra.NoArgs,
	RunE:  runTradesAdd,
}

var tradesCloseCmd = &cobra.Command{
	Use:   "close <trade-id>",
	Short: "Close an open trade and compute its P/L",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesClose,
}

var (
	addSymbol    string
	addDirection string
	addEntry     string
	addQty       string
	addStop      string
	addTake      string
	addRisk      string
	addSetup     string
	addTags      []string
	addNotes     string

	closeExit string
	closeMAE  string
	closeMFE  string
	closeAt   string
)

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.AddCommand(tradesListCmd)
	tradesCmd.AddCommand(tradesShowCmd)
	tradesCmd.AddCommand(tradesAddCmd)
	tradesCmd.AddCommand(tradesCloseCmd)

	f := tradesAddCmd.Flags()
	f.StringVar(&addSymbol, "symbol", "", "instrument symbol (required)")
	f.StringVar(&addDirection, "direction", "long", "long or short")
	f.StringVar(&addEntry, "entry", "", "entry price (required)")
	f.StringVar(&addQty, "qty", "", "quantity (required)")
	f.StringVar(&addStop, "stop", "", "stop-loss price")
	f.StringVar(&addTake, "take", "", "take-profit price")
	f.StringVar(&addRisk, "risk", "", "amount risked (defaults from the stop)")
	f.StringVar(&addSetup, "setup", "", "setup name")
	f.StringSliceVar(&addTags, "tags", nil, "tags")
	f.StringVar(&addNotes, "notes", "", "free-text notes")
	tradesAddCmd.MarkFlagRequired("symbol")
	tradesAddCmd.MarkFlagRequired("entry")
	tradesAddCmd.MarkFlagRequired("qty")

	cf := tradesCloseCmd.Flags()
	cf.StringVar(&closeExit, "exit", "", "exit price (required)")
	cf.StringVar(&closeMAE, "mae", "", "worst price reached while open")
	cf.StringVar(&closeMFE, "mfe", "", "best price reached while open")
	cf.StringVar(&closeAt, "at", "", "exit time, RFC3339 (default now)")
	tradesCloseCmd.MarkFlagRequired("exit")
}

func runTradesList(cmd *cobra.Command, args []string) error {
	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades()
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYMBOL\tDIR\tQTY\tENTRY\tEXIT\tPNL\tTAGS")
	for _, t := range trades {
		exit, pnl := "-", "open"
		if t.ExitPrice != nil {
			exit = t.ExitPrice.String()
		}
		if t.PnL != nil {
			pnl = t.PnL.StringFixed(2)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Symbol, t.Direction, t.Quantity, t.EntryPrice,
			exit, pnl, strings.Join(t.Tags, ","))
	}
	return w.Flush()
}

func runTradesShow(cmd *cobra.Command, args []string) error {
	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.GetTrade(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Trade:      %s\n", t.ID)
	fmt.Printf("Symbol:     %s (%s)\n", t.Symbol, t.Direction)
	fmt.Printf("Entry:      %s x %s at %s\n", t.EntryPrice, t.Quantity, t.EntryAt.Format(time.RFC3339))
	if t.ExitPrice != nil && t.ExitAt != nil {
		fmt.Printf("Exit:       %s at %s\n", t.ExitPrice, t.ExitAt.Format(time.RFC3339))
	}
	if t.PnL != nil {
		fmt.Printf("P/L:        %s\n", t.PnL.StringFixed(2))
	}
	if t.StopLoss != nil {
		fmt.Printf("Stop:       %s\n", t.StopLoss)
	}
	if t.TakeProfit != nil {
		fmt.Printf("Target:     %s\n", t.TakeProfit)
		if t.StopLoss != nil {
			fmt.Printf("Planned RR: %.2f\n", risk.RR(t.EntryPrice, *t.StopLoss, *t.TakeProfit))
		}
	}
	fmt.Printf("Risk:       %s\n", t.Risk().StringFixed(2))
	if t.MAEPrice != nil {
		fmt.Printf("MAE:        %s\n", t.MAEPrice)
	}
	if t.MFEPrice != nil {
		fmt.Printf("MFE:        %s\n", t.MFEPrice)
	}
	if t.SetupName != "" {
		fmt.Printf("Setup:      %s\n", t.SetupName)
	}
	if len(t.Tags) > 0 {
		fmt.Printf("Tags:       %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Notes != "" {
		fmt.Printf("Notes:      %s\n", t.Notes)
	}
	if len(t.AIAnalysis) > 0 {
		var rev ai.Review
		if err := json.Unmarshal(t.AIAnalysis, &rev); err == nil {
			fmt.Printf("Review:     %s (score %d)\n", rev.Verdict, rev.Score)
			fmt.Printf("            %s\n", rev.Advice)
		}
	}
	return nil
}

func runTradesAdd(cmd *cobra.Command, args []string) error {
	dir := journal.Direction(strings.ToLower(addDirection))
	if dir != journal.Long && dir != journal.Short {
		return fmt.Errorf("direction must be %q or %q", journal.Long, journal.Short)
	}

	entry, err := decimal.NewFromString(addEntry)
	if err != nil {
		return fmt.Errorf("entry price: %w", err)
	}
	qty, err := decimal.NewFromString(addQty)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if !entry.IsPositive() || !qty.IsPositive() {
		return fmt.Errorf("entry price and quantity must be positive")
	}

	t := journal.Trade{
		ID:         id.New(),
		Symbol:     strings.ToUpper(addSymbol),
		Direction:  dir,
		EntryPrice: entry,
		Quantity:   qty,
		EntryAt:    time.Now().UTC(),
		SetupName:  addSetup,
		Tags:       addTags,
		Notes:      addNotes,
	}
	if t.StopLoss, err = optFlag(addStop, "stop"); err != nil {
		return err
	}
	if t.TakeProfit, err = optFlag(addTake, "take"); err != nil {
		return err
	}
	if t.RiskAmount, err = optFlag(addRisk, "risk"); err != nil {
		return err
	}
	if t.RiskAmount == nil && t.StopLoss != nil {
		planned := risk.Planned(t.EntryPrice, *t.StopLoss, t.Quantity)
		t.RiskAmount = &planned
	}

	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.InsertTrade(t); err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}

	fmt.Printf("✓ Recorded %s %s %s x %s (id %s)\n", t.Direction, t.Symbol, t.Quantity, t.EntryPrice, t.ID)
	if t.RiskAmount != nil {
		fmt.Printf("  Risk: %s\n", t.RiskAmount.StringFixed(2))
	}
	return nil
}

func runTradesClose(cmd *cobra.Command, args []string) error {
	exit, err := decimal.NewFromString(closeExit)
	if err != nil {
		return fmt.Errorf("exit price: %w", err)
	}

	req := journal.CloseRequest{ExitPrice: exit, ExitAt: time.Now().UTC()}
	if closeAt != "" {
		at, err := time.Parse(time.RFC3339, closeAt)
		if err != nil {
			return fmt.Errorf("exit time: %w", err)
		}
		req.ExitAt = at
	}
	if req.MAEPrice, err = optFlag(closeMAE, "mae"); err != nil {
		return err
	}
	if req.MFEPrice, err = optFlag(closeMFE, "mfe"); err != nil {
		return err
	}

	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.CloseTrade(args[0], req)
	if err != nil {
		return fmt.Errorf("close trade: %w", err)
	}

	review := ai.MockAdvisor{}.Review(ai.TradeSummary{
		Symbol:    t.Symbol,
		Direction: string(t.Direction),
		PnL:       *t.PnL,
		ExitPrice: t.ExitPrice,
		MAEPrice:  t.MAEPrice,
		MFEPrice:  t.MFEPrice,
		Notes:     t.Notes,
		Tags:      t.Tags,
	})
	if raw, err := json.Marshal(review); err == nil {
		_ = j.SetAIAnalysis(t.ID, raw)
	}

	fmt.Printf("✓ Closed %s at %s\n", t.ID, exit)
	fmt.Printf("  P/L:    %s\n", t.PnL.StringFixed(2))
	fmt.Printf("  Review: %s (score %d) - %s\n", review.Verdict, review.Score, review.Advice)
	return nil
}

func optFlag(value, name string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &d, nil
}
