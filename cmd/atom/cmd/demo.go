package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/atomlabs/atom/ai"
	"github.com/atomlabs/atom/journal"
	"github.com/atomlabs/atom/pkg/id"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Seed the journal with sample trades",
	Long: `Seed the journal with a month of sample trades.

Generates a mix of winning and losing trades across a handful of
symbols, with stops, targets, MAE/MFE excursions, tags and advisor
reviews, so every other command has something to chew on.

Examples:
  atom demo
  atom demo --count 30 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var (
	demoCount int
	demoSeed  int64
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&demoCount, "count", 15, "number of sample trades")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 1, "random seed")
}

var (
	demoSymbols = []string{"BTC/USDT", "ETH/USDT", "SOL/USDT", "AAPL", "TSLA", "NVDA"}
	demoSetups  = []string{"Breakout", "Mean Reversion", "Trend Following", "Scalp"}
	demoTags    = []string{"fomo", "trend", "news", "reversal", "tilt", "disciplined"}
)

func runDemo(cmd *cobra.Command, args []string) error {
	j, _, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rng := rand.New(rand.NewSource(demoSeed))
	start := time.Now().UTC().AddDate(0, 0, -30)

	var wins int
	for i := 0; i < demoCount; i++ {
		t := sampleDemoTrade(rng, start, i)
		if t.PnL.IsPositive() {
			wins++
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
		t.AIAnalysis, _ = json.Marshal(review)

		if err := j.InsertTrade(t); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.ID, err)
		}
	}

	fmt.Printf("✓ Seeded %d sample trades (%d wins, %d losses)\n", demoCount, wins, demoCount-wins)
	fmt.Println("  Try: atom trades list, atom stats, atom serve")
	return nil
}

// sampleDemoTrade generates one plausible closed trade. Roughly 60% of
// trades win, longs and shorts are evenly mixed, and MAE/MFE always
// bracket the entry and exit correctly for the direction.
func sampleDemoTrade(rng *rand.Rand, start time.Time, i int) journal.Trade {
	symbol := demoSymbols[rng.Intn(len(demoSymbols))]
	dir := journal.Long
	if rng.Intn(2) == 1 {
		dir = journal.Short
	}

	entry := 100 + rng.Float64()*49900
	qty := 0.1 + rng.Float64()*9.9

	isWin := rng.Float64() > 0.4
	var movePct float64
	if isWin {
		movePct = 0.01 + rng.Float64()*0.04
	} else {
		movePct = -(0.01 + rng.Float64()*0.02)
	}

	var exit, mae, mfe float64
	if dir == journal.Long {
		exit = entry * (1 + movePct)
		mae = entry * (1 - rng.Float64()*0.02)
		mfe = entry * (1 + rng.Float64()*0.06)
		if exit > mfe {
			mfe = exit
		}
	} else {
		exit = entry * (1 - movePct)
		mae = entry * (1 + rng.Float64()*0.02)
		mfe = entry * (1 - rng.Float64()*0.06)
		if exit < mfe {
			mfe = exit
		}
	}

	var stop, take float64
	if dir == journal.Long {
		stop, take = entry*0.95, entry*1.1
	} else {
		stop, take = entry*1.05, entry*0.9
	}

	entryAt := start.AddDate(0, 0, i).Add(time.Duration(rng.Intn(24)) * time.Hour)
	exitAt := entryAt.Add(time.Duration(1+rng.Intn(48)) * time.Hour)

	tags := append([]string(nil), demoTags[rng.Intn(len(demoTags))])
	if rng.Intn(2) == 1 {
		tags = append(tags, demoTags[rng.Intn(len(demoTags))])
	}

	t := journal.Trade{
		ID:         id.New(),
		Symbol:     symbol,
		Direction:  dir,
		EntryPrice: dec(entry),
		Quantity:   dec(qty),
		EntryAt:    entryAt,
		SetupName:  demoSetups[rng.Intn(len(demoSetups))],
		Tags:       tags,
		Notes:      "Sample trade seeded by atom demo",
	}
	t.ExitPrice = decPtr(exit)
	t.ExitAt = &exitAt
	t.StopLoss = decPtr(stop)
	t.TakeProfit = decPtr(take)
	t.RiskAmount = decPtr(500)
	t.MAEPrice = decPtr(mae)
	t.MFEPrice = decPtr(mfe)

	pnl := t.RealizedPnL(*t.ExitPrice)
	t.PnL = &pnl
	return t
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(4)
}

func decPtr(f float64) *decimal.Decimal {
	d := dec(f)
	return &d
}
