package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/atomlabs/atom/journal"
	"github.com/atomlabs/atom/ledger"
	"github.com/atomlabs/atom/pkg/id"
)

// Options annotate every trade materialized from an import batch.
type Options struct {
	Tags  []string
	Notes string
}

// Result of one reconciliation batch.
type Result struct {
	// Closed trades, one per realized P/L event, in fill order.
	Closed []journal.Trade
	// Open trades for positions still held when the batch ended.
	Open []journal.Trade
	// Fills applied.
	Fills int
}

// Reconcile feeds fills through a fresh position ledger and
// materializes journal trades: every realization becomes a closed
// trade carrying the weighted-average entry, and whatever positions
// remain at the end become open trades.
//
// One ledger per batch; an invalid fill aborts the whole run so a
// partially applied export never reaches the journal.
func Reconcile(fills []ledger.Fill, opts Options) (Result, error) {
	l := ledger.New()
	openedAt := make(map[string]time.Time)

	var res Result
	for i, f := range fills {
		if l.Position(f.Symbol).Flat() {
			openedAt[f.Symbol] = f.Time
		}

		wasLong := l.Position(f.Symbol).Qty.IsPositive()

		r, err := l.Apply(f)
		if err != nil {
			return Result{}, fmt.Errorf("fill %d (%s): %w", i+1, f.Symbol, err)
		}
		res.Fills++

		if r == nil {
			continue
		}

		dir := journal.Short
		if wasLong {
			dir = journal.Long
		}

		entryAt := openedAt[f.Symbol]
		if entryAt.IsZero() {
			entryAt = f.Time
		}
		exitAt := f.Time
		pnl := r.PnL
		exitPrice := r.ExitPrice

		res.Closed = append(res.Closed, journal.Trade{
			ID:         id.New(),
			Symbol:     f.Symbol,
			Direction:  dir,
			EntryPrice: r.EntryAvg,
			Quantity:   r.Quantity,
			EntryAt:    entryAt,
			ExitPrice:  &exitPrice,
			ExitAt:     &exitAt,
			PnL:        &pnl,
			Tags:       opts.Tags,
			Notes:      opts.Notes,
		})

		if r.Flipped {
			openedAt[f.Symbol] = f.Time
		}
	}

	syms := l.Symbols()
	sort.Strings(syms)
	for _, sym := range syms {
		pos := l.Position(sym)
		if pos.Flat() {
			continue
		}

		dir := journal.Long
		if pos.Qty.IsNegative() {
			dir = journal.Short
		}
		res.Open = append(res.Open, journal.Trade{
			ID:         id.New(),
			Symbol:     sym,
			Direction:  dir,
			EntryPrice: pos.AvgPrice,
			Quantity:   pos.Qty.Abs(),
			EntryAt:    openedAt[sym],
			Tags:       opts.Tags,
			Notes:      opts.Notes,
		})
	}

	return res, nil
}
