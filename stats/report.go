package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atomlabs/atom/journal"
)

// EquityPoint is one step of the running account balance, one per
// closed trade.
type EquityPoint struct {
	Time    time.Time       `json:"timestamp"`
	Balance decimal.Decimal `json:"balance"`
}

// TagStat aggregates results for one (case-insensitive) tag.
type TagStat struct {
	Tag     string          `json:"tag"`
	PnL     decimal.Decimal `json:"pnl"`
	WinRate float64         `json:"win_rate"`
	Count   int             `json:"count"`
}

// Report is the full statistics record handed to the reporting layer.
type Report struct {
	TotalPnL         decimal.Decimal `json:"total_pnl"`
	WinRate          float64         `json:"win_rate"`
	TotalTrades      int             `json:"total_trades"`
	ProfitableTrades int             `json:"profitable_trades"`

	OptimalF       float64    `json:"optimal_f"`
	AHPR           float64    `json:"ahpr"`
	SQN            SQNResult  `json:"sqn"`
	ZScore         RunsResult `json:"z_score"`
	ProfitFactor   float64    `json:"profit_factor"`
	RExpectancy    float64    `json:"r_expectancy"`
	RecoveryFactor float64    `json:"recovery_factor"`

	MAEMFE      MAEMFEResult  `json:"mae_mfe_analysis"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	TagStats    []TagStat     `json:"tag_stats"`
}

// Compute assembles the full report from the journal's trades. Open
// trades are ignored; every metric degrades to a diagnostic value on
// sparse data rather than failing.
func Compute(trades []journal.Trade) Report {
	closed := closedOnly(trades)

	// Chronological close order drives the equity curve and the runs
	// test. Exit time, entry time as the fallback for trades that
	// never recorded one.
	sort.SliceStable(closed, func(i, k int) bool {
		return closed[i].SortTime().Before(closed[k].SortTime())
	})

	rep := Report{
		TotalTrades: len(closed),
		SQN:         SQN(closed),
		ZScore:      RunsTest(closed),
		MAEMFE:      AnalyzeMAEMFE(closed),
		EquityCurve: equityCurve(closed),
		TagStats:    tagStats(closed),
	}

	of := OptimalF(closed)
	rep.OptimalF = of.OptimalF
	rep.AHPR = of.GeometricMean

	var grossProfit, grossLoss decimal.Decimal
	for _, t := range closed {
		rep.TotalPnL = rep.TotalPnL.Add(*t.PnL)
		if t.PnL.IsPositive() {
			rep.ProfitableTrades++
			grossProfit = grossProfit.Add(*t.PnL)
		} else if t.PnL.IsNegative() {
			grossLoss = grossLoss.Add(t.PnL.Abs())
		}
	}
	if len(closed) > 0 {
		rep.WinRate = 100 * float64(rep.ProfitableTrades) / float64(len(closed))
	}
	if grossLoss.IsPositive() {
		rep.ProfitFactor, _ = grossProfit.Div(grossLoss).Float64()
	}

	rep.RExpectancy = mean(rMultiples(closed))

	if dd := maxDrawdown(rep.EquityCurve); dd.IsPositive() {
		rep.RecoveryFactor, _ = rep.TotalPnL.Div(dd).Float64()
	}

	return rep
}

// equityCurve builds the running cumulative P/L, one point per closed
// trade, in the order given. Balances are exact decimal sums so the
// final point equals total P/L to the cent.
func equityCurve(closed []journal.Trade) []EquityPoint {
	curve := make([]EquityPoint, 0, len(closed))
	var balance decimal.Decimal
	for _, t := range closed {
		balance = balance.Add(*t.PnL)
		curve = append(curve, EquityPoint{Time: t.SortTime(), Balance: balance})
	}
	return curve
}

// maxDrawdown is the largest peak-to-trough fall of the curve.
func maxDrawdown(curve []EquityPoint) decimal.Decimal {
	var peak, maxDD decimal.Decimal
	for i, p := range curve {
		if i == 0 || p.Balance.GreaterThan(peak) {
			peak = p.Balance
		}
		if dd := peak.Sub(p.Balance); dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD
}

func tagStats(closed []journal.Trade) []TagStat {
	type acc struct {
		pnl  decimal.Decimal
		wins int
		n    int
	}
	byTag := make(map[string]*acc)

	for _, t := range closed {
		seen := make(map[string]bool, len(t.Tags))
		for _, raw := range t.Tags {
			tag := strings.ToLower(strings.TrimSpace(raw))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true

			a, ok := byTag[tag]
			if !ok {
				a = &acc{}
				byTag[tag] = a
			}
			a.pnl = a.pnl.Add(*t.PnL)
			a.n++
			if t.PnL.IsPositive() {
				a.wins++
			}
		}
	}

	out := make([]TagStat, 0, len(byTag))
	for tag, a := range byTag {
		out = append(out, TagStat{
			Tag:     tag,
			PnL:     a.pnl,
			WinRate: 100 * float64(a.wins) / float64(a.n),
			Count:   a.n,
		})
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].PnL.Equal(out[k].PnL) {
			return out[i].PnL.GreaterThan(out[k].PnL)
		}
		return out[i].Tag < out[k].Tag
	})
	return out
}
