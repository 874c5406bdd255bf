package stats

import (
	"math"

	"github.com/atomlabs/atom/journal"
)

// OptimalFResult reports the Ralph Vince fixed-fraction search.
type OptimalFResult struct {
	OptimalF           float64 `json:"optimal_f"`
	GeometricMean      float64 `json:"geometric_mean"`
	MaxTWR             float64 `json:"max_twr"`
	RecommendedRiskPct float64 `json:"recommended_risk_pct"`
	Message            string  `json:"message,omitempty"`
}

// OptimalF grid-searches the risk fraction f that maximizes Terminal
// Wealth Relative over the trades' R-multiples, normalized by the
// worst loss. Needs at least two closed trades.
//
// Two fallback policies: a sample with no losing trade reports f=0.5
// rather than an error, and candidate factors <= 0 are dropped from
// the TWR product instead of disqualifying that f.
func OptimalF(trades []journal.Trade) OptimalFResult {
	rs := rMultiples(closedOnly(trades))
	if len(rs) < 2 {
		return OptimalFResult{
			Message: "not enough data: optimal f needs at least 2 closed trades",
		}
	}

	worst := rs[0]
	for _, r := range rs[1:] {
		if r < worst {
			worst = r
		}
	}
	if worst >= 0 {
		return OptimalFResult{
			OptimalF:           0.5,
			GeometricMean:      1.0,
			RecommendedRiskPct: 5,
			Message:            "no losing trades in sample: classic optimal f does not apply, actual risk may be excessive",
		}
	}

	twr := func(f float64) float64 {
		prod := 1.0
		for _, r := range rs {
			hpr := 1 + f*(r/-worst)
			if hpr > 0 {
				prod *= hpr
			}
		}
		return prod
	}

	bestF, bestTWR := 0.01, math.Inf(-1)
	for i := 1; i <= 100; i++ {
		f := float64(i) / 100
		if v := twr(f); v > bestTWR {
			bestF, bestTWR = f, v
		}
	}

	return OptimalFResult{
		OptimalF:           bestF,
		GeometricMean:      math.Pow(bestTWR, 1/float64(len(rs))),
		MaxTWR:             bestTWR,
		RecommendedRiskPct: bestF * 10,
	}
}

// rMultiples converts each trade's P/L into a multiple of the amount
// risked. A trade with zero recorded risk contributes R=0 rather than
// dividing by zero.
func rMultiples(trades []journal.Trade) []float64 {
	rs := make([]float64, 0, len(trades))
	for _, t := range trades {
		risk := t.Risk()
		if risk.IsZero() {
			rs = append(rs, 0)
			continue
		}
		r, _ := t.PnL.Div(risk).Float64()
		rs = append(rs, r)
	}
	return rs
}

func closedOnly(trades []journal.Trade) []journal.Trade {
	out := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Closed() {
			out = append(out, t)
		}
	}
	return out
}
