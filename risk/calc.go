package risk

import "github.com/shopspring/decimal"

// Planned computes the absolute amount lost if the stop is hit:
// |entry - stop| * quantity, in account currency.
func Planned(entry, stop, qty decimal.Decimal) decimal.Decimal {
	return entry.Sub(stop).Abs().Mul(qty)
}

// RR is the reward-to-risk ratio of a planned trade. Zero when the
// stop sits on the entry.
func RR(entry, stop, takeProfit decimal.Decimal) float64 {
	riskDist := entry.Sub(stop).Abs()
	if riskDist.IsZero() {
		return 0
	}
	rr, _ := takeProfit.Sub(entry).Abs().Div(riskDist).Float64()
	return rr
}

// Pct expresses a planned risk amount as a fraction of equity.
func Pct(planned, equity decimal.Decimal) float64 {
	if !equity.IsPositive() {
		return 0
	}
	pct, _ := planned.Div(equity).Float64()
	return pct
}
