package stats

import (
	"github.com/atomlabs/atom/journal"
)

// MAEMFEResult summarizes how far price ran against and in favor of
// trades, relative to the planned stop distance.
type MAEMFEResult struct {
	AvgMAERatio     float64  `json:"avg_mae_ratio"`
	AvgMFERatio     float64  `json:"avg_mfe_ratio"`
	Recommendations []string `json:"recommendations"`
}

// AnalyzeMAEMFE averages MAE and MFE excursion ratios across closed
// trades that carry a stop-loss. A trade qualifies when the distance
// between entry and stop is non-zero; MAE and MFE each contribute only
// when their price was recorded.
func AnalyzeMAEMFE(trades []journal.Trade) MAEMFEResult {
	var maeRatios, mfeRatios []float64

	for _, t := range closedOnly(trades) {
		if t.StopLoss == nil {
			continue
		}
		riskDist := t.EntryPrice.Sub(*t.StopLoss).Abs()
		if riskDist.IsZero() {
			continue
		}

		if t.MAEPrice != nil {
			r, _ := t.EntryPrice.Sub(*t.MAEPrice).Abs().Div(riskDist).Float64()
			maeRatios = append(maeRatios, r)
		}
		if t.MFEPrice != nil {
			r, _ := t.EntryPrice.Sub(*t.MFEPrice).Abs().Div(riskDist).Float64()
			mfeRatios = append(mfeRatios, r)
		}
	}

	if len(maeRatios) == 0 && len(mfeRatios) == 0 {
		return MAEMFEResult{
			Recommendations: []string{"Not enough data: journal stops and excursion prices to unlock MAE/MFE analysis."},
		}
	}

	res := MAEMFEResult{
		AvgMAERatio: mean(maeRatios),
		AvgMFERatio: mean(mfeRatios),
	}

	if len(maeRatios) > 0 {
		switch {
		case res.AvgMAERatio < 0.5:
			res.Recommendations = append(res.Recommendations,
				"Your stop-losses look too wide: average MAE is under 50% of the stop distance.")
		case res.AvgMAERatio > 0.8:
			res.Recommendations = append(res.Recommendations,
				"Your stop-losses look too tight: price often probes near the stop before reversing.")
		}
	}
	if len(mfeRatios) > 0 && res.AvgMFERatio > 3.0 {
		res.Recommendations = append(res.Recommendations,
			"You close trades too early: average MFE runs well past the amount risked.")
	}

	if len(res.Recommendations) == 0 {
		res.Recommendations = []string{"No clear excursion pattern yet; keep trading the plan."}
	}
	return res
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
