package stats

import (
	"math"

	"github.com/atomlabs/atom/journal"
)

// Verdicts for the runs-test Z-score.
const (
	VerdictIndependent = "independent"
	VerdictAlternating = "alternating"
	VerdictClustering  = "clustering"
	VerdictUnknown     = "unknown"
)

// RunsResult is the serial-correlation runs test over the win/loss
// sequence of closed trades.
type RunsResult struct {
	Value        float64 `json:"value"`
	Verdict      string  `json:"verdict"`
	Description  string  `json:"description"`
	Runs         int     `json:"runs"`
	ExpectedRuns float64 `json:"expected_runs"`
	SampleSize   int     `json:"sample_size"`

	// LowConfidence marks samples under 30 non-zero trades; the score
	// is still computed but should be read as a rough diagnostic.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// RunsTest encodes each closed, non-zero-P/L trade as a win or loss in
// chronological order and tests the number of runs against the
// expectation for an independent sequence, with a 0.5 continuity
// correction toward zero.
//
// Samples where the variance term degenerates (all wins, all losses,
// n < 2) return an unknown verdict rather than an error: sparse data
// is not a caller bug.
func RunsTest(trades []journal.Trade) RunsResult {
	var seq []bool
	for _, t := range closedOnly(trades) {
		if t.PnL.IsZero() {
			continue
		}
		seq = append(seq, t.PnL.IsPositive())
	}

	n := len(seq)
	res := RunsResult{SampleSize: n, LowConfidence: n < 30}
	if n < 2 {
		res.Verdict = VerdictUnknown
		res.Description = "not enough non-zero trades for a runs test"
		return res
	}

	var wins, runs int
	runs = 1
	for i, w := range seq {
		if w {
			wins++
		}
		if i > 0 && seq[i] != seq[i-1] {
			runs++
		}
	}
	losses := n - wins
	res.Runs = runs

	if wins == 0 || losses == 0 {
		res.Verdict = VerdictUnknown
		res.Description = "sequence is all wins or all losses; runs test is undefined"
		return res
	}

	wl2 := 2 * float64(wins) * float64(losses)
	nf := float64(n)
	expected := wl2/nf + 1
	res.ExpectedRuns = expected

	variance := wl2 * (wl2 - nf) / (nf * nf * (nf - 1))
	if variance <= 0 {
		res.Verdict = VerdictUnknown
		res.Description = "degenerate variance; runs test is undefined"
		return res
	}

	// Continuity correction of 0.5 toward zero.
	z := float64(runs) - expected
	if z > 0 {
		z -= 0.5
	} else {
		z += 0.5
	}
	z /= math.Sqrt(variance)
	res.Value = z

	switch {
	case z > 1.96:
		res.Verdict = VerdictAlternating
		res.Description = "wins and losses alternate more than chance allows; edge-sizing assumptions erode"
	case z < -1.96:
		res.Verdict = VerdictClustering
		res.Description = "wins and losses come in streaks; dangerous for martingale-style sizing"
	default:
		res.Verdict = VerdictIndependent
		res.Description = "trade outcomes look statistically independent; sizing models are valid"
	}
	if res.LowConfidence {
		res.Description += " (fewer than 30 trades: low confidence)"
	}
	return res
}
