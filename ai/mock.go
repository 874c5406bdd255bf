package ai

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MockAdvisor is a rule-based stand-in for a real model. Its three
// verdicts cover the cases a reviewer cares about most: chased
// entries, exits left on the table, and trades that followed the plan.
type MockAdvisor struct{}

var mfeEarlyExitFactor = decimal.NewFromFloat(1.05)

func (MockAdvisor) Review(t TradeSummary) Review {
	if t.PnL.IsNegative() && mentionsFOMO(t) {
		return Review{
			Verdict:  "FOMO Entry",
			Analysis: "You entered on fear of missing the move, without confirmation from your system.",
			Advice:   "Step away for fifteen minutes after a trade like this. The market will still be there.",
			Score:    30,
		}
	}

	if t.PnL.IsPositive() && t.MFEPrice != nil && t.ExitPrice != nil &&
		t.MFEPrice.GreaterThan(t.ExitPrice.Mul(mfeEarlyExitFactor)) {
		return Review{
			Verdict:  "Early Exit",
			Analysis: "Good systematic entry, but you closed well before the move finished; price kept running past your exit.",
			Advice:   "Try moving the stop to breakeven and letting part of the position breathe.",
			Score:    75,
		}
	}

	return Review{
		Verdict:  "Systematic Trade",
		Analysis: "The trade looks disciplined and the risk parameters were respected.",
		Advice:   "Good work. Keep following the checklist.",
		Score:    90,
	}
}

func mentionsFOMO(t TradeSummary) bool {
	if strings.Contains(strings.ToLower(t.Notes), "fomo") {
		return true
	}
	for _, tag := range t.Tags {
		if strings.EqualFold(tag, "fomo") {
			return true
		}
	}
	return false
}
