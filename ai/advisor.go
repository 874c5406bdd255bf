// Package ai reviews closed trades for behavioral mistakes. The
// advisor is an injected capability: the journal and statistics
// packages never depend on its internals, only on this contract, so
// the mock can be swapped for a real model later.
package ai

import (
	"github.com/shopspring/decimal"
)

// TradeSummary is the flattened view of a closed trade handed to an
// advisor.
type TradeSummary struct {
	Symbol    string
	Direction string
	PnL       decimal.Decimal
	ExitPrice *decimal.Decimal
	MAEPrice  *decimal.Decimal
	MFEPrice  *decimal.Decimal
	Notes     string
	Tags      []string
}

// Review is the advisor's verdict on one trade. Score is 0-100.
type Review struct {
	Verdict  string `json:"verdict"`
	Analysis string `json:"analysis"`
	Advice   string `json:"advice"`
	Score    int    `json:"score"`
}

// Advisor produces a review for a closed trade.
type Advisor interface {
	Review(TradeSummary) Review
}
