package journal

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Direction of a trade.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Trade is one journaled trade. A trade is created open (no exit
// fields) and closed exactly once; after that it is only mutated by
// explicit correction.
//
// Optional fields are pointers: nil means the trader never recorded
// the value.
type Trade struct {
	ID        string
	Symbol    string
	Direction Direction

	EntryPrice decimal.Decimal
	Quantity   decimal.Decimal
	EntryAt    time.Time

	ExitPrice *decimal.Decimal
	ExitAt    *time.Time
	PnL       *decimal.Decimal

	// Risk management as planned at entry.
	StopLoss   *decimal.Decimal
	TakeProfit *decimal.Decimal
	RiskAmount *decimal.Decimal

	// Worst and best price reached while the trade was open.
	MAEPrice *decimal.Decimal
	MFEPrice *decimal.Decimal

	Commission decimal.Decimal

	SetupName  string
	Tags       []string
	Notes      string
	AIAnalysis json.RawMessage
}

// Closed reports whether the trade has a realized result.
func (t Trade) Closed() bool { return t.PnL != nil }

// Risk returns the amount risked on the trade, defaulting to |PnL|
// when the trader never recorded one.
func (t Trade) Risk() decimal.Decimal {
	if t.RiskAmount != nil {
		return *t.RiskAmount
	}
	if t.PnL != nil {
		return t.PnL.Abs()
	}
	return decimal.Zero
}

// RealizedPnL computes the gross P/L for the given exit price under
// the trade's direction. Commission is tracked separately.
func (t Trade) RealizedPnL(exit decimal.Decimal) decimal.Decimal {
	if t.Direction == Short {
		return t.EntryPrice.Sub(exit).Mul(t.Quantity)
	}
	return exit.Sub(t.EntryPrice).Mul(t.Quantity)
}

// SortTime is the timestamp trades are ordered by when building an
// equity curve: exit time, falling back to entry time while open.
func (t Trade) SortTime() time.Time {
	if t.ExitAt != nil {
		return *t.ExitAt
	}
	return t.EntryAt
}
