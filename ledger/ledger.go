package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the net state for one symbol. Qty is signed: positive is
// long, negative is short, exactly zero is flat. AvgPrice is the
// weighted-average cost per unit and carries no meaning while flat.
type Position struct {
	Qty      decimal.Decimal
	AvgPrice decimal.Decimal
}

// Flat reports whether the position is closed out.
func (p Position) Flat() bool { return p.Qty.IsZero() }

// Realization is the realized P/L event produced when a fill closes or
// covers part of an existing position. Quantity is the closed portion
// only and is always positive.
type Realization struct {
	Symbol    string
	Quantity  decimal.Decimal
	EntryAvg  decimal.Decimal
	ExitPrice decimal.Decimal
	PnL       decimal.Decimal
	Time      time.Time

	// Flipped is set when the fill was larger than the open position
	// and reversed it through flat.
	Flipped bool
}

// Ledger converts a chronological stream of fills into realized P/L
// events under weighted-average-cost accounting (not FIFO lots).
//
// A ledger is scoped to a single reconciliation batch, one account at
// a time, and is discarded afterwards. It is not safe for concurrent
// use; serialize per account.
type Ledger struct {
	positions map[string]*Position
}

func New() *Ledger {
	return &Ledger{positions: make(map[string]*Position)}
}

// Position returns a copy of the current state for symbol. Unknown
// symbols read as flat.
func (l *Ledger) Position(symbol string) Position {
	if p, ok := l.positions[symbol]; ok {
		return *p
	}
	return Position{}
}

// Symbols returns every symbol the ledger has seen a fill for.
func (l *Ledger) Symbols() []string {
	syms := make([]string, 0, len(l.positions))
	for s := range l.positions {
		syms = append(syms, s)
	}
	return syms
}

// position inserts the zero entry for symbol on first use.
func (l *Ledger) position(symbol string) *Position {
	p, ok := l.positions[symbol]
	if !ok {
		p = &Position{}
		l.positions[symbol] = p
	}
	return p
}

// Apply processes one fill. Fills that open a new position or add to
// an existing one return a nil Realization; only the closing or
// covering portion of a fill realizes P/L.
func (l *Ledger) Apply(f Fill) (*Realization, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	pos := l.position(f.Symbol)

	switch {
	case pos.Qty.IsZero():
		// Flat: any fill opens a fresh position at the fill price.
		if f.Direction == Buy {
			pos.Qty = f.Quantity
		} else {
			pos.Qty = f.Quantity.Neg()
		}
		pos.AvgPrice = f.Price
		return nil, nil

	case pos.Qty.IsPositive():
		if f.Direction == Buy {
			accumulate(pos, f.Quantity, f.Price)
			return nil, nil
		}
		return reduce(pos, f, pos.Qty, false), nil

	default: // short
		if f.Direction == Sell {
			accumulate(pos, f.Quantity, f.Price)
			return nil, nil
		}
		return reduce(pos, f, pos.Qty.Neg(), true), nil
	}
}

// accumulate adds quantity at price to a position on the same side,
// recomputing the weighted-average cost. If the aggregate quantity
// would somehow be zero the position resets flat rather than divide.
func accumulate(pos *Position, qty, price decimal.Decimal) {
	held := pos.Qty.Abs()
	total := held.Add(qty)
	if total.IsZero() {
		pos.Qty = decimal.Zero
		pos.AvgPrice = decimal.Zero
		return
	}
	pos.AvgPrice = held.Mul(pos.AvgPrice).Add(qty.Mul(price)).Div(total)
	if pos.Qty.IsNegative() {
		pos.Qty = total.Neg()
	} else {
		pos.Qty = total
	}
}

// reduce closes part or all of a position, flipping to the opposite
// side when the fill quantity exceeds the open quantity. held is the
// absolute open quantity.
func reduce(pos *Position, f Fill, held decimal.Decimal, short bool) *Realization {
	closed := decimal.Min(f.Quantity, held)

	// Long realizes (exit - avg), short realizes (avg - exit).
	var pnl decimal.Decimal
	if short {
		pnl = pos.AvgPrice.Sub(f.Price).Mul(closed)
	} else {
		pnl = f.Price.Sub(pos.AvgPrice).Mul(closed)
	}

	r := &Realization{
		Symbol:    f.Symbol,
		Quantity:  closed,
		EntryAvg:  pos.AvgPrice,
		ExitPrice: f.Price,
		PnL:       pnl,
		Time:      f.Time,
	}

	excess := f.Quantity.Sub(held)
	switch {
	case excess.IsPositive():
		// Flip: the remainder opens a new position at the fill price.
		r.Flipped = true
		if short {
			pos.Qty = excess
		} else {
			pos.Qty = excess.Neg()
		}
		pos.AvgPrice = f.Price
	default:
		remaining := held.Sub(closed)
		if remaining.IsZero() {
			pos.Qty = decimal.Zero
			pos.AvgPrice = decimal.Zero
		} else if short {
			pos.Qty = remaining.Neg()
		} else {
			pos.Qty = remaining
		}
	}
	return r
}
