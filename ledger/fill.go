package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction of a fill as reported by the broker.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// ErrInvalidFill is returned when a fill cannot be applied to the
// ledger: zero or negative quantity, zero or negative price, or an
// unknown direction.
var ErrInvalidFill = errors.New("invalid fill")

// Fill is one normalized execution from a broker export. Fills must be
// fed to the ledger in chronological order per symbol.
type Fill struct {
	Symbol    string
	Direction Direction
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Time      time.Time
}

func (f Fill) validate() error {
	if f.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidFill)
	}
	if !f.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidFill, f.Quantity)
	}
	if !f.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidFill, f.Price)
	}
	if f.Direction != Buy && f.Direction != Sell {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidFill, f.Direction)
	}
	return nil
}
