package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fill(sym string, dir Direction, qty, price string) Fill {
	return Fill{
		Symbol:    sym,
		Direction: dir,
		Quantity:  d(qty),
		Price:     d(price),
		Time:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestApplyOpensLong(t *testing.T) {
	t.Parallel()

	l := New()
	r, err := l.Apply(fill("AAPL", Buy, "10", "100"))
	require.NoError(t, err)
	assert.Nil(t, r)

	pos := l.Position("AAPL")
	assert.True(t, pos.Qty.Equal(d("10")))
	assert.True(t, pos.AvgPrice.Equal(d("100")))
}

func TestApplyOpensShort(t *testing.T) {
	t.Parallel()

	l := New()
	r, err := l.Apply(fill("AAPL", Sell, "4", "250"))
	require.NoError(t, err)
	assert.Nil(t, r)

	pos := l.Position("AAPL")
	assert.True(t, pos.Qty.Equal(d("-4")))
	assert.True(t, pos.AvgPrice.Equal(d("250")))
}

func TestApplyAccumulatesWeightedAverage(t *testing.T) {
	t.Parallel()

	l := New()
	_, err := l.Apply(fill("BTC", Buy, "1", "100"))
	require.NoError(t, err)
	r, err := l.Apply(fill("BTC", Buy, "3", "120"))
	require.NoError(t, err)
	assert.Nil(t, r)

	// (1*100 + 3*120) / 4 = 115
	pos := l.Position("BTC")
	assert.True(t, pos.Qty.Equal(d("4")))
	assert.True(t, pos.AvgPrice.Equal(d("115")), "avg was %s", pos.AvgPrice)
}

func TestApplyPartialClose(t *testing.T) {
	t.Parallel()

	l := New()
	_, err := l.Apply(fill("EURUSD", Buy, "10", "100"))
	require.NoError(t, err)

	r, err := l.Apply(fill("EURUSD", Sell, "4", "110"))
	require.NoError(t, err)
	require.NotNil(t, r)

	// (110-100)*4 = 40 on the closed portion, avg unchanged.
	assert.True(t, r.PnL.Equal(d("40")), "pnl was %s", r.PnL)
	assert.True(t, r.Quantity.Equal(d("4")))
	assert.False(t, r.Flipped)

	pos := l.Position("EURUSD")
	assert.True(t, pos.Qty.Equal(d("6")))
	assert.True(t, pos.AvgPrice.Equal(d("100")))
}

func TestApplyFullCloseGoesFlat(t *testing.T) {
	t.Parallel()

	l := New()
	_, err := l.Apply(fill("TSLA", Buy, "5", "200"))
	require.NoError(t, err)

	r, err := l.Apply(fill("TSLA", Sell, "5", "190"))
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.True(t, r.PnL.Equal(d("-50")))

	pos := l.Position("TSLA")
	assert.True(t, pos.Flat())
	assert.True(t, pos.AvgPrice.IsZero())
}

func TestApplyLongFlipsShort(t *testing.T) {
	t.Parallel()

	l := New()
	_, err := l.Apply(fill("NVDA", Buy, "10", "100"))
	require.NoError(t, err)

	r, err := l.Apply(fill("NVDA", Sell, "15", "110"))
	require.NoError(t, err)
	require.NotNil(t, r)

	// P/L realized on the full existing long only.
	assert.True(t, r.PnL.Equal(d("100")), "pnl was %s", r.PnL)
	assert.True(t, r.Quantity.Equal(d("10")))
	assert.True(t, r.Flipped)

	// Excess 5 opens a short at the fill price.
	pos := l.Position("NVDA")
	assert.True(t, pos.Qty.Equal(d("-5")))
	assert.True(t, pos.AvgPrice.Equal(d("110")))
}

func TestApplyShortCoverAndFlip(t *testing.T) {
	t.Parallel()

	l := New()
	_, err := l.Apply(fill("SI", Sell, "8", "50"))
	require.NoError(t, err)

	// Partial cover: (50-45)*3 = 15
	r, err := l.Apply(fill("SI", Buy, "3", "45"))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.PnL.Equal(d("15")))
	assert.True(t, l.Position("SI").Qty.Equal(d("-5")))
	assert.True(t, l.Position("SI").AvgPrice.Equal(d("50")))

	// Cover through flat: realize on remaining 5, flip long 2 at 55.
	r, err = l.Apply(fill("SI", Buy, "7", "55"))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.PnL.Equal(d("-25")), "pnl was %s", r.PnL)
	assert.True(t, r.Flipped)

	pos := l.Position("SI")
	assert.True(t, pos.Qty.Equal(d("2")))
	assert.True(t, pos.AvgPrice.Equal(d("55")))
}

func TestApplyShortAccumulates(t *testing.T) {
	t.Parallel()

	l := New()
	_, err := l.Apply(fill("GC", Sell, "2", "90"))
	require.NoError(t, err)
	r, err := l.Apply(fill("GC", Sell, "2", "110"))
	require.NoError(t, err)
	assert.Nil(t, r)

	pos := l.Position("GC")
	assert.True(t, pos.Qty.Equal(d("-4")))
	assert.True(t, pos.AvgPrice.Equal(d("100")))
}

func TestApplyRejectsInvalidFills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Fill
	}{
		{"zero quantity", fill("AAPL", Buy, "0", "100")},
		{"negative quantity", fill("AAPL", Buy, "-1", "100")},
		{"zero price", fill("AAPL", Buy, "1", "0")},
		{"negative price", fill("AAPL", Sell, "1", "-5")},
		{"unknown direction", fill("AAPL", Direction("hold"), "1", "100")},
		{"empty symbol", fill("", Buy, "1", "100")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := New()
			r, err := l.Apply(tt.f)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, ErrInvalidFill)
		})
	}
}

func TestApplyKeepsSymbolsIndependent(t *testing.T) {
	t.Parallel()

	l := New()
	_, err := l.Apply(fill("AAPL", Buy, "10", "100"))
	require.NoError(t, err)
	_, err = l.Apply(fill("TSLA", Sell, "2", "200"))
	require.NoError(t, err)

	assert.True(t, l.Position("AAPL").Qty.Equal(d("10")))
	assert.True(t, l.Position("TSLA").Qty.Equal(d("-2")))
	assert.ElementsMatch(t, []string{"AAPL", "TSLA"}, l.Symbols())
}

func TestDecimalAveragesStayExact(t *testing.T) {
	t.Parallel()

	// Repeated adds at prices that would drift under float64.
	l := New()
	for i := 0; i < 100; i++ {
		_, err := l.Apply(fill("X", Buy, "0.1", "0.3"))
		require.NoError(t, err)
	}

	pos := l.Position("X")
	assert.True(t, pos.Qty.Equal(d("10")), "qty was %s", pos.Qty)
	assert.True(t, pos.AvgPrice.Equal(d("0.3")), "avg was %s", pos.AvgPrice)

	r, err := l.Apply(fill("X", Sell, "10", "0.4"))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.PnL.Equal(d("1")), "pnl was %s", r.PnL)
	assert.True(t, l.Position("X").Flat())
}
