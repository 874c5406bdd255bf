package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomlabs/atom/ledger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseCSVBinanceStyle(t *testing.T) {
	t.Parallel()

	data := `Date(UTC),Pair,Side,Price,Executed
2024-03-01 10:00:00,btcusdt,BUY,42000.5,0.5
2024-03-01 11:00:00,btcusdt,SELL,43000,0.5
`
	fills, skipped, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, fills, 2)

	assert.Equal(t, "BTCUSDT", fills[0].Symbol)
	assert.Equal(t, ledger.Buy, fills[0].Direction)
	assert.True(t, fills[0].Price.Equal(d("42000.5")))
	assert.True(t, fills[0].Quantity.Equal(d("0.5")))
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), fills[0].Time)
	assert.Equal(t, ledger.Sell, fills[1].Direction)
}

func TestParseCSVSkipsNonTradeRows(t *testing.T) {
	t.Parallel()

	data := `date,symbol,side,price,qty
2024-03-01 10:00:00,AAPL,buy,100,5
2024-03-01 11:00:00,AAPL,transfer,0,0
garbage-date,AAPL,sell,101,5
2024-03-01 12:00:00,AAPL,sell,not-a-price,5
2024-03-01 13:00:00,AAPL,Sell,102,5
`
	fills, skipped, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, fills, 2)
	assert.Equal(t, ledger.Sell, fills[1].Direction)
}

func TestParseCSVMissingColumns(t *testing.T) {
	t.Parallel()

	data := `date,symbol,price
2024-03-01,AAPL,100
`
	_, _, err := ParseCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not detect required columns")
}

func TestReconcileRoundTrip(t *testing.T) {
	t.Parallel()

	at := func(h int) time.Time {
		return time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC)
	}
	fills := []ledger.Fill{
		{Symbol: "AAPL", Direction: ledger.Buy, Quantity: d("10"), Price: d("100"), Time: at(9)},
		{Symbol: "AAPL", Direction: ledger.Buy, Quantity: d("10"), Price: d("110"), Time: at(10)},
		{Symbol: "AAPL", Direction: ledger.Sell, Quantity: d("20"), Price: d("120"), Time: at(11)},
		{Symbol: "TSLA", Direction: ledger.Sell, Quantity: d("5"), Price: d("200"), Time: at(12)},
	}

	res, err := Reconcile(fills, Options{Tags: []string{"imported"}, Notes: "test batch"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Fills)

	// One realization: 20 shares closed at 120 against avg 105.
	require.Len(t, res.Closed, 1)
	c := res.Closed[0]
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "AAPL", c.Symbol)
	assert.True(t, c.EntryPrice.Equal(d("105")), "entry avg was %s", c.EntryPrice)
	assert.True(t, c.Quantity.Equal(d("20")))
	require.NotNil(t, c.PnL)
	assert.True(t, c.PnL.Equal(d("300")), "pnl was %s", c.PnL)
	assert.Equal(t, at(9), c.EntryAt)
	require.NotNil(t, c.ExitAt)
	assert.Equal(t, at(11), *c.ExitAt)
	assert.Equal(t, []string{"imported"}, c.Tags)
	assert.True(t, c.Closed())

	// TSLA short is still open.
	require.Len(t, res.Open, 1)
	o := res.Open[0]
	assert.Equal(t, "TSLA", o.Symbol)
	assert.Equal(t, "short", string(o.Direction))
	assert.True(t, o.Quantity.Equal(d("5")))
	assert.Equal(t, at(12), o.EntryAt)
	assert.False(t, o.Closed())
}

func TestReconcileFlipOpensNewTrade(t *testing.T) {
	t.Parallel()

	at := func(h int) time.Time {
		return time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC)
	}
	fills := []ledger.Fill{
		{Symbol: "NVDA", Direction: ledger.Buy, Quantity: d("10"), Price: d("100"), Time: at(9)},
		{Symbol: "NVDA", Direction: ledger.Sell, Quantity: d("15"), Price: d("110"), Time: at(10)},
	}

	res, err := Reconcile(fills, Options{})
	require.NoError(t, err)

	require.Len(t, res.Closed, 1)
	assert.True(t, res.Closed[0].PnL.Equal(d("100")))
	assert.Equal(t, "long", string(res.Closed[0].Direction))

	// The flip remainder is an open short dated at the flip fill.
	require.Len(t, res.Open, 1)
	assert.Equal(t, "short", string(res.Open[0].Direction))
	assert.True(t, res.Open[0].Quantity.Equal(d("5")))
	assert.True(t, res.Open[0].EntryPrice.Equal(d("110")))
	assert.Equal(t, at(10), res.Open[0].EntryAt)
}

func TestReconcileAbortsOnInvalidFill(t *testing.T) {
	t.Parallel()

	fills := []ledger.Fill{
		{Symbol: "AAPL", Direction: ledger.Buy, Quantity: d("10"), Price: d("100"), Time: time.Now()},
		{Symbol: "AAPL", Direction: ledger.Sell, Quantity: d("0"), Price: d("100"), Time: time.Now()},
	}

	_, err := Reconcile(fills, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInvalidFill)
	assert.Contains(t, err.Error(), "fill 2")
}
