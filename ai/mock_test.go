package ai

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMockAdvisorFOMOEntry(t *testing.T) {
	t.Parallel()

	rev := MockAdvisor{}.Review(TradeSummary{
		PnL:   decimal.RequireFromString("-50"),
		Notes: "chased it, total FOMO",
	})
	assert.Equal(t, "FOMO Entry", rev.Verdict)
	assert.Equal(t, 30, rev.Score)

	// Tag works as well as notes.
	rev = MockAdvisor{}.Review(TradeSummary{
		PnL:  decimal.RequireFromString("-50"),
		Tags: []string{"FOMO"},
	})
	assert.Equal(t, "FOMO Entry", rev.Verdict)
}

func TestMockAdvisorEarlyExit(t *testing.T) {
	t.Parallel()

	rev := MockAdvisor{}.Review(TradeSummary{
		PnL:       decimal.RequireFromString("80"),
		ExitPrice: dp("100"),
		MFEPrice:  dp("110"),
	})
	assert.Equal(t, "Early Exit", rev.Verdict)
	assert.Equal(t, 75, rev.Score)

	// MFE within 5% of the exit is not an early exit.
	rev = MockAdvisor{}.Review(TradeSummary{
		PnL:       decimal.RequireFromString("80"),
		ExitPrice: dp("100"),
		MFEPrice:  dp("104"),
	})
	assert.Equal(t, "Systematic Trade", rev.Verdict)
}

func TestMockAdvisorSystematicDefault(t *testing.T) {
	t.Parallel()

	rev := MockAdvisor{}.Review(TradeSummary{
		PnL:   decimal.RequireFromString("25"),
		Notes: "clean breakout entry",
	})
	assert.Equal(t, "Systematic Trade", rev.Verdict)
	assert.Equal(t, 90, rev.Score)

	// A losing trade without FOMO markers is still systematic.
	rev = MockAdvisor{}.Review(TradeSummary{
		PnL: decimal.RequireFromString("-25"),
	})
	assert.Equal(t, "Systematic Trade", rev.Verdict)
}
