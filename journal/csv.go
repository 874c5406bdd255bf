package journal

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"id", "symbol", "direction", "entry_price", "quantity", "entry_at",
	"exit_price", "exit_at", "pnl", "stop_loss", "take_profit",
	"risk_amount", "mae_price", "mfe_price", "commission",
	"setup_name", "tags", "notes",
}

// ExportCSV writes trades to w, one row per trade. Optional fields are
// left blank. Tags are joined with ';' so the file stays one cell per
// column.
func ExportCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		row := []string{
			t.ID,
			t.Symbol,
			string(t.Direction),
			t.EntryPrice.String(),
			t.Quantity.String(),
			t.EntryAt.Format(time.RFC3339),
			blankDec(t.ExitPrice),
			blankTime(t.ExitAt),
			blankDec(t.PnL),
			blankDec(t.StopLoss),
			blankDec(t.TakeProfit),
			blankDec(t.RiskAmount),
			blankDec(t.MAEPrice),
			blankDec(t.MFEPrice),
			t.Commission.String(),
			t.SetupName,
			strings.Join(t.Tags, ";"),
			t.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func blankDec(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func blankTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
