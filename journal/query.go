package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const tradeColumns = `id, symbol, direction, entry_price, quantity, entry_at,
	exit_price, exit_at, pnl, stop_loss, take_profit, risk_amount,
	mae_price, mfe_price, commission, setup_name, tags, notes, ai_analysis`

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(id string) (Trade, error) {
	row := j.db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)

	t, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Trade{}, fmt.Errorf("trade %q not found", id)
		}
		return Trade{}, err
	}
	return t, nil
}

// ListTrades returns every trade, open and closed, newest entry first.
func (j *SQLite) ListTrades() ([]Trade, error) {
	return j.list(`SELECT ` + tradeColumns + ` FROM trades ORDER BY entry_at DESC, id DESC`)
}

// ListClosedTrades returns trades with a realized result, in
// chronological close order (entry order for trades that carry a P/L
// but no exit timestamp, e.g. imported closing fills).
func (j *SQLite) ListClosedTrades() ([]Trade, error) {
	return j.list(`
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE pnl IS NOT NULL
		ORDER BY COALESCE(exit_at, entry_at) ASC, id ASC`)
}

// ListTradesBySymbol returns every trade for one symbol in entry order.
func (j *SQLite) ListTradesBySymbol(symbol string) ([]Trade, error) {
	return j.list(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE symbol = ?
		ORDER BY entry_at ASC, id ASC`, symbol)
}

func (j *SQLite) list(query string, args ...any) ([]Trade, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (Trade, error) {
	var (
		t          Trade
		direction  string
		entryPrice string
		quantity   string
		commission string
		tags       string

		exitPrice, pnl, stop, take, risk, mae, mfe sql.NullString
		exitAt                                     sql.NullTime
		ai                                         sql.NullString
	)

	err := row.Scan(
		&t.ID, &t.Symbol, &direction, &entryPrice, &quantity, &t.EntryAt,
		&exitPrice, &exitAt, &pnl, &stop, &take, &risk,
		&mae, &mfe, &commission, &t.SetupName, &tags, &t.Notes, &ai,
	)
	if err != nil {
		return Trade{}, err
	}

	t.Direction = Direction(direction)

	if t.EntryPrice, err = decimal.NewFromString(entryPrice); err != nil {
		return Trade{}, fmt.Errorf("trade %s entry_price: %w", t.ID, err)
	}
	if t.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return Trade{}, fmt.Errorf("trade %s quantity: %w", t.ID, err)
	}
	if t.Commission, err = decimal.NewFromString(commission); err != nil {
		return Trade{}, fmt.Errorf("trade %s commission: %w", t.ID, err)
	}

	for _, col := range []struct {
		src sql.NullString
		dst **decimal.Decimal
	}{
		{exitPrice, &t.ExitPrice},
		{pnl, &t.PnL},
		{stop, &t.StopLoss},
		{take, &t.TakeProfit},
		{risk, &t.RiskAmount},
		{mae, &t.MAEPrice},
		{mfe, &t.MFEPrice},
	} {
		if !col.src.Valid {
			continue
		}
		d, err := decimal.NewFromString(col.src.String)
		if err != nil {
			return Trade{}, fmt.Errorf("trade %s: %w", t.ID, err)
		}
		*col.dst = &d
	}

	if exitAt.Valid {
		at := exitAt.Time
		t.ExitAt = &at
	}
	if ai.Valid && ai.String != "" {
		t.AIAnalysis = json.RawMessage(ai.String)
	}

	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return Trade{}, fmt.Errorf("trade %s tags: %w", t.ID, err)
	}
	return t, nil
}
