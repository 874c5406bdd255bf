package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLite is the trade store backing the journal.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// InsertTrade stores a new trade record.
func (j *SQLite) InsertTrade(t Trade) error {
	tags, err := json.Marshal(tagsOrEmpty(t.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = j.db.Exec(`
		INSERT INTO trades
		(id, symbol, direction, entry_price, quantity, entry_at,
		 exit_price, exit_at, pnl, stop_loss, take_profit, risk_amount,
		 mae_price, mfe_price, commission, setup_name, tags, notes, ai_analysis)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, string(t.Direction),
		t.EntryPrice.String(), t.Quantity.String(), t.EntryAt,
		optDec(t.ExitPrice), optTime(t.ExitAt), optDec(t.PnL),
		optDec(t.StopLoss), optDec(t.TakeProfit), optDec(t.RiskAmount),
		optDec(t.MAEPrice), optDec(t.MFEPrice),
		t.Commission.String(), t.SetupName, string(tags), t.Notes,
		optJSON(t.AIAnalysis),
	)
	return err
}

// CloseRequest carries the exit details recorded when a trade is
// closed out.
type CloseRequest struct {
	ExitPrice decimal.Decimal
	ExitAt    time.Time
	MAEPrice  *decimal.Decimal
	MFEPrice  *decimal.Decimal
}

// CloseTrade records the exit and computes the realized P/L from the
// trade's direction. Closing an already-closed trade is an error; use
// UpdateTrade for corrections.
func (j *SQLite) CloseTrade(id string, req CloseRequest) (Trade, error) {
	t, err := j.GetTrade(id)
	if err != nil {
		return Trade{}, err
	}
	if t.Closed() {
		return Trade{}, fmt.Errorf("trade %q already closed", id)
	}

	pnl := t.RealizedPnL(req.ExitPrice)

	_, err = j.db.Exec(`
		UPDATE trades
		SET exit_price = ?, exit_at = ?, pnl = ?, mae_price = ?, mfe_price = ?
		WHERE id = ?`,
		req.ExitPrice.String(), req.ExitAt, pnl.String(),
		optDec(req.MAEPrice), optDec(req.MFEPrice), id,
	)
	if err != nil {
		return Trade{}, err
	}

	t.ExitPrice = &req.ExitPrice
	exitAt := req.ExitAt
	t.ExitAt = &exitAt
	t.PnL = &pnl
	t.MAEPrice = req.MAEPrice
	t.MFEPrice = req.MFEPrice
	return t, nil
}

// UpdateTrade rewrites every mutable field of an existing trade. This
// is the explicit correction path for closed trades.
func (j *SQLite) UpdateTrade(t Trade) error {
	tags, err := json.Marshal(tagsOrEmpty(t.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	res, err := j.db.Exec(`
		UPDATE trades
		SET symbol = ?, direction = ?, entry_price = ?, quantity = ?, entry_at = ?,
		    exit_price = ?, exit_at = ?, pnl = ?, stop_loss = ?, take_profit = ?,
		    risk_amount = ?, mae_price = ?, mfe_price = ?, commission = ?,
		    setup_name = ?, tags = ?, notes = ?, ai_analysis = ?
		WHERE id = ?`,
		t.Symbol, string(t.Direction),
		t.EntryPrice.String(), t.Quantity.String(), t.EntryAt,
		optDec(t.ExitPrice), optTime(t.ExitAt), optDec(t.PnL),
		optDec(t.StopLoss), optDec(t.TakeProfit), optDec(t.RiskAmount),
		optDec(t.MAEPrice), optDec(t.MFEPrice),
		t.Commission.String(), t.SetupName, string(tags), t.Notes,
		optJSON(t.AIAnalysis), t.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q not found", t.ID)
	}
	return nil
}

// SetAIAnalysis attaches an advisor review to a trade.
func (j *SQLite) SetAIAnalysis(id string, review json.RawMessage) error {
	res, err := j.db.Exec(`UPDATE trades SET ai_analysis = ? WHERE id = ?`,
		string(review), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q not found", id)
	}
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func optDec(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func optTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func optJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
