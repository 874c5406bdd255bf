package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atomlabs/atom/ai"
	"github.com/atomlabs/atom/journal"
	"github.com/atomlabs/atom/pkg/id"
	"github.com/atomlabs/atom/risk"
	"github.com/atomlabs/atom/stats"
)

// tradeJSON is the wire shape of a trade.
type tradeJSON struct {
	ID         string           `json:"id"`
	Symbol     string           `json:"symbol"`
	Direction  string           `json:"direction"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	Quantity   decimal.Decimal  `json:"quantity"`
	EntryAt    time.Time        `json:"entry_at"`
	ExitPrice  *decimal.Decimal `json:"exit_price,omitempty"`
	ExitAt     *time.Time       `json:"exit_at,omitempty"`
	PnL        *decimal.Decimal `json:"pnl,omitempty"`
	StopLoss   *decimal.Decimal `json:"stop_loss,omitempty"`
	TakeProfit *decimal.Decimal `json:"take_profit,omitempty"`
	RiskAmount *decimal.Decimal `json:"risk_amount,omitempty"`
	MAEPrice   *decimal.Decimal `json:"mae_price,omitempty"`
	MFEPrice   *decimal.Decimal `json:"mfe_price,omitempty"`
	Commission decimal.Decimal  `json:"commission"`
	SetupName  string           `json:"setup_name,omitempty"`
	Tags       []string         `json:"tags"`
	Notes      string           `json:"notes,omitempty"`
	AIAnalysis json.RawMessage  `json:"ai_analysis,omitempty"`
}

func toJSON(t journal.Trade) tradeJSON {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return tradeJSON{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Direction:  string(t.Direction),
		EntryPrice: t.EntryPrice,
		Quantity:   t.Quantity,
		EntryAt:    t.EntryAt,
		ExitPrice:  t.ExitPrice,
		ExitAt:     t.ExitAt,
		PnL:        t.PnL,
		StopLoss:   t.StopLoss,
		TakeProfit: t.TakeProfit,
		RiskAmount: t.RiskAmount,
		MAEPrice:   t.MAEPrice,
		MFEPrice:   t.MFEPrice,
		Commission: t.Commission,
		SetupName:  t.SetupName,
		Tags:       tags,
		Notes:      t.Notes,
		AIAnalysis: t.AIAnalysis,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.ListTrades()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]tradeJSON, 0, len(trades))
	for _, t := range trades {
		out = append(out, toJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTrade(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSON(t))
}

type createTradeRequest struct {
	Symbol     string           `json:"symbol"`
	Direction  string           `json:"direction"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	Quantity   decimal.Decimal  `json:"quantity"`
	EntryAt    time.Time        `json:"entry_at"`
	StopLoss   *decimal.Decimal `json:"stop_loss,omitempty"`
	TakeProfit *decimal.Decimal `json:"take_profit,omitempty"`
	RiskAmount *decimal.Decimal `json:"risk_amount,omitempty"`
	SetupName  string           `json:"setup_name,omitempty"`
	Tags       []string         `json:"tags,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

func (req createTradeRequest) validate() error {
	if req.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	switch journal.Direction(strings.ToLower(req.Direction)) {
	case journal.Long, journal.Short:
	default:
		return fmt.Errorf("direction must be %q or %q", journal.Long, journal.Short)
	}
	if !req.EntryPrice.IsPositive() {
		return fmt.Errorf("entry_price must be positive")
	}
	if !req.Quantity.IsPositive() {
		return fmt.Errorf("quantity must be positive")
	}
	if req.EntryAt.IsZero() {
		return fmt.Errorf("entry_at is required")
	}
	return nil
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req createTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	t := journal.Trade{
		ID:         id.New(),
		Symbol:     strings.ToUpper(req.Symbol),
		Direction:  journal.Direction(strings.ToLower(req.Direction)),
		EntryPrice: req.EntryPrice,
		Quantity:   req.Quantity,
		EntryAt:    req.EntryAt,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		RiskAmount: req.RiskAmount,
		SetupName:  req.SetupName,
		Tags:       req.Tags,
		Notes:      req.Notes,
	}

	// Default the risk amount from the planned stop when the trader
	// did not record one.
	if t.RiskAmount == nil && t.StopLoss != nil {
		planned := risk.Planned(t.EntryPrice, *t.StopLoss, t.Quantity)
		t.RiskAmount = &planned
	}

	if err := s.store.InsertTrade(t); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJSON(t))
}

type closeTradeRequest struct {
	ExitPrice decimal.Decimal  `json:"exit_price"`
	ExitAt    time.Time        `json:"exit_at"`
	MAEPrice  *decimal.Decimal `json:"mae_price,omitempty"`
	MFEPrice  *decimal.Decimal `json:"mfe_price,omitempty"`
}

func (s *Server) handleCloseTrade(w http.ResponseWriter, r *http.Request) {
	var req closeTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if !req.ExitPrice.IsPositive() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("exit_price must be positive"))
		return
	}
	if req.ExitAt.IsZero() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("exit_at is required"))
		return
	}

	t, err := s.store.CloseTrade(r.PathValue("id"), journal.CloseRequest{
		ExitPrice: req.ExitPrice,
		ExitAt:    req.ExitAt,
		MAEPrice:  req.MAEPrice,
		MFEPrice:  req.MFEPrice,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Advisor review is best effort: a failed save never loses the
	// close itself.
	review := s.advisor.Review(ai.TradeSummary{
		Symbol:    t.Symbol,
		Direction: string(t.Direction),
		PnL:       *t.PnL,
		ExitPrice: t.ExitPrice,
		MAEPrice:  t.MAEPrice,
		MFEPrice:  t.MFEPrice,
		Notes:     t.Notes,
		Tags:      t.Tags,
	})
	if raw, err := json.Marshal(review); err == nil {
		if err := s.store.SetAIAnalysis(t.ID, raw); err == nil {
			t.AIAnalysis = raw
		}
	}

	writeJSON(w, http.StatusOK, toJSON(t))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	closed, err := s.store.ListClosedTrades()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Compute(closed))
}
