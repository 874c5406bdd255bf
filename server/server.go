// Package server exposes the journal over a small JSON API for
// dashboards.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/atomlabs/atom/ai"
	"github.com/atomlabs/atom/journal"
)

// Store is the slice of the journal the API needs.
type Store interface {
	InsertTrade(journal.Trade) error
	GetTrade(id string) (journal.Trade, error)
	ListTrades() ([]journal.Trade, error)
	ListClosedTrades() ([]journal.Trade, error)
	CloseTrade(id string, req journal.CloseRequest) (journal.Trade, error)
	SetAIAnalysis(id string, review json.RawMessage) error
}

type Server struct {
	store   Store
	advisor ai.Advisor
	addr    string
}

func New(store Store, advisor ai.Advisor, addr string) *Server {
	return &Server{store: store, advisor: advisor, addr: addr}
}

// Handler builds the route table. Split from ListenAndServe so tests
// can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/trades", s.handleListTrades)
	mux.HandleFunc("POST /api/trades", s.handleCreateTrade)
	mux.HandleFunc("GET /api/trades/{id}", s.handleGetTrade)
	mux.HandleFunc("POST /api/trades/{id}/close", s.handleCloseTrade)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	return cors(mux)
}

func (s *Server) ListenAndServe() error {
	log.Printf("atom API listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// cors allows everything; the journal is a personal tool, not a
// shared service.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
