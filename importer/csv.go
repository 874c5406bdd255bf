// Package importer normalizes broker export files into fills and
// reconciles them into journaled trades.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atomlabs/atom/ledger"
)

// Broker exports disagree on column names; first synonym found wins.
var columnSynonyms = map[string][]string{
	"date":     {"date", "time", "created time", "date(utc)", "timestamp"},
	"symbol":   {"symbol", "pair", "instrument", "contract", "ticker"},
	"side":     {"side", "type", "direction", "operation"},
	"price":    {"price", "avg price", "entry price", "fill price"},
	"quantity": {"amount", "quantity", "executed", "size", "qty"},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04:05",
}

// ParseCSV reads a broker CSV export and returns normalized fills in
// file order. Rows with an unrecognized side (transfers, funding) or
// unparsable values are skipped and counted, matching how traders'
// exports mix trade and non-trade rows.
func ParseCSV(r io.Reader) (fills []ledger.Fill, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	idx, err := mapColumns(header)
	if err != nil {
		return nil, 0, err
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read row: %w", err)
		}

		f, ok := parseRow(row, idx)
		if !ok {
			skipped++
			continue
		}
		fills = append(fills, f)
	}
	return fills, skipped, nil
}

func mapColumns(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	idx := make(map[string]int, len(columnSynonyms))
	var missing []string
	for key, names := range columnSynonyms {
		found := false
		for _, name := range names {
			if i, ok := byName[name]; ok {
				idx[key] = i
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("could not detect required columns %v in header %v", missing, header)
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (ledger.Fill, bool) {
	cell := func(key string) string {
		i := idx[key]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	dir, ok := parseSide(cell("side"))
	if !ok {
		return ledger.Fill{}, false
	}

	at, ok := parseDate(cell("date"))
	if !ok {
		return ledger.Fill{}, false
	}

	price, err := decimal.NewFromString(cell("price"))
	if err != nil {
		return ledger.Fill{}, false
	}
	qty, err := decimal.NewFromString(cell("quantity"))
	if err != nil {
		return ledger.Fill{}, false
	}

	symbol := strings.ToUpper(cell("symbol"))
	if symbol == "" {
		return ledger.Fill{}, false
	}

	return ledger.Fill{
		Symbol:    symbol,
		Direction: dir,
		Quantity:  qty,
		Price:     price,
		Time:      at,
	}, true
}

func parseSide(s string) (ledger.Direction, bool) {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "buy"), strings.Contains(s, "long"):
		return ledger.Buy, true
	case strings.Contains(s, "sell"), strings.Contains(s, "short"):
		return ledger.Sell, true
	default:
		return "", false
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
