package journal

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	t.Parallel()

	open := sampleTrade("T1")

	closed := sampleTrade("T2")
	closed.ExitPrice = decPtr("44000.5")
	exitAt := time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)
	closed.ExitAt = &exitAt
	closed.PnL = decPtr("500")

	var buf strings.Builder
	require.NoError(t, ExportCSV(&buf, []Trade{open, closed}))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	assert.Equal(t, "T1", rows[1][0])
	assert.Equal(t, "BTC/USDT", rows[1][1])
	assert.Equal(t, "long", rows[1][2])
	assert.Equal(t, "", rows[1][6], "open trade has no exit price")
	assert.Equal(t, "", rows[1][8], "open trade has no pnl")
	assert.Equal(t, "trend;disciplined", rows[1][16])

	assert.Equal(t, "44000.5", rows[2][6])
	assert.Equal(t, "2024-05-02T15:00:00Z", rows[2][7])
	assert.Equal(t, "500", rows[2][8])
}
