package journal

// Decimal columns are stored as TEXT so values round-trip exactly;
// SQLite compares them fine and shopspring/decimal scans either way.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	quantity TEXT NOT NULL,
	entry_at DATETIME NOT NULL,
	exit_price TEXT,
	exit_at DATETIME,
	pnl TEXT,
	stop_loss TEXT,
	take_profit TEXT,
	risk_amount TEXT,
	mae_price TEXT,
	mfe_price TEXT,
	commission TEXT NOT NULL DEFAULT '0',
	setup_name TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	notes TEXT NOT NULL DEFAULT '',
	ai_analysis TEXT
);

CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
CREATE INDEX IF NOT EXISTS idx_trades_exit_at ON trades(exit_at);
`
