package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atom.yaml")
	data := `
account:
  name: prop
  currency: EUR
  balance: 25000
journal:
  db_path: /tmp/prop.db
server:
  addr: ":9000"
risk:
  default_risk_pct: 0.005
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prop", cfg.Account.Name)
	assert.Equal(t, "EUR", cfg.Account.Currency)
	assert.Equal(t, "/tmp/prop.db", cfg.Journal.DBPath)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.InDelta(t, 0.005, cfg.Risk.DefaultRiskPct, 1e-12)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atom.json")
	data := `{"journal": {"db_path": "./x.db"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./x.db", cfg.Journal.DBPath)
	// Unspecified sections keep defaults.
	assert.Equal(t, "USD", cfg.Account.Currency)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ATOM_DB_PATH", "/data/override.db")
	t.Setenv("ATOM_SERVER_ADDR", ":7777")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/override.db", cfg.Journal.DBPath)
	assert.Equal(t, ":7777", cfg.Server.Addr)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Risk.DefaultRiskPct = 1.5
	assert.ErrorContains(t, cfg.Validate(), "default_risk_pct")

	cfg = Default()
	cfg.Journal.DBPath = ""
	assert.ErrorContains(t, cfg.Validate(), "db_path")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Account.Name = "saved"
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", got.Account.Name)
}
