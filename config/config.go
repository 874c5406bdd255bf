package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete journal configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
}

// AccountConfig describes the trading account being journaled.
type AccountConfig struct {
	Name     string  `json:"name" yaml:"name"`
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// JournalConfig locates the trade store.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// RiskConfig carries journal-wide risk defaults.
type RiskConfig struct {
	DefaultRiskPct float64 `json:"default_risk_pct" yaml:"default_risk_pct"`
}

// LoadFromFile loads configuration from a YAML or JSON file, then
// applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load returns the default configuration with environment overrides
// applied, for running without a config file. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ATOM_DB_PATH"); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv("ATOM_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ATOM_ACCOUNT_NAME"); v != "" {
		c.Account.Name = v
	}
}

// SaveToFile writes the configuration as YAML or JSON based on the
// file extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Risk.DefaultRiskPct < 0 || c.Risk.DefaultRiskPct > 1 {
		return fmt.Errorf("risk.default_risk_pct must be between 0 and 1")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Name:     "main",
			Currency: "USD",
			Balance:  10000,
		},
		Journal: JournalConfig{
			DBPath: "./atom.db",
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
		Risk: RiskConfig{
			DefaultRiskPct: 0.01,
		},
	}
}
