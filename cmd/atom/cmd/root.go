package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomlabs/atom/config"
	"github.com/atomlabs/atom/journal"
)

var rootCmd = &cobra.Command{
	Use:   "atom",
	Short: "A smart trading journal with risk-of-ruin analytics",
	Long: `Atom is a personal trading journal written in Go.

It provides tools for:
  - Journaling trades with stops, targets, tags and notes
  - Importing broker CSV exports with weighted-average-cost reconciliation
  - Optimal f, SQN and runs-test analytics over your closed trades
  - MAE/MFE excursion analysis for stop and exit placement
  - A JSON API for dashboards

Trades live in a single SQLite file; point every command at it with
--db or a config file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile string
	dbPath  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to the SQLite journal (overrides config)")
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}
	return cfg, nil
}

func openJournal() (*journal.SQLite, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal %s: %w", cfg.Journal.DBPath, err)
	}
	return j, cfg, nil
}
