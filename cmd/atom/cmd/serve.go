package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomlabs/atom/ai"
	"github.com/atomlabs/atom/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Long: `Run the JSON API server for dashboards.

Endpoints:
  GET  /api/health
  GET  /api/trades
  POST /api/trades
  GET  /api/trades/{id}
  POST /api/trades/{id}/close
  GET  /api/stats

Examples:
  atom serve
  atom serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	j, cfg, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(j, ai.MockAdvisor{}, addr)

	fmt.Printf("✓ Journal: %s\n", cfg.Journal.DBPath)
	fmt.Printf("✓ Listening on %s\n", addr)
	return srv.ListenAndServe()
}
