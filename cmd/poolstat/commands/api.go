package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/api"
	"github.com/wonny/poolstat/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the report API server",
	Long: `Starts the REST API server. Pools are reloaded from the configured
source on every request.

Endpoints:
  GET  /health           - Health check
  GET  /api/report       - Full report
  GET  /api/ratios       - Pool ratios
  GET  /api/statistics   - Summary statistics
  GET  /api/estimates    - Volume-weighted estimates (?group_by=asset|venue)
  GET  /api/pick         - Highest-volume pool
  GET  /api/ranking      - Security ranking (?top=N)
  GET  /api/verify       - Catalog verification
  GET  /metrics          - Prometheus metrics (METRICS_ENABLED)

Example:
  go run ./cmd/poolstat api
  go run ./cmd/poolstat api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default is PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "=== poolstat API Server ===")

	// 1. Config, logger, catalog and pool source
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	a.log.WithFields(map[string]interface{}{
		"port":   a.cfg.Port,
		"env":    a.cfg.Env,
		"source": a.cfg.Catalog.Source,
	}).Info("Initializing API server")

	// 2. Create handler, router and server
	reportHandler := handlers.NewReportHandler(a.source, a.service(), a.log)
	router := api.NewRouter(reportHandler, a.db, a.cfg, a.log)
	server := api.New(a.cfg, a.log, router)

	// 3. Serve until interrupted
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	a.log.Info("Server stopped")
	return nil
}
