package commands

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/catalog"
	"github.com/wonny/poolstat/pkg/config"
	"github.com/wonny/poolstat/pkg/database"
	"github.com/wonny/poolstat/pkg/logger"
)

// dbCheckCmd represents the db-check command
var dbCheckCmd = &cobra.Command{
	Use:   "db-check",
	Short: "Test the postgres pool catalog connection",
	Long: `Connects to DATABASE_URL, pings it and loads catalog.pools.

Works regardless of CATALOG_SOURCE so the table can be checked before
switching the source to postgres.

Example:
  DATABASE_URL=postgres://... go run ./cmd/poolstat db-check`,
	RunE: runDBCheck,
}

func init() {
	rootCmd.AddCommand(dbCheckCmd)
}

func runDBCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== poolstat Database Connection Test ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	log := logger.New(cfg)

	PrintKeyValue(out, "Database", maskPassword(cfg.Database.URL), 8)

	db, err := database.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	PrintSuccess(out, "Database connection established")

	status, err := db.HealthCheck(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	PrintKeyValue(out, "Healthy", fmt.Sprintf("%v", status.Healthy), 13)
	PrintKeyValue(out, "Response Time", status.ResponseTime.String(), 13)
	PrintKeyValue(out, "Timestamp", status.Timestamp.Format(time.RFC3339), 13)
	PrintKeyValue(out, "Connections", fmt.Sprintf("%d total, %d idle", status.TotalConns, status.IdleConns), 13)

	records, err := catalog.NewRepository(db.Pool).Load(cmd.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load catalog.pools")
		return err
	}

	PrintSuccess(out, fmt.Sprintf("Loaded %d pools from catalog.pools", len(records)))
	return nil
}

// maskPassword hides the password in a database URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
