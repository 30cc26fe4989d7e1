package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/catalog"
	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/report"
	"github.com/wonny/poolstat/pkg/config"
	"github.com/wonny/poolstat/pkg/database"
	"github.com/wonny/poolstat/pkg/logger"
)

// app bundles what every command needs
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	catalog *catalog.Catalog
	source  contracts.CatalogSource
	db      *database.DB // nil for the file source
}

// setup loads config, logger, catalog and the pool source.
// The catalog file is always read: it carries reputation, weights and
// expectations even when pools come from postgres.
func setup(cmd *cobra.Command) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Flags override env
	if f := cmd.Flag("env"); f != nil && f.Changed {
		cfg.Env = env
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load catalog
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	a := &app{cfg: cfg, log: log, catalog: cat}

	// 4. Select pool source
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := database.New(cmd.Context(), cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		a.source = catalog.NewRepository(db.Pool)
		log.Debug("Connected to database")
	default:
		a.source = catalog.NewFileSource(cfg.Catalog.Path)
	}

	log.WithFields(map[string]interface{}{
		"source":  cfg.Catalog.Source,
		"catalog": cfg.Catalog.Path,
		"pools":   len(cat.Pools),
	}).Debug("Catalog loaded")

	return a, nil
}

// Close releases the database pool, if any
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// records loads pool records from the configured source
func (a *app) records(ctx context.Context) ([]contracts.PoolRecord, error) {
	records, err := a.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pools: %w", err)
	}
	return records, nil
}

// service builds a report service over the catalog
func (a *app) service() *report.Service {
	return report.NewService(a.catalog, a.log)
}
