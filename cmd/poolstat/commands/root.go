package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	catalogPath string
	env         string
	verbose     bool
	outputJSON  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "poolstat",
	Short: "Liquidity pool ratio statistics and security ranking",
	Long: `poolstat CLI

Derives exchange ratios from liquidity pool reserves, summarises them with
ten statistics, estimates a volume-weighted ratio per asset, and ranks pools
by venue security.

Usage:
  go run ./cmd/poolstat [command]

Examples:
  go run ./cmd/poolstat report
  go run ./cmd/poolstat stats --catalog config/catalog/pools.yaml
  go run ./cmd/poolstat rank --top 3
  go run ./cmd/poolstat api`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file (default is CATALOG_PATH)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
}
