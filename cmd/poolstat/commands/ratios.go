package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/ratio"
)

// ratiosCmd represents the ratios command
var ratiosCmd = &cobra.Command{
	Use:   "ratios",
	Short: "Print the exchange ratio of every pool",
	Long: `Derives reserve_b / reserve_a for every pool in catalog order.

A pool with a non-positive reserve fails the command.

Example:
  go run ./cmd/poolstat ratios
  go run ./cmd/poolstat ratios --json`,
	RunE: runRatios,
}

func init() {
	rootCmd.AddCommand(ratiosCmd)
}

func runRatios(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.records(cmd.Context())
	if err != nil {
		return err
	}

	ratios, err := ratio.CalculateRatios(records)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return PrintJSON(out, ratios)
	}
	printRatios(out, ratios)
	return nil
}
