package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/ratio"
	"github.com/wonny/poolstat/internal/report"
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Print the volume-weighted ratio per asset or venue",
	Long: `Groups pools and computes the trading-volume weighted mean ratio of
each group. A group whose total volume is zero is reported without a value.

Example:
  go run ./cmd/poolstat estimate
  go run ./cmd/poolstat estimate --by venue`,
	RunE: runEstimate,
}

var (
	estimateBy string
)

func init() {
	rootCmd.AddCommand(estimateCmd)

	// Flags
	estimateCmd.Flags().StringVar(&estimateBy, "by", "asset", "grouping (asset|venue)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	var keyFn func(contracts.PoolRecord) string
	label := "Asset"
	switch estimateBy {
	case "asset":
		keyFn = ratio.ByPrimaryAsset
	case "venue":
		keyFn = ratio.ByVenue
		label = "Venue"
	default:
		return fmt.Errorf("--by must be one of: asset, venue")
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.records(cmd.Context())
	if err != nil {
		return err
	}

	est, err := ratio.MostPlausibleRatio(records, keyFn)
	if err != nil {
		return err
	}
	estimates := report.EstimatesOf(est)

	out := cmd.OutOrStdout()
	if outputJSON {
		return PrintJSON(out, estimates)
	}
	printEstimates(out, label, estimates)
	return nil
}
