package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/contracts"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run every stage and print the full report",
	Long: `Runs the whole pipeline over the catalog:

1. Verification against the catalog expectations
2. Pool ratios
3. Summary statistics
4. Volume-weighted estimate per primary asset
5. Highest-volume pool
6. Security ranking

Example:
  go run ./cmd/poolstat report
  go run ./cmd/poolstat report --json > report.json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	start := time.Now()

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.records(cmd.Context())
	if err != nil {
		return err
	}

	rpt, err := a.service().Build(cmd.Context(), records)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return PrintJSON(out, rpt)
	}

	printVerification(out, rpt.Verification)
	printRatios(out, rpt.Ratios)
	printStatistics(out, rpt.Summary, rpt.StatisticErrors)
	printEstimates(out, "Asset", rpt.Estimates)
	printPick(out, rpt.HighestVolume)

	ranked := make([]contracts.RankedRecord, len(rpt.Ranking))
	for i, r := range rpt.Ranking {
		ranked[i] = r.RankedRecord
	}
	printRanking(out, ranked)

	fmt.Fprintln(out)
	PrintSuccess(out, fmt.Sprintf("Report for %d pools completed in %.2fs", rpt.PoolCount, time.Since(start).Seconds()))
	return nil
}
