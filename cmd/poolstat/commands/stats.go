package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/ratio"
	"github.com/wonny/poolstat/internal/report"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics over all pool ratios",
	Long: `Computes the ten summary measures over the ratios of every pool:
arithmetic, geometric, weighted, harmonic, trimmed and quadratic means,
median, midrange, mode and maximum.

Measures that cannot be computed are reported as n/a with the reason;
the others are still printed.

Example:
  go run ./cmd/poolstat stats`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	summary, err := ratio.CalculateStatistics(ratios)
	if summary == nil {
		return err
	}
	failures := report.ErrorStrings(err)
	for _, f := range failures {
		a.log.WithField("statistic", f).Warn("Statistic skipped")
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return PrintJSON(out, map[string]interface{}{
			"statistics": summary,
			"errors":     failures,
		})
	}
	printStatistics(out, summary, failures)
	return nil
}
