package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/ranking"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank pools by venue security score",
	Long: `Fills unset reputation attributes from the catalog reputation table,
scores every pool and prints them best first.

Score = audit bonus - incidents x penalty + age in months x per-month points.
Ties keep catalog order.

Example:
  go run ./cmd/poolstat rank
  go run ./cmd/poolstat rank --top 3`,
	RunE: runRank,
}

var (
	rankTop int
)

func init() {
	rootCmd.AddCommand(rankCmd)

	// Flags
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "only show the first N pools (0 = all)")
}

func runRank(cmd *cobra.Command, args []string) error {
	if rankTop < 0 {
		return fmt.Errorf("--top must not be negative")
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

	ranked, err := ranking.NewRanker(a.catalog.Weights).Rank(a.catalog.Reputation.Assign(records))
	if err != nil {
		return err
	}

	if rankTop > 0 {
		top := make([]contracts.RankedRecord, 0, rankTop)
		for i := range ranked {
			if ranked[i].IsTopRanked(rankTop) {
				top = append(top, ranked[i])
			}
		}
		ranked = top
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return PrintJSON(out, ranked)
	}
	printRanking(out, ranked)
	return nil
}
