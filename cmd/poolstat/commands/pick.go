package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/ratio"
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Print the pool with the highest trading volume",
	Long: `Selects the pool with the highest volume. On a tie the pool listed
first in the catalog wins.

Example:
  go run ./cmd/poolstat pick`,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
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

	best, err := ratio.PickHighestVolume(ratios)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return PrintJSON(out, best)
	}
	printPick(out, best)
	return nil
}
