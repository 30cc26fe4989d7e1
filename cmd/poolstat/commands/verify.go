package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/wonny/poolstat/internal/catalog"
)

// errVerificationFailed makes the command exit non-zero
var errVerificationFailed = errors.New("catalog verification failed")

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the pool catalog against its expectations",
	Long: `Compares pool counts per primary asset and per venue, the token set
and the reputation placeholders with the expectations in the catalog file.

Exits non-zero when any check fails.

Example:
  go run ./cmd/poolstat verify`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.records(cmd.Context())
	if err != nil {
		return err
	}

	v := catalog.Verify(records, a.catalog.Expectations)

	out := cmd.OutOrStdout()
	if outputJSON {
		if err := PrintJSON(out, v); err != nil {
			return err
		}
	} else {
		printVerification(out, v)
	}

	if !v.OK {
		return errVerificationFailed
	}
	return nil
}
