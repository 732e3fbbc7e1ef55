package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var (
	restoreDays int
	restoreTier string
)

var restoreCmd = &cobra.Command{
	Use:   "restore <s3-uri>",
	Short: "request restoration of every matching cold-tier (GLACIER/DEEP_ARCHIVE) object",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().IntVar(&restoreDays, "days", 1, "number of days the restored copy stays available")
	restoreCmd.Flags().StringVar(&restoreTier, "tier", "standard", "restore tier: standard, expedited, or bulk")
}

func runRestore(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Restore(rc.actionC, restoreDays, restoreTier))
}
