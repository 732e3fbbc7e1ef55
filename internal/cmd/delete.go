package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var deleteSkipMarkers bool

var deleteCmd = &cobra.Command{
	Use:   "delete <s3-uri>",
	Short: "delete every matching object",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVar(&deleteSkipMarkers, "skip-delete-markers", false, "do not delete delete markers (deleting one revives the object)")
}

func runDelete(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Delete(rc.actionC, deleteSkipMarkers))
}
