package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var lstagsCmd = &cobra.Command{
	Use:   "lstags <s3-uri>",
	Short: "print the tag set of every matching object",
	Args:  cobra.ExactArgs(1),
	RunE:  runLstags,
}

func init() {
	rootCmd.AddCommand(lstagsCmd)
}

func runLstags(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.ListTags(rc.actionC))
}
