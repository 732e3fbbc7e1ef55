package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var lsCmd = &cobra.Command{
	Use:   "ls <s3-uri>",
	Short: "print the s3:// URI of every matching object",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Print(rc.actionC, action.PrintPlain))
}
