package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var execCmd = &cobra.Command{
	Use:   "exec <s3-uri> <command>",
	Short: "run command once per matching object, substituting {} with its s3:// URI",
	Args:  cobra.ExactArgs(2),
	RunE:  runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Exec(rc.actionC, args[1]))
}
