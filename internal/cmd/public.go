package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var publicCmd = &cobra.Command{
	Use:   "public <s3-uri>",
	Short: "apply a public-read ACL to every matching object and print its public URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runPublic,
}

func init() {
	rootCmd.AddCommand(publicCmd)
}

func runPublic(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Public(rc.actionC))
}
