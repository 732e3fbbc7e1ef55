package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var downloadForce bool

var downloadCmd = &cobra.Command{
	Use:   "download <s3-uri> <dest>",
	Short: "download every matching object to dest, preserving key structure",
	Args:  cobra.ExactArgs(2),
	RunE:  runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().BoolVar(&downloadForce, "force", false, "overwrite files that already exist at the destination")
}

func runDownload(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Download(rc.actionC, args[1], downloadForce))
}
