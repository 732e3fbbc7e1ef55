package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/internal/errs"
	"github.com/3leaps/s3find/pkg/action"
	"github.com/3leaps/s3find/pkg/s3path"
)

var (
	moveFlat         bool
	moveStorageClass string
)

var moveCmd = &cobra.Command{
	Use:   "move <s3-uri> <dest-s3-uri>",
	Short: "server-side copy every matching object to dest-s3-uri, then delete the source",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().BoolVar(&moveFlat, "flat", false, "drop the source prefix, writing every object directly under dest-s3-uri")
	moveCmd.Flags().StringVar(&moveStorageClass, "storage-class", "", "storage class to apply to the moved copies (empty keeps the source class)")
}

func runMove(cmd *cobra.Command, args []string) error {
	dest, err := s3path.Parse(args[1])
	if err != nil {
		return errs.NewConfigError("invalid destination s3 path", err)
	}
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Move(rc.actionC, dest.Bucket, dest.Prefix, moveFlat, moveStorageClass))
}
