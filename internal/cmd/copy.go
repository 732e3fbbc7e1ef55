package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/internal/errs"
	"github.com/3leaps/s3find/pkg/action"
	"github.com/3leaps/s3find/pkg/s3path"
)

var (
	copyFlat         bool
	copyStorageClass string
)

var copyCmd = &cobra.Command{
	Use:   "copy <s3-uri> <dest-s3-uri>",
	Short: "server-side copy every matching object to dest-s3-uri",
	Args:  cobra.ExactArgs(2),
	RunE:  runCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().BoolVar(&copyFlat, "flat", false, "drop the source prefix, writing every object directly under dest-s3-uri")
	copyCmd.Flags().StringVar(&copyStorageClass, "storage-class", "", "storage class to apply to the copies (empty keeps the source class)")
}

func runCopy(cmd *cobra.Command, args []string) error {
	dest, err := s3path.Parse(args[1])
	if err != nil {
		return errs.NewConfigError("invalid destination s3 path", err)
	}
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Copy(rc.actionC, dest.Bucket, dest.Prefix, copyFlat, copyStorageClass))
}
