package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var changeStorageClass string

var changeStorageCmd = &cobra.Command{
	Use:   "change-storage <s3-uri>",
	Short: "change the storage class of every matching object via a same-object server-side copy",
	Args:  cobra.ExactArgs(1),
	RunE:  runChangeStorage,
}

func init() {
	rootCmd.AddCommand(changeStorageCmd)
	changeStorageCmd.Flags().StringVar(&changeStorageClass, "storage-class", "", "target storage class, e.g. STANDARD_IA, GLACIER")
	changeStorageCmd.MarkFlagRequired("storage-class") //nolint:errcheck
}

func runChangeStorage(cmd *cobra.Command, args []string) error {
	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.ChangeStorageClass(rc.actionC, changeStorageClass))
}
