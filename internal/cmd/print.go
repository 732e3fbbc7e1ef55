package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/pkg/action"
)

var printFormat string

var printCmd = &cobra.Command{
	Use:   "print <s3-uri>",
	Short: "print details (etag, owner, size, mtime, key, storage class) for every matching object",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().StringVar(&printFormat, "format", "text", "output format: text, json, or csv")
}

func runPrint(cmd *cobra.Command, args []string) error {
	var format action.PrintFormat
	switch printFormat {
	case "text":
		format = action.PrintDetail
	case "json":
		format = action.PrintJSON
	case "csv":
		format = action.PrintCSV
	default:
		return fmt.Errorf("--format: unknown value %q (want text, json, or csv)", printFormat)
	}

	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.Print(rc.actionC, format))
}
