package cmd

import (
	"github.com/spf13/cobra"

	"github.com/3leaps/s3find/internal/errs"
	"github.com/3leaps/s3find/pkg/action"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <s3-uri> <key:value>...",
	Short: "replace the tag set of every matching object",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	tags := make(map[string]string, len(args)-1)
	for _, spec := range args[1:] {
		key, value, ok := splitTag(spec)
		if !ok {
			return errs.NewConfigError("invalid tag argument", nil)
		}
		tags[key] = value
	}

	rc, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	return run(rc, action.SetTags(rc.actionC, tags))
}
