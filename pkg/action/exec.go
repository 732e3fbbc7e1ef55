package action

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
)

// Exec builds the exec handler: substitutes "{}" in template with each
// item's s3:// URI, splits on spaces into argv, runs it, and writes the
// child's stdout to the driver's stdout. A nonzero exit is reported but
// does not abort the batch.
func Exec(c *Context, template string) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		for _, it := range batch {
			commandStr := strings.ReplaceAll(template, "{}", it.DisplayKey())
			fields := strings.Fields(commandStr)
			if len(fields) == 0 {
				continue
			}

			cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
			out, err := cmd.Output()
			c.printf("%s\n", out)
			if err != nil {
				c.Logger.Warn("exec failed", zap.Error(err), zap.String("command", commandStr))
			}
		}
		return nil
	}
}
