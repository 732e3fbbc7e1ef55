package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// Move builds the move handler: a server-side copy identical to Copy,
// followed by a bulk-delete of the surviving (non-delete-marker) source
// items once every copy in the batch has been attempted.
func Move(c *Context, destBucket, destPrefix string, flat bool, storageClass string) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		copier, err := requireCapability[provider.ServerSideCopier](c, "server-side copy")
		if err != nil {
			return err
		}
		deleter, err := requireCapability[provider.BulkDeleter](c, "bulk delete")
		if err != nil {
			return err
		}

		targets := make([]provider.DeleteTarget, 0, len(batch))
		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}
			c.printf("moving: %s\n", it.DisplayKey())
			if err := copyOne(ctx, copier, c, it, destBucket, destPrefix, flat, storageClass); err != nil {
				c.Logger.Warn("move copy failed", zap.String("key", it.Key), zap.Error(err))
				continue
			}
			targets = append(targets, provider.DeleteTarget{Key: it.Key, VersionID: it.VersionID})
		}
		if len(targets) == 0 {
			return nil
		}

		failures, err := deleter.DeleteObjects(ctx, c.Bucket, targets)
		if err != nil {
			return err
		}
		for _, f := range failures {
			c.Logger.Warn("move delete failed", zap.String("key", f.Key), zap.String("message", f.Message))
		}
		return nil
	}
}
