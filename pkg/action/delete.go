package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// Delete builds the delete handler: one bulk-delete request per batch.
// Deleting a delete marker is permitted (it revives the object); skip
// only when skipDeleteMarkers is set. Per-key failures are logged and do
// not fail the batch.
func Delete(c *Context, skipDeleteMarkers bool) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		deleter, err := requireCapability[provider.BulkDeleter](c, "bulk delete")
		if err != nil {
			return err
		}

		targets := make([]provider.DeleteTarget, 0, len(batch))
		for _, it := range batch {
			if skipDeleteMarkers && it.IsDeleteMarker {
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
			c.Logger.Warn("delete failed", zap.String("key", f.Key), zap.String("message", f.Message))
		}

		failed := map[string]bool{}
		for _, f := range failures {
			failed[f.Key+"@"+f.VersionID] = true
		}
		for _, t := range targets {
			if failed[t.Key+"@"+t.VersionID] {
				continue
			}
			if t.VersionID != "" {
				c.printf("deleted: s3://%s/%s (version: %s)\n", c.Bucket, t.Key, t.VersionID)
			} else {
				c.printf("deleted: s3://%s/%s\n", c.Bucket, t.Key)
			}
		}
		return nil
	}
}
