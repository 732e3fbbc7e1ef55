package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// Copy builds the copy handler: server-side CopyObject to destBucket,
// deriving the target key from flat/destPrefix via CombineKeys. Delete
// markers are skipped; single-item failures are logged and continue.
func Copy(c *Context, destBucket, destPrefix string, flat bool, storageClass string) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		copier, err := requireCapability[provider.ServerSideCopier](c, "server-side copy")
		if err != nil {
			return err
		}
		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}
			if err := copyOne(ctx, copier, c, it, destBucket, destPrefix, flat, storageClass); err != nil {
				c.Logger.Warn("copy failed", zap.String("key", it.Key), zap.Error(err))
			}
		}
		return nil
	}
}

func copyOne(ctx context.Context, copier provider.ServerSideCopier, c *Context, it *objectitem.Item, destBucket, destPrefix string, flat bool, storageClass string) error {
	target := CombineKeys(flat, it.Key, destPrefix)
	source := BuildCopySource(c.Bucket, it.Key, it.VersionID)

	c.printf("copying: s3://%s => s3://%s/%s\n", source, destBucket, target)
	return copier.CopyObject(ctx, destBucket, target, source, storageClass)
}
