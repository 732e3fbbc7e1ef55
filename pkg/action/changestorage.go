package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// ChangeStorageClass builds the change-storage handler: a server-side
// copy onto itself with a new target storage class, metadata-directive
// COPY, version_id propagated via copy_source. Delete markers are
// skipped.
func ChangeStorageClass(c *Context, storageClass string) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		copier, err := requireCapability[provider.ServerSideCopier](c, "server-side copy")
		if err != nil {
			return err
		}
		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}
			c.printf("Changing storage class for %s to %s\n", it.DisplayKey(), storageClass)

			source := BuildCopySource(c.Bucket, it.Key, it.VersionID)
			if err := copier.CopyObject(ctx, c.Bucket, it.Key, source, storageClass); err != nil {
				c.Logger.Warn("change storage class failed", zap.String("key", it.Key), zap.Error(err))
			}
		}
		return nil
	}
}
