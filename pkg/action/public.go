package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// Public builds the public handler: applies a public-read ACL to each
// item and prints the resulting public URL. Delete markers are skipped.
func Public(c *Context) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		setter, err := requireCapability[provider.ACLSetter](c, "ACL write")
		if err != nil {
			return err
		}
		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}
			if err := setter.PutPublicReadACL(ctx, c.Bucket, it.Key, it.VersionID); err != nil {
				c.Logger.Warn("set public ACL failed", zap.String("key", it.Key), zap.Error(err))
				continue
			}
			c.printf("%s %s\n", it.DisplayKey(), PublicURL(c.Region, c.Bucket, it.Key))
		}
		return nil
	}
}
