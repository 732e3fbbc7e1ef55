package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// coldTierClasses are the storage classes Restore acts on; items of any
// other class are skipped silently without calling the API.
var coldTierClasses = map[string]bool{
	"GLACIER":      true,
	"DEEP_ARCHIVE": true,
}

// Restore builds the restore handler: requests restoration for days at
// tier on every cold-tier item. "Already in progress" and "invalid
// object state" are informational and never fail the batch; other
// errors do. Delete markers are skipped.
func Restore(c *Context, days int, tier string) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		restorer, err := requireCapability[provider.Restorer](c, "restore")
		if err != nil {
			return err
		}
		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}
			if !coldTierClasses[it.StorageClass] {
				continue
			}

			err := restorer.RestoreObject(ctx, c.Bucket, it.Key, it.VersionID, days, tier)
			switch {
			case err == nil:
				c.printf("Restore initiated for: %s\n", it.DisplayKey())
			case provider.IsRestoreAlreadyInProgress(err):
				c.printf("Restore already in progress for: %s\n", it.DisplayKey())
			case provider.IsInvalidObjectState(err):
				c.printf("Object is not in Glacier storage or already restored: %s\n", it.DisplayKey())
			default:
				c.Logger.Error("restore failed", zap.String("key", it.Key), zap.Error(err))
				return err
			}
		}
		return nil
	}
}
