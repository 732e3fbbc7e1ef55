package action

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// SetTags builds the tags handler: replaces each item's tag set with
// tags via PutObjectTagging. Delete markers are skipped.
func SetTags(c *Context, tags map[string]string) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		writer, err := requireCapability[provider.TagWriter](c, "tag write")
		if err != nil {
			return err
		}
		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}
			if err := writer.PutObjectTagging(ctx, c.Bucket, it.Key, it.VersionID, tags); err != nil {
				c.Logger.Warn("set tags failed", zap.String("key", it.Key), zap.Error(err))
				continue
			}
			c.printf("tags are set for: %s\n", it.DisplayKey())
		}
		return nil
	}
}

// ListTags builds the lstags handler: uses an item's already-fetched
// Tags when present, otherwise fetches them via GetObjectTagging. Delete
// markers are skipped.
func ListTags(c *Context) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		reader, err := requireCapability[provider.TagReader](c, "tag read")
		if err != nil {
			return err
		}
		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}
			tags := it.Tags
			if tags == nil {
				tags, err = reader.GetObjectTagging(ctx, c.Bucket, it.Key, it.VersionID)
				if err != nil {
					c.Logger.Warn("get tags failed", zap.String("key", it.Key), zap.Error(err))
					continue
				}
			}
			c.printf("%s %s\n", it.DisplayKey(), formatTags(tags))
		}
		return nil
	}
}

func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+tags[k])
	}
	return strings.Join(parts, ",")
}
