package listing

import (
	"context"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/provider"
)

// Versions lists every version of every object under prefix, plus delete
// markers, following the backend's dual key/version-ID continuation
// tokens. Within a page, records are already sorted
// (key ascending, last_modified descending) by the provider so each key's
// history appears as a contiguous descending run across page boundaries
// too, since pages themselves are requested in key order.
func Versions(ctx context.Context, p provider.VersionLister, bucket, prefix string, pageSize int) (<-chan Batch, <-chan error) {
	batches := make(chan Batch)
	errs := make(chan error, 1)

	go func() {
		defer close(batches)
		defer close(errs)

		keyMarker, versionMarker := "", ""
		for {
			if ctx.Err() != nil {
				return
			}
			res, err := p.ListVersions(ctx, provider.ListVersionsOptions{
				Bucket: bucket, Prefix: prefix, KeyMarker: keyMarker, VersionIDMarker: versionMarker, MaxKeys: pageSize,
			})
			if err != nil {
				errs <- err
				return
			}

			if len(res.Versions) > 0 {
				items := make([]*objectitem.Item, 0, len(res.Versions))
				for _, v := range res.Versions {
					items = append(items, &objectitem.Item{
						Bucket:         bucket,
						Key:            v.Key,
						Size:           v.Size,
						LastModified:   v.LastModified,
						ETag:           v.ETag,
						Owner:          v.Owner,
						StorageClass:   v.StorageClass,
						VersionID:      v.VersionID,
						IsLatest:       v.IsLatest,
						IsDeleteMarker: v.IsDeleteMarker,
					})
				}
				select {
				case batches <- Batch{Items: items}:
				case <-ctx.Done():
					return
				}
			}

			if !res.IsTruncated {
				return
			}
			keyMarker, versionMarker = res.NextKeyMarker, res.NextVersionIDMarker
		}
	}()

	return batches, errs
}
