// Package listing implements the three traversal modes over a bucket:
// flat pagination, delimiter-hierarchical depth-bounded recursion, and
// version-aware enumeration. Each mode streams batches of objectitem.Item
// on a channel so depth-limited recursion never accumulates a full
// subtree in memory (spec §9 "Streaming recursion").
package listing

import (
	"context"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/provider"
)

// Batch is one page-sized group of items, in listing order.
type Batch struct {
	Items []*objectitem.Item
}

// Flat lists every object under prefix via plain pagination, following
// continuation tokens until exhausted. Each page becomes one Batch.
func Flat(ctx context.Context, p provider.Provider, bucket, prefix string, pageSize int) (<-chan Batch, <-chan error) {
	batches := make(chan Batch)
	errs := make(chan error, 1)

	go func() {
		defer close(batches)
		defer close(errs)

		token := ""
		for {
			if ctx.Err() != nil {
				return
			}
			res, err := p.List(ctx, provider.ListOptions{Bucket: bucket, Prefix: prefix, ContinuationToken: token, MaxKeys: pageSize})
			if err != nil {
				errs <- err
				return
			}
			if len(res.Objects) > 0 {
				items := make([]*objectitem.Item, 0, len(res.Objects))
				for _, o := range res.Objects {
					items = append(items, fromSummary(bucket, o))
				}
				select {
				case batches <- Batch{Items: items}:
				case <-ctx.Done():
					return
				}
			}
			if !res.IsTruncated || res.ContinuationToken == "" {
				return
			}
			token = res.ContinuationToken
		}
	}()

	return batches, errs
}

func fromSummary(bucket string, o provider.ObjectSummary) *objectitem.Item {
	return &objectitem.Item{
		Bucket:       bucket,
		Key:          o.Key,
		Size:         o.Size,
		LastModified: o.LastModified,
		ETag:         o.ETag,
		Owner:        o.Owner,
		StorageClass: o.StorageClass,
		IsLatest:     true,
	}
}
