package listing

import (
	"context"

	"github.com/3leaps/s3find/pkg/provider"
)

// Delimiter performs depth-bounded hierarchical traversal: at each level
// it lists bucket/prefix with delimiter "/", emits the objects found
// there immediately, then recurses sequentially (for lexicographic
// output order) into each common prefix while currentDepth < maxDepth.
// maxDepth == 0 yields exactly the objects at the initial prefix.
func Delimiter(ctx context.Context, p provider.DelimiterLister, bucket, prefix string, maxDepth, pageSize int) (<-chan Batch, <-chan error) {
	batches := make(chan Batch)
	errs := make(chan error, 1)

	go func() {
		defer close(batches)
		defer close(errs)
		if err := walk(ctx, p, bucket, prefix, 0, maxDepth, pageSize, batches); err != nil {
			errs <- err
		}
	}()

	return batches, errs
}

func walk(ctx context.Context, p provider.DelimiterLister, bucket, prefix string, depth, maxDepth, pageSize int, batches chan<- Batch) error {
	token := ""
	var childPrefixes []string

	for {
		if ctx.Err() != nil {
			return nil
		}
		res, err := p.ListWithDelimiter(ctx, provider.ListWithDelimiterOptions{
			Bucket: bucket, Prefix: prefix, Delimiter: "/", ContinuationToken: token, MaxKeys: pageSize,
		})
		if err != nil {
			return err
		}

		if len(res.Objects) > 0 {
			b := Batch{}
			for _, o := range res.Objects {
				b.Items = append(b.Items, fromSummary(bucket, o))
			}
			select {
			case batches <- b:
			case <-ctx.Done():
				return nil
			}
		}

		childPrefixes = append(childPrefixes, res.CommonPrefixes...)

		if !res.IsTruncated || res.ContinuationToken == "" {
			break
		}
		token = res.ContinuationToken
	}

	if depth >= maxDepth {
		return nil
	}
	for _, child := range childPrefixes {
		if err := walk(ctx, p, bucket, child, depth+1, maxDepth, pageSize, batches); err != nil {
			return err
		}
	}
	return nil
}
