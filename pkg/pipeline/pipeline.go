// Package pipeline implements the driver that threads a listing source
// through object filtering, the optional tag-fetch stage, the global
// item cap, fixed-size re-chunking, and the chosen action while
// accumulating Stats (spec §4.5).
package pipeline

import (
	"context"
	"time"

	"github.com/3leaps/s3find/pkg/listing"
	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/predicate"
	"github.com/3leaps/s3find/pkg/stats"
	"github.com/3leaps/s3find/pkg/tagfetch"
)

// ChunkSize is the fixed batch size folded into the action (spec: 1,000).
const ChunkSize = 1000

// Action is one fold step: handle a batch. Any non-nil error is fatal
// and aborts the run; batches already handled are not rolled back, so
// per-item failures the run should survive are logged by the action
// itself and not returned.
type Action func(ctx context.Context, batch []*objectitem.Item) error

// Options configures one pipeline run.
type Options struct {
	Objects   *predicate.Chain
	Tags      *predicate.TagChain
	Fetcher   *tagfetch.Fetcher
	Limit     int // 0 means unbounded
	ChunkSize int // 0 uses ChunkSize
	Now       func() time.Time
}

// Run drives batches from src through the pipeline to action, returning
// accumulated Stats and the first fatal error encountered (from the
// source, or a fatal error from action; non-fatal per-item action errors
// are the action's own responsibility to log and swallow).
func Run(ctx context.Context, src <-chan listing.Batch, srcErrs <-chan error, opts Options, action Action) (stats.Stats, error) {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = ChunkSize
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	// The action runs on the caller's context: cancel below stops the
	// internal stages (tag fetch) once the cap is reached, and must not
	// cancel the calls the action makes for the items that made the cap.
	actionCtx := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := flatten(src)
	items = filterObjects(items, opts.Objects, now)

	if opts.Tags != nil && opts.Tags.Len() > 0 && opts.Fetcher != nil {
		tagged := opts.Fetcher.Run(ctx, items)
		items = filterTags(tagged, opts.Tags)
	}

	items = capLimit(items, opts.Limit, cancel)

	var total stats.Stats
	var fatalErr error

	batch := make([]*objectitem.Item, 0, chunkSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		total.Add(batch)
		if fatalErr == nil {
			if err := action(actionCtx, batch); err != nil {
				fatalErr = err
				cancel()
			}
		}
		batch = make([]*objectitem.Item, 0, chunkSize)
	}

	for it := range items {
		batch = append(batch, it)
		if len(batch) >= chunkSize {
			flush()
		}
	}
	flush()

	if fatalErr != nil {
		return total, fatalErr
	}
	if err := <-srcErrs; err != nil {
		return total, err
	}
	return total, nil
}

func flatten(src <-chan listing.Batch) <-chan *objectitem.Item {
	out := make(chan *objectitem.Item)
	go func() {
		defer close(out)
		for b := range src {
			for _, it := range b.Items {
				out <- it
			}
		}
	}()
	return out
}

func filterObjects(in <-chan *objectitem.Item, chain *predicate.Chain, now func() time.Time) <-chan *objectitem.Item {
	out := make(chan *objectitem.Item)
	go func() {
		defer close(out)
		for it := range in {
			if chain == nil || chain.Match(it, now()) {
				out <- it
			}
		}
	}()
	return out
}

func filterTags(in <-chan *objectitem.Item, chain *predicate.TagChain) <-chan *objectitem.Item {
	out := make(chan *objectitem.Item)
	go func() {
		defer close(out)
		for it := range in {
			if chain.Match(it) {
				out <- it
			}
		}
	}()
	return out
}

// capLimit passes through at most limit items (0 means unbounded), then
// cancels Run's internal context, which stops the tag-fetch stage, and
// drains and discards the rest of in. The listing source runs on the
// caller's context, so it keeps producing until it ends.
func capLimit(in <-chan *objectitem.Item, limit int, cancel context.CancelFunc) <-chan *objectitem.Item {
	if limit <= 0 {
		return in
	}
	out := make(chan *objectitem.Item)
	go func() {
		defer close(out)
		count := 0
		for it := range in {
			if count >= limit {
				continue
			}
			out <- it
			count++
			if count >= limit {
				cancel()
			}
		}
	}()
	return out
}
