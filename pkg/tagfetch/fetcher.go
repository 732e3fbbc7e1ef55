// Package tagfetch implements the bounded-concurrency tag-fetch stage:
// given a stream of items, populates each item's Tags field, retrying
// throttled requests with jittered exponential backoff.
package tagfetch

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/provider"
)

// Defaults, ported from the reference implementation's tag-fetch stage.
const (
	DefaultConcurrency = 50
	DefaultMaxRetries  = 3
	DefaultBaseDelay   = 100 * time.Millisecond
	DefaultMaxDelay    = 5 * time.Second
)

// Config tunes the fetcher's concurrency, retry budget, and backoff.
type Config struct {
	Concurrency int
	MaxRetries  int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// RateLimit, when non-nil, throttles the fetcher: each item waits on
	// it once, after taking a concurrency slot and before its first
	// request. Optional.
	RateLimit *rate.Limiter
}

func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	return c
}

// Counters tallies tag-fetch outcomes across a run.
type Counters struct {
	Success      atomic.Int64
	Failed       atomic.Int64
	Throttled    atomic.Int64
	AccessDenied atomic.Int64
}

// Fetcher populates Tags on items concurrently, bounded by Config.
type Fetcher struct {
	reader provider.TagReader
	cfg    Config
	Counters
}

// New builds a Fetcher.
func New(reader provider.TagReader, cfg Config) *Fetcher {
	return &Fetcher{reader: reader, cfg: cfg.withDefaults()}
}

// Run consumes in and produces an unordered stream of the same items with
// Tags populated. Items that already have non-nil Tags pass through
// untouched; delete markers and items with an empty key get an empty Tags
// map without an API call. None of these are counted.
func (f *Fetcher) Run(ctx context.Context, in <-chan *objectitem.Item) <-chan *objectitem.Item {
	out := make(chan *objectitem.Item)
	sem := make(chan struct{}, f.cfg.Concurrency)

	go func() {
		defer close(out)
		done := make(chan struct{})
		pending := 0

		emit := func(it *objectitem.Item) {
			select {
			case out <- it:
			case <-ctx.Done():
			}
		}

		for it := range in {
			if it.Tags != nil || it.IsDeleteMarker || it.Key == "" {
				if it.Tags == nil {
					it.Tags = map[string]string{}
				}
				emit(it)
				continue
			}

			pending++
			sem <- struct{}{}
			go func(item *objectitem.Item) {
				defer func() { <-sem; done <- struct{}{} }()
				f.fetchWithRetry(ctx, item)
				emit(item)
			}(it)
		}
		for i := 0; i < pending; i++ {
			<-done
		}
	}()

	return out
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, it *objectitem.Item) {
	if f.cfg.RateLimit != nil {
		_ = f.cfg.RateLimit.Wait(ctx)
	}

	for attempt := 0; ; attempt++ {
		tags, err := f.reader.GetObjectTagging(ctx, it.Bucket, it.Key, it.VersionID)
		if err == nil {
			it.Tags = tags
			if it.Tags == nil {
				it.Tags = map[string]string{}
			}
			f.Success.Add(1)
			return
		}

		switch classify(err) {
		case classAccessDenied:
			it.Tags = map[string]string{}
			f.AccessDenied.Add(1)
			return
		case classNotFound:
			it.Tags = map[string]string{}
			f.Failed.Add(1)
			return
		case classThrottled:
			f.Throttled.Add(1)
			if attempt >= f.cfg.MaxRetries {
				it.Tags = map[string]string{}
				f.Failed.Add(1)
				return
			}
			select {
			case <-time.After(backoff(attempt, f.cfg.BaseDelay, f.cfg.MaxDelay)):
			case <-ctx.Done():
				it.Tags = map[string]string{}
				return
			}
		default:
			it.Tags = map[string]string{}
			f.Failed.Add(1)
			return
		}
	}
}

type errorClass int

const (
	classAccessDenied errorClass = iota
	classNotFound
	classThrottled
	classAPIError
)

func classify(err error) errorClass {
	switch {
	case errors.Is(err, provider.ErrAccessDenied):
		return classAccessDenied
	case errors.Is(err, provider.ErrNotFound):
		return classNotFound
	case errors.Is(err, provider.ErrThrottled):
		return classThrottled
	default:
		return classAPIError
	}
}

// backoff computes min(base*2^attempt, max) + jitter in [0, delay/2).
func backoff(attempt int, base, max time.Duration) time.Duration {
	delay := base << attempt
	if delay > max || delay <= 0 {
		delay = max
	}
	if delay <= 0 {
		return 0
	}
	jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
	return delay + jitter
}
