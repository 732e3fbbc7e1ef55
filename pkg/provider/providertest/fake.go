// Package providertest offers a small in-memory fake implementing
// pkg/provider's interfaces, standing in for the fake storage backend the
// spec's end-to-end scenarios are described against.
package providertest

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/3leaps/s3find/pkg/provider"
)

// TagFetchResult lets a test script a sequence of responses for one
// key's tag fetch, to exercise TagFetcher's retry/backoff path.
type TagFetchResult struct {
	Err  error
	Tags map[string]string
}

// Fake is a minimal in-memory stand-in for an S3 bucket.
type Fake struct {
	mu sync.Mutex

	objects []provider.ObjectVersion
	bodies  map[string][]byte // key -> body, keyed by "key" or "key@version"
	tags    map[string]map[string]string

	// tagScript, when set for a key, is consumed in order by
	// GetObjectTagging, letting a test simulate throttling followed by
	// eventual success.
	tagScript map[string][]TagFetchResult

	tagFetchCalls atomic.Int64

	DeleteCalls []provider.DeleteTarget
	CopyCalls   []CopyCall
	ACLCalls    []string
	RestoreCalls []RestoreCall
	restoreErrs map[string]error
}

type CopyCall struct {
	DestBucket, DestKey, CopySource, StorageClass string
}

type RestoreCall struct {
	Key, VersionID, Tier string
	Days                 int
}

// New creates an empty Fake.
func New() *Fake {
	return &Fake{
		bodies:    map[string][]byte{},
		tags:      map[string]map[string]string{},
		tagScript: map[string][]TagFetchResult{},
	}
}

// Seed adds an object version. IsLatest defaults apply per the caller;
// this fake does not infer latest-ness automatically.
func (f *Fake) Seed(key, versionID string, isLatest, isDeleteMarker bool, size int64, storageClass string, lastModified time.Time, tags map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects = append(f.objects, provider.ObjectVersion{
		ObjectSummary: provider.ObjectSummary{Key: key, Size: size, StorageClass: storageClass, LastModified: lastModified},
		VersionID:      versionID,
		IsLatest:       isLatest,
		IsDeleteMarker: isDeleteMarker,
	})
	if tags != nil {
		f.tags[tagKey(key, versionID)] = tags
	}
}

// SeedBody sets the downloadable body for a key (optionally a version),
// for GetObject.
func (f *Fake) SeedBody(key, versionID string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[tagKey(key, versionID)] = body
}

// ListWithDelimiter groups the fake's current objects by the first
// delimiter-separated segment after prefix.
func (f *Fake) ListWithDelimiter(ctx context.Context, opts provider.ListWithDelimiterOptions) (*provider.ListWithDelimiterResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := map[string]bool{}
	var objects []provider.ObjectSummary
	var prefixes []string
	for _, v := range f.objects {
		if v.IsDeleteMarker || !v.IsLatest || !strings.HasPrefix(v.Key, opts.Prefix) {
			continue
		}
		rest := v.Key[len(opts.Prefix):]
		if idx := strings.Index(rest, opts.Delimiter); idx >= 0 {
			cp := opts.Prefix + rest[:idx+len(opts.Delimiter)]
			if !seen[cp] {
				seen[cp] = true
				prefixes = append(prefixes, cp)
			}
			continue
		}
		objects = append(objects, v.ObjectSummary)
	}
	sort.Strings(prefixes)
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return &provider.ListWithDelimiterResult{Objects: objects, CommonPrefixes: prefixes}, nil
}

// ScriptTagFetch queues a sequence of tag-fetch outcomes for key (no
// version). Each GetObjectTagging call for that key consumes the next
// scripted outcome; once exhausted, the last outcome repeats.
func (f *Fake) ScriptTagFetch(key string, results ...TagFetchResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagScript[key] = results
}

func tagKey(key, versionID string) string {
	if versionID == "" {
		return key
	}
	return key + "@" + versionID
}

func (f *Fake) List(ctx context.Context, opts provider.ListOptions) (*provider.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []provider.ObjectSummary
	for _, v := range f.objects {
		if v.IsDeleteMarker || !v.IsLatest {
			continue
		}
		if !strings.HasPrefix(v.Key, opts.Prefix) {
			continue
		}
		all = append(all, v.ObjectSummary)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return paginateSummaries(all, opts.ContinuationToken, opts.MaxKeys)
}

func (f *Fake) ListVersions(ctx context.Context, opts provider.ListVersionsOptions) (*provider.ListVersionsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []provider.ObjectVersion
	for _, v := range f.objects {
		if !strings.HasPrefix(v.Key, opts.Prefix) {
			continue
		}
		all = append(all, v)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Key != all[j].Key {
			return all[i].Key < all[j].Key
		}
		return all[i].LastModified.After(all[j].LastModified)
	})
	return &provider.ListVersionsResult{Versions: all}, nil
}

func (f *Fake) GetObjectTagging(ctx context.Context, bucket, key, versionID string) (map[string]string, error) {
	f.tagFetchCalls.Add(1)

	f.mu.Lock()
	script, scripted := f.tagScript[key]
	if scripted && len(script) > 0 {
		next := script[0]
		if len(script) > 1 {
			f.tagScript[key] = script[1:]
		}
		f.mu.Unlock()
		if next.Err != nil {
			return nil, next.Err
		}
		return next.Tags, nil
	}
	tags := f.tags[tagKey(key, versionID)]
	f.mu.Unlock()
	return tags, nil
}

// TagFetchCallCount reports how many GetObjectTagging calls were made,
// for asserting TagFetcher's success/retry counters against the fake.
func (f *Fake) TagFetchCallCount() int64 { return f.tagFetchCalls.Load() }

func (f *Fake) PutObjectTagging(ctx context.Context, bucket, key, versionID string, tags map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags[tagKey(key, versionID)] = tags
	return nil
}

func (f *Fake) DeleteObjects(ctx context.Context, bucket string, targets []provider.DeleteTarget) ([]provider.DeleteFailure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, targets...)

	remaining := f.objects[:0:0]
	for _, v := range f.objects {
		drop := false
		for _, t := range targets {
			if v.Key == t.Key && (t.VersionID == "" || t.VersionID == v.VersionID) {
				drop = true
				break
			}
		}
		if !drop {
			remaining = append(remaining, v)
		}
	}
	f.objects = remaining
	return nil, nil
}

func (f *Fake) CopyObject(ctx context.Context, destBucket, destKey, copySource, storageClass string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CopyCalls = append(f.CopyCalls, CopyCall{DestBucket: destBucket, DestKey: destKey, CopySource: copySource, StorageClass: storageClass})
	f.objects = append(f.objects, provider.ObjectVersion{
		ObjectSummary: provider.ObjectSummary{Key: destKey, StorageClass: storageClass},
		IsLatest:      true,
	})
	return nil
}

func (f *Fake) GetObject(ctx context.Context, bucket, key, versionID string) (io.ReadCloser, int64, error) {
	f.mu.Lock()
	body := f.bodies[tagKey(key, versionID)]
	f.mu.Unlock()
	return io.NopCloser(bytes.NewReader(body)), int64(len(body)), nil
}

func (f *Fake) PutPublicReadACL(ctx context.Context, bucket, key, versionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ACLCalls = append(f.ACLCalls, tagKey(key, versionID))
	return nil
}

func (f *Fake) RestoreObject(ctx context.Context, bucket, key, versionID string, days int, tier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RestoreCalls = append(f.RestoreCalls, RestoreCall{Key: key, VersionID: versionID, Days: days, Tier: tier})
	if f.restoreErrs != nil {
		if err, ok := f.restoreErrs[key]; ok {
			return err
		}
	}
	return nil
}

// ScriptRestoreError makes a future RestoreObject call for key return err,
// letting a test exercise the restore handler's informational-error
// classification.
func (f *Fake) ScriptRestoreError(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.restoreErrs == nil {
		f.restoreErrs = map[string]error{}
	}
	f.restoreErrs[key] = err
}

func (f *Fake) Close() error { return nil }

func paginateSummaries(all []provider.ObjectSummary, token string, maxKeys int) (*provider.ListResult, error) {
	if maxKeys <= 0 {
		maxKeys = 1000
	}
	start := 0
	if token != "" {
		for i, o := range all {
			if o.Key == token {
				start = i + 1
				break
			}
		}
	}
	end := start + maxKeys
	if end > len(all) {
		end = len(all)
	}
	page := all[start:end]
	result := &provider.ListResult{Objects: page}
	if end < len(all) {
		result.IsTruncated = true
		result.ContinuationToken = page[len(page)-1].Key
	}
	return result, nil
}
