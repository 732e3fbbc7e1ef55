package provider

import (
	"context"
	"io"
	"time"
)

// Optional provider capabilities, detected via type assertion against a
// concrete Provider. Keeping these narrow (one verb or closely related
// pair per interface) means a fake provider used in tests only needs to
// implement the handful an individual test actually exercises.

// DelimiterLister supports hierarchical, depth-bounded traversal: objects
// directly under Prefix plus the immediate child CommonPrefixes.
type DelimiterLister interface {
	ListWithDelimiter(ctx context.Context, opts ListWithDelimiterOptions) (*ListWithDelimiterResult, error)
}

type ListWithDelimiterOptions struct {
	Bucket            string
	Prefix            string
	Delimiter         string
	ContinuationToken string
	MaxKeys           int
}

type ListWithDelimiterResult struct {
	Objects           []ObjectSummary
	CommonPrefixes    []string
	ContinuationToken string
	IsTruncated       bool
}

// VersionLister supports version-aware enumeration: every version of
// every object under Prefix, plus delete markers.
type VersionLister interface {
	ListVersions(ctx context.Context, opts ListVersionsOptions) (*ListVersionsResult, error)
}

type ListVersionsOptions struct {
	Bucket              string
	Prefix              string
	KeyMarker           string
	VersionIDMarker     string
	MaxKeys             int
}

type ObjectVersion struct {
	ObjectSummary
	VersionID      string
	IsLatest       bool
	IsDeleteMarker bool
}

type ListVersionsResult struct {
	Versions            []ObjectVersion
	NextKeyMarker       string
	NextVersionIDMarker string
	IsTruncated         bool
}

// TagReader fetches the tag set for an object (optionally a specific
// version).
type TagReader interface {
	GetObjectTagging(ctx context.Context, bucket, key, versionID string) (map[string]string, error)
}

// TagWriter replaces the tag set for an object (optionally a specific
// version).
type TagWriter interface {
	PutObjectTagging(ctx context.Context, bucket, key, versionID string, tags map[string]string) error
}

// BulkDeleter deletes many keys (optionally versioned) in one request.
type BulkDeleter interface {
	DeleteObjects(ctx context.Context, bucket string, targets []DeleteTarget) ([]DeleteFailure, error)
}

type DeleteTarget struct {
	Key       string
	VersionID string
}

type DeleteFailure struct {
	Key       string
	VersionID string
	Message   string
}

// ServerSideCopier performs a server-side CopyObject, optionally changing
// storage class. copySource is the already-built, URL-encoded
// "bucket/key[?versionId=...]" value.
type ServerSideCopier interface {
	CopyObject(ctx context.Context, destBucket, destKey, copySource, storageClass string) error
}

// ObjectGetter downloads an object body, optionally a specific version.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key, versionID string) (body io.ReadCloser, contentLength int64, err error)
}

// ACLSetter applies a canned ACL to an object, optionally a specific
// version.
type ACLSetter interface {
	PutPublicReadACL(ctx context.Context, bucket, key, versionID string) error
}

// Restorer requests restoration of a cold-tier object from archival
// storage.
type Restorer interface {
	RestoreObject(ctx context.Context, bucket, key, versionID string, days int, tier string) error
}

// Clock is a time-source function type. Nothing in this module uses it:
// mtime predicates take their reference instant from pipeline.Options.Now,
// and stats do not read the clock.
type Clock func() time.Time
