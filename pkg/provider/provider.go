// Package provider abstracts the S3 operations this tool needs: listing
// (flat, delimiter-hierarchical, version-aware) plus the mutating calls
// behind every action handler (tagging, bulk delete, server-side copy,
// ACL, restore). The core Provider interface stays minimal; everything
// else is an optional capability interface detected with a type
// assertion, so a fake used in tests only has to implement what it needs.
package provider

import (
	"context"
	"time"
)

// Provider is the minimal listing surface every backend must implement.
type Provider interface {
	// List returns one page of objects under Prefix.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Close releases any resources held by the provider.
	Close() error
}

// ListOptions configures a flat List call.
type ListOptions struct {
	Bucket            string
	Prefix            string
	ContinuationToken string
	MaxKeys           int
}

// ListResult is one page of a flat listing.
type ListResult struct {
	Objects           []ObjectSummary
	ContinuationToken string
	IsTruncated       bool
}

// ObjectSummary is the metadata returned by List/ListWithDelimiter.
type ObjectSummary struct {
	Key          string
	Size         int64
	ETag         string
	Owner        string
	StorageClass string
	LastModified time.Time
}

// ProviderType identifies a storage backend.
type ProviderType string

// ProviderS3 is the only backend this tool currently implements.
const ProviderS3 ProviderType = "s3"

func (p ProviderType) String() string { return string(p) }
