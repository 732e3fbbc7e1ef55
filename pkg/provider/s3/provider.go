package s3

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/3leaps/s3find/pkg/provider"
)

// Provider implements provider.Provider and its optional capabilities
// against AWS S3 and S3-compatible stores.
type Provider struct {
	client  *s3.Client
	maxKeys int
}

var (
	_ provider.Provider         = (*Provider)(nil)
	_ provider.DelimiterLister  = (*Provider)(nil)
	_ provider.VersionLister    = (*Provider)(nil)
	_ provider.TagReader        = (*Provider)(nil)
	_ provider.TagWriter        = (*Provider)(nil)
	_ provider.BulkDeleter      = (*Provider)(nil)
	_ provider.ServerSideCopier = (*Provider)(nil)
	_ provider.ObjectGetter     = (*Provider)(nil)
	_ provider.ACLSetter        = (*Provider)(nil)
	_ provider.Restorer         = (*Provider)(nil)
)

// New builds a Provider, using the AWS SDK v2 default credential chain
// unless Config supplies explicit credentials.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, &provider.ProviderError{Op: "New", Provider: provider.ProviderS3, Bucket: cfg.Bucket, Err: err}
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
		},
	}
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	maxKeys := cfg.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	return &Provider{
		client:  s3.NewFromConfig(awsCfg, s3Opts...),
		maxKeys: maxKeys,
	}, nil
}

func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	awsCfg.Region = resolveRegion(cfg.Endpoint, awsCfg.Region)
	return awsCfg, nil
}

// List returns one page of flat ListObjectsV2 results.
func (p *Provider) List(ctx context.Context, opts provider.ListOptions) (*provider.ListResult, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(opts.Bucket),
		MaxKeys: aws.Int32(int32(clampMaxKeys(opts.MaxKeys, p.maxKeys))),
	}
	if opts.Prefix != "" {
		input.Prefix = aws.String(opts.Prefix)
	}
	if opts.ContinuationToken != "" {
		input.ContinuationToken = aws.String(opts.ContinuationToken)
	}

	out, err := p.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, p.wrapError("List", opts.Bucket, "", "", err)
	}

	result := &provider.ListResult{
		Objects:     summarize(out.Contents),
		IsTruncated: aws.ToBool(out.IsTruncated),
	}
	if out.NextContinuationToken != nil {
		result.ContinuationToken = *out.NextContinuationToken
	}
	return result, nil
}

// ListWithDelimiter returns one page of delimiter-grouped results:
// objects directly under Prefix plus the immediate child CommonPrefixes.
func (p *Provider) ListWithDelimiter(ctx context.Context, opts provider.ListWithDelimiterOptions) (*provider.ListWithDelimiterResult, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(opts.Bucket),
		Delimiter: aws.String(opts.Delimiter),
		MaxKeys:   aws.Int32(int32(clampMaxKeys(opts.MaxKeys, p.maxKeys))),
	}
	if opts.Prefix != "" {
		input.Prefix = aws.String(opts.Prefix)
	}
	if opts.ContinuationToken != "" {
		input.ContinuationToken = aws.String(opts.ContinuationToken)
	}

	out, err := p.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, p.wrapError("ListWithDelimiter", opts.Bucket, "", "", err)
	}

	prefixes := make([]string, 0, len(out.CommonPrefixes))
	for _, cp := range out.CommonPrefixes {
		prefixes = append(prefixes, aws.ToString(cp.Prefix))
	}

	result := &provider.ListWithDelimiterResult{
		Objects:        summarize(out.Contents),
		CommonPrefixes: prefixes,
		IsTruncated:    aws.ToBool(out.IsTruncated),
	}
	if out.NextContinuationToken != nil {
		result.ContinuationToken = *out.NextContinuationToken
	}
	return result, nil
}

// ListVersions returns one page of ListObjectVersions results, merging
// object versions and delete markers and sorting them key-ascending,
// then last-modified-descending within each key, matching the listing
// order §4.1 requires.
func (p *Provider) ListVersions(ctx context.Context, opts provider.ListVersionsOptions) (*provider.ListVersionsResult, error) {
	input := &s3.ListObjectVersionsInput{
		Bucket:  aws.String(opts.Bucket),
		MaxKeys: aws.Int32(int32(clampMaxKeys(opts.MaxKeys, p.maxKeys))),
	}
	if opts.Prefix != "" {
		input.Prefix = aws.String(opts.Prefix)
	}
	if opts.KeyMarker != "" {
		input.KeyMarker = aws.String(opts.KeyMarker)
	}
	if opts.VersionIDMarker != "" {
		input.VersionIdMarker = aws.String(opts.VersionIDMarker)
	}

	out, err := p.client.ListObjectVersions(ctx, input)
	if err != nil {
		return nil, p.wrapError("ListVersions", opts.Bucket, "", "", err)
	}

	versions := make([]provider.ObjectVersion, 0, len(out.Versions)+len(out.DeleteMarkers))
	for _, v := range out.Versions {
		versions = append(versions, provider.ObjectVersion{
			ObjectSummary: provider.ObjectSummary{
				Key:          aws.ToString(v.Key),
				Size:         aws.ToInt64(v.Size),
				ETag:         cleanETag(aws.ToString(v.ETag)),
				Owner:        ownerName(v.Owner),
				StorageClass: string(v.StorageClass),
				LastModified: aws.ToTime(v.LastModified),
			},
			VersionID: aws.ToString(v.VersionId),
			IsLatest:  aws.ToBool(v.IsLatest),
		})
	}
	for _, m := range out.DeleteMarkers {
		versions = append(versions, provider.ObjectVersion{
			ObjectSummary: provider.ObjectSummary{
				Key:          aws.ToString(m.Key),
				LastModified: aws.ToTime(m.LastModified),
			},
			VersionID:      aws.ToString(m.VersionId),
			IsLatest:       aws.ToBool(m.IsLatest),
			IsDeleteMarker: true,
		})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].Key != versions[j].Key {
			return versions[i].Key < versions[j].Key
		}
		return versions[i].LastModified.After(versions[j].LastModified)
	})

	result := &provider.ListVersionsResult{
		Versions:    versions,
		IsTruncated: aws.ToBool(out.IsTruncated),
	}
	if out.NextKeyMarker != nil {
		result.NextKeyMarker = *out.NextKeyMarker
	}
	if out.NextVersionIdMarker != nil {
		result.NextVersionIDMarker = *out.NextVersionIdMarker
	}
	return result, nil
}

// GetObjectTagging fetches the tag set for key, optionally a specific
// version.
func (p *Provider) GetObjectTagging(ctx context.Context, bucket, key, versionID string) (map[string]string, error) {
	input := &s3.GetObjectTaggingInput{Bucket: aws.String(bucket), Key: aws.String(key)}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	out, err := p.client.GetObjectTagging(ctx, input)
	if err != nil {
		return nil, p.wrapError("GetObjectTagging", bucket, key, versionID, err)
	}
	tags := make(map[string]string, len(out.TagSet))
	for _, t := range out.TagSet {
		tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return tags, nil
}

// PutObjectTagging replaces the tag set for key, optionally a specific
// version.
func (p *Provider) PutObjectTagging(ctx context.Context, bucket, key, versionID string, tags map[string]string) error {
	tagSet := make([]types.Tag, 0, len(tags))
	for k, v := range tags {
		tagSet = append(tagSet, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	input := &s3.PutObjectTaggingInput{
		Bucket:  aws.String(bucket),
		Key:     aws.String(key),
		Tagging: &types.Tagging{TagSet: tagSet},
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	_, err := p.client.PutObjectTagging(ctx, input)
	if err != nil {
		return p.wrapError("PutObjectTagging", bucket, key, versionID, err)
	}
	return nil
}

// DeleteObjects issues a single bulk delete for targets, which may carry
// a version ID each. Per-key failures are returned rather than treated
// as a fatal error: the caller decides how to report them.
func (p *Provider) DeleteObjects(ctx context.Context, bucket string, targets []provider.DeleteTarget) ([]provider.DeleteFailure, error) {
	ids := make([]types.ObjectIdentifier, 0, len(targets))
	for _, t := range targets {
		id := types.ObjectIdentifier{Key: aws.String(t.Key)}
		if t.VersionID != "" {
			id.VersionId = aws.String(t.VersionID)
		}
		ids = append(ids, id)
	}

	out, err := p.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return nil, p.wrapError("DeleteObjects", bucket, "", "", err)
	}

	failures := make([]provider.DeleteFailure, 0, len(out.Errors))
	for _, e := range out.Errors {
		failures = append(failures, provider.DeleteFailure{
			Key:       aws.ToString(e.Key),
			VersionID: aws.ToString(e.VersionId),
			Message:   aws.ToString(e.Message),
		})
	}
	return failures, nil
}

// CopyObject performs a server-side copy. copySource is the caller-built,
// URL-encoded "bucket/key[?versionId=...]" value; storageClass may be
// empty to preserve the source's storage class.
func (p *Provider) CopyObject(ctx context.Context, destBucket, destKey, copySource, storageClass string) error {
	input := &s3.CopyObjectInput{
		Bucket:            aws.String(destBucket),
		Key:               aws.String(destKey),
		CopySource:        aws.String(copySource),
		MetadataDirective: types.MetadataDirectiveCopy,
	}
	if storageClass != "" {
		input.StorageClass = types.StorageClass(storageClass)
	}
	_, err := p.client.CopyObject(ctx, input)
	if err != nil {
		return p.wrapError("CopyObject", destBucket, destKey, "", err)
	}
	return nil
}

// GetObject downloads the body of key, optionally a specific version.
func (p *Provider) GetObject(ctx context.Context, bucket, key, versionID string) (io.ReadCloser, int64, error) {
	input := &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	out, err := p.client.GetObject(ctx, input)
	if err != nil {
		return nil, 0, p.wrapError("GetObject", bucket, key, versionID, err)
	}
	return out.Body, aws.ToInt64(out.ContentLength), nil
}

// PutPublicReadACL applies the canned public-read ACL.
func (p *Provider) PutPublicReadACL(ctx context.Context, bucket, key, versionID string) error {
	input := &s3.PutObjectAclInput{Bucket: aws.String(bucket), Key: aws.String(key), ACL: types.ObjectCannedACLPublicRead}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	_, err := p.client.PutObjectAcl(ctx, input)
	if err != nil {
		return p.wrapError("PutObjectAcl", bucket, key, versionID, err)
	}
	return nil
}

// RestoreObject requests restoration of a cold-tier object for the given
// number of days at the given Glacier tier.
func (p *Provider) RestoreObject(ctx context.Context, bucket, key, versionID string, days int, tier string) error {
	input := &s3.RestoreObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		RestoreRequest: &types.RestoreRequest{
			Days:                 aws.Int32(int32(days)),
			GlacierJobParameters: &types.GlacierJobParameters{Tier: types.Tier(tier)},
		},
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	_, err := p.client.RestoreObject(ctx, input)
	if err != nil {
		return p.wrapError("RestoreObject", bucket, key, versionID, err)
	}
	return nil
}

// Close releases any resources held by the provider. The S3 client needs
// none, but this satisfies provider.Provider.
func (p *Provider) Close() error { return nil }

func summarize(contents []types.Object) []provider.ObjectSummary {
	out := make([]provider.ObjectSummary, 0, len(contents))
	for _, obj := range contents {
		out = append(out, provider.ObjectSummary{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			ETag:         cleanETag(aws.ToString(obj.ETag)),
			Owner:        ownerName(obj.Owner),
			StorageClass: string(obj.StorageClass),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	return out
}

func ownerName(owner *types.Owner) string {
	if owner == nil {
		return ""
	}
	return aws.ToString(owner.DisplayName)
}

func cleanETag(etag string) string {
	return strings.Trim(etag, "\"")
}

// wrapError classifies an S3/smithy error into a provider sentinel error.
// RestoreAlreadyInProgress and InvalidObjectState map onto the matching
// provider sentinels so the restore handler can treat them as
// informational rather than fatal (spec §4.6 Restore) without depending
// on this package.
func (p *Provider) wrapError(op, bucket, key, versionID string, err error) error {
	wrapped := &provider.ProviderError{Op: op, Provider: provider.ProviderS3, Bucket: bucket, Key: key, VersionID: versionID, Err: err}

	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket
	switch {
	case errors.As(err, &notFound), errors.As(err, &noSuchKey):
		wrapped.Err = provider.ErrNotFound
		return wrapped
	case errors.As(err, &noSuchBucket):
		wrapped.Err = provider.ErrBucketNotFound
		return wrapped
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			wrapped.Err = provider.ErrNotFound
		case "NoSuchBucket":
			wrapped.Err = provider.ErrBucketNotFound
		case "AccessDenied", "Forbidden":
			wrapped.Err = provider.ErrAccessDenied
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			wrapped.Err = provider.ErrInvalidCredentials
		case "SlowDown", "Throttling", "RequestLimitExceeded":
			wrapped.Err = provider.ErrThrottled
		case "ServiceUnavailable", "InternalError":
			wrapped.Err = provider.ErrProviderUnavailable
		case "RestoreAlreadyInProgress":
			wrapped.Err = provider.ErrRestoreAlreadyInProgress
		case "InvalidObjectState":
			wrapped.Err = provider.ErrInvalidObjectState
		}
		return wrapped
	}
	return wrapped
}
