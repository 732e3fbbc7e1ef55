// Package cmd wires the s3find Cobra command tree: a root command
// carrying the AWS connection, object/tag filter, and traversal flags
// shared by every verb, and one subcommand per action (spec §4.6/§6).
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/3leaps/s3find/internal/config"
	"github.com/3leaps/s3find/internal/errs"
	"github.com/3leaps/s3find/internal/observability"
	"github.com/3leaps/s3find/pkg/action"
	"github.com/3leaps/s3find/pkg/listing"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/predicate"
	"github.com/3leaps/s3find/pkg/provider"
	"github.com/3leaps/s3find/pkg/provider/s3"
	"github.com/3leaps/s3find/pkg/s3path"
	"github.com/3leaps/s3find/pkg/tagfetch"
)

var rootCmd = &cobra.Command{
	Use:   "s3find",
	Short: "find(1) for S3: filter objects by name, size, mtime, tags and storage class, then act on the results",
	Long: `s3find walks an s3://bucket/prefix, filters the objects it finds against
name/size/mtime/tag/storage-class predicates, and applies an action
(print, delete, download, copy, move, tag, restore, ...) to the ones
that match.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := observability.NewLogger(logLevel)
		if err != nil {
			return errs.NewConfigError("invalid --log-level", err)
		}
		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	observability.CLILogger.Sync() //nolint:errcheck
	return errs.ExitCode(err)
}

// Persistent flags: AWS connection.
var (
	flagAccessKey      string
	flagSecretKey      string
	flagRegion         string
	flagEndpointURL    string
	flagForcePathStyle bool
	flagProfile        string
	logLevel           string
)

// Persistent flags: object and tag filters.
var (
	flagName           []string
	flagIName          []string
	flagRegex          []string
	flagSize           []string
	flagMtime          []string
	flagStorageClasses []string
	flagTag            []string
	flagTagExists      []string
	flagTagConcurrency int
)

// Persistent flags: traversal.
var (
	flagMaxDepth    int
	flagAllVersions bool
	flagPageSize    int
	flagLimit       int
	flagSummarize   bool
)

// maxDepthUnset is the --maxdepth default, distinct from an explicit
// 0 (root-level keys only) so selectListing can tell "flag never
// passed" from "flag passed as 0" apart.
const maxDepthUnset = -1

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&flagAccessKey, "aws-access-key", "", "AWS access key ID (defaults to the SDK credential chain)")
	pf.StringVar(&flagSecretKey, "aws-secret-key", "", "AWS secret access key (defaults to the SDK credential chain)")
	pf.StringVar(&flagRegion, "aws-region", "", "AWS region (defaults to the SDK credential chain)")
	pf.StringVar(&flagEndpointURL, "endpoint-url", "", "custom S3-compatible endpoint (MinIO, Wasabi, ...)")
	pf.BoolVar(&flagForcePathStyle, "force-path-style", false, "use path-style addressing, required by most S3-compatible stores")
	pf.StringVar(&flagProfile, "profile", "", "named AWS profile")
	pf.StringVar(&logLevel, "log-level", "warn", "diagnostic log level: debug, info, warn, error")

	pf.StringArrayVar(&flagName, "name", nil, "glob matched against the object key (repeatable, ANDed)")
	pf.StringArrayVar(&flagIName, "iname", nil, "case-insensitive glob matched against the object key (repeatable, ANDed)")
	pf.StringArrayVar(&flagRegex, "regex", nil, "regular expression matched against the object key (repeatable, ANDed)")
	pf.StringArrayVar(&flagSize, "size", nil, "size filter, e.g. +100M, -1k, 500 (repeatable, ANDed)")
	pf.StringArrayVar(&flagMtime, "mtime", nil, "modification-time filter, e.g. +7d, -1h; a bare number is seconds, units s/m/h/d/w (repeatable, ANDed)")
	pf.StringArrayVar(&flagStorageClasses, "storage-class", nil, "storage class to match, e.g. GLACIER (repeatable, ANDed)")
	pf.StringArrayVar(&flagTag, "tag", nil, "key:value tag filter (repeatable, ANDed)")
	pf.StringArrayVar(&flagTagExists, "tag-exists", nil, "tag key that must be present (repeatable, ANDed)")
	pf.IntVar(&flagTagConcurrency, "tag-concurrency", 16, "concurrent GetObjectTagging requests when tag filters are set")

	pf.IntVar(&flagMaxDepth, "maxdepth", maxDepthUnset, "descend at most this many path segments below the prefix (unset means an unbounded flat listing; 0 lists only keys with no '/' after the prefix)")
	pf.BoolVar(&flagAllVersions, "all-versions", false, "enumerate every object version and delete marker instead of current objects only")
	pf.IntVar(&flagPageSize, "page-size", 0, "page size for provider list calls (0 uses the provider default)")
	pf.IntVar(&flagLimit, "limit", 0, "stop after this many matched objects (0 means unbounded)")
	pf.BoolVar(&flagSummarize, "summarize", false, "print a byte/count summary after the run")
}

// RootCmd exposes the root command. cmd/s3find/main.go does not use it;
// it runs the tree through Execute.
func RootCmd() *cobra.Command { return rootCmd }

// runContext bundles everything a verb's RunE needs after argument
// parsing: the provider, the built predicate chains, and the listing
// source already selected from the traversal flags.
type runContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	path    s3path.Path
	prov    *s3.Provider
	actionC *action.Context
	batches <-chan listing.Batch
	srcErrs <-chan error
	opts    pipeline.Options
}

// prepare parses uri, builds the provider and predicate chains from the
// persistent flags, and selects the listing source. Every verb's RunE
// calls this first and then runs pipeline.Run with its own action.
func prepare(cmd *cobra.Command, uri string) (*runContext, error) {
	path, err := s3path.Parse(uri)
	if err != nil {
		return nil, errs.NewConfigError("invalid s3 path", err)
	}

	aws := config.Resolve(config.Flags{
		AccessKeyID:     flagAccessKey,
		SecretAccessKey: flagSecretKey,
		Region:          flagRegion,
		EndpointURL:     flagEndpointURL,
		ForcePathStyle:  flagForcePathStyle,
		Profile:         flagProfile,
	})
	if err := aws.Validate(); err != nil {
		return nil, errs.NewConfigError("invalid AWS flags", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())

	prov, err := s3.New(ctx, s3.Config{
		Bucket:          path.Bucket,
		Region:          aws.Region,
		Endpoint:        aws.EndpointURL,
		Profile:         aws.Profile,
		AccessKeyID:     aws.AccessKeyID,
		SecretAccessKey: aws.SecretAccessKey,
		ForcePathStyle:  aws.ForcePathStyle,
		MaxKeys:         flagPageSize,
	})
	if err != nil {
		cancel()
		return nil, errs.NewConfigError("failed to build S3 provider", err)
	}

	objects, err := buildObjectChain()
	if err != nil {
		cancel()
		return nil, errs.NewConfigError("invalid object filter", err)
	}
	tags, err := buildTagChain()
	if err != nil {
		cancel()
		return nil, errs.NewConfigError("invalid tag filter", err)
	}

	batches, srcErrs, err := selectListing(ctx, prov, path)
	if err != nil {
		cancel()
		return nil, errs.NewConfigError("invalid traversal flags", err)
	}

	var fetcher *tagfetch.Fetcher
	if tags.Len() > 0 {
		reader, ok := provider.Provider(prov).(provider.TagReader)
		if !ok {
			cancel()
			return nil, errs.NewConfigError("provider does not support tag filters", nil)
		}
		fetcher = tagfetch.New(reader, tagfetch.Config{
			Concurrency: flagTagConcurrency,
			RateLimit:   rate.NewLimiter(rate.Limit(flagTagConcurrency*4), flagTagConcurrency*4),
		})
		if flagLimit == 0 {
			observability.CLILogger.Warn("tag filters add one API call per surviving object with no --limit set")
		}
	}

	return &runContext{
		ctx:    ctx,
		cancel: cancel,
		path:   path,
		prov:   prov,
		actionC: &action.Context{
			Provider: prov,
			Bucket:   path.Bucket,
			Region:   aws.Region,
			Stdout:   cmd.OutOrStdout(),
			Logger:   observability.CLILogger,
		},
		batches: batches,
		srcErrs: srcErrs,
		opts: pipeline.Options{
			Objects: objects,
			Tags:    tags,
			Fetcher: fetcher,
			Limit:   flagLimit,
			Now:     time.Now,
		},
	}, nil
}

func buildObjectChain() (*predicate.Chain, error) {
	chain := &predicate.Chain{}
	for _, pattern := range flagName {
		chain.Add(predicate.NewNameGlob(pattern))
	}
	for _, pattern := range flagIName {
		chain.Add(predicate.NewINameGlob(pattern))
	}
	for _, pattern := range flagRegex {
		p, err := predicate.NewRegex(pattern)
		if err != nil {
			return nil, fmt.Errorf("--regex %q: %w", pattern, err)
		}
		chain.Add(p)
	}
	for _, spec := range flagSize {
		p, err := predicate.ParseSize(spec)
		if err != nil {
			return nil, fmt.Errorf("--size %q: %w", spec, err)
		}
		chain.Add(p)
	}
	for _, spec := range flagMtime {
		p, err := predicate.ParseMtime(spec)
		if err != nil {
			return nil, fmt.Errorf("--mtime %q: %w", spec, err)
		}
		chain.Add(p)
	}
	for _, class := range flagStorageClasses {
		chain.Add(predicate.NewStorageClass(class))
	}
	return chain, nil
}

func buildTagChain() (*predicate.TagChain, error) {
	chain := &predicate.TagChain{}
	for _, spec := range flagTag {
		key, value, ok := splitTag(spec)
		if !ok {
			return nil, fmt.Errorf("--tag %q: expected key:value", spec)
		}
		chain.Add(predicate.NewTagEquals(key, value))
	}
	for _, key := range flagTagExists {
		chain.Add(predicate.NewTagExists(key))
	}
	return chain, nil
}

func splitTag(spec string) (key, value string, ok bool) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == ':' {
			return spec[:i], spec[i+1:], true
		}
	}
	return "", "", false
}

// listingMode is the traversal mode selected from the --all-versions
// and --maxdepth flags.
type listingMode int

const (
	modeFlat listingMode = iota
	modeDelimiter
	modeVersions
)

// chooseListingMode resolves the traversal-flag combination to a single
// mode, reporting whether --maxdepth was ignored because --all-versions
// forces a flat (non-hierarchical) walk (spec §9, resolved Open Question:
// version listing wins, depth bound is ignored, a warning is emitted).
func chooseListingMode(maxDepth int, allVersions bool) (mode listingMode, maxDepthIgnored bool) {
	switch {
	case allVersions:
		return modeVersions, maxDepth != maxDepthUnset
	case maxDepth != maxDepthUnset:
		return modeDelimiter, false
	default:
		return modeFlat, false
	}
}

func selectListing(ctx context.Context, prov *s3.Provider, path s3path.Path) (<-chan listing.Batch, <-chan error, error) {
	pageSize := flagPageSize
	mode, maxDepthIgnored := chooseListingMode(flagMaxDepth, flagAllVersions)
	if maxDepthIgnored {
		observability.CLILogger.Warn("--all-versions ignores --maxdepth; version listing is always flat",
			zap.Int("maxdepth", flagMaxDepth))
	}
	switch mode {
	case modeVersions:
		batches, errCh := listing.Versions(ctx, prov, path.Bucket, path.Prefix, pageSize)
		return batches, errCh, nil
	case modeDelimiter:
		batches, errCh := listing.Delimiter(ctx, prov, path.Bucket, path.Prefix, flagMaxDepth, pageSize)
		return batches, errCh, nil
	default:
		batches, errCh := listing.Flat(ctx, prov, path.Bucket, path.Prefix, pageSize)
		return batches, errCh, nil
	}
}

// run executes act against rc and prints the summary line when
// --summarize is set. Every verb's RunE ends by calling this.
func run(rc *runContext, act pipeline.Action) error {
	defer rc.cancel()
	defer rc.prov.Close()

	st, err := pipeline.Run(rc.ctx, rc.batches, rc.srcErrs, rc.opts, act)
	if err != nil {
		return err
	}
	if flagSummarize {
		fmt.Fprintln(os.Stdout, st.Summary())
		if rc.opts.Fetcher != nil {
			fmt.Fprintf(os.Stdout, "tags: %d ok, %d failed, %d throttled, %d access denied\n",
				rc.opts.Fetcher.Success.Load(), rc.opts.Fetcher.Failed.Load(),
				rc.opts.Fetcher.Throttled.Load(), rc.opts.Fetcher.AccessDenied.Load())
		}
	}
	return nil
}

