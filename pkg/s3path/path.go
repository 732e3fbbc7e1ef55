// Package s3path parses the s3:// URI surface accepted by this tool.
package s3path

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPath indicates a string did not match the expected s3:// grammar.
var ErrInvalidPath = errors.New("invalid s3 path")

// pathPattern accepts s3://bucket and s3://bucket/prefix, where prefix may
// span several "/"-separated segments and may be empty (bare trailing
// slash means "the whole bucket").
var pathPattern = regexp.MustCompile(`^s3://([A-Za-z0-9 _-]+)(/([A-Za-z0-9/ _-]*))?$`)

// Path is a parsed s3://bucket/prefix argument.
type Path struct {
	Bucket string
	Prefix string
}

// Parse parses raw into a Path. Prefix is "" when raw names only a bucket.
func Parse(raw string) (Path, error) {
	m := pathPattern.FindStringSubmatch(raw)
	if m == nil {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, raw)
	}
	return Path{Bucket: m[1], Prefix: m[3]}, nil
}

// String renders the path back into s3://bucket/prefix form.
func (p Path) String() string {
	if p.Prefix == "" {
		return "s3://" + p.Bucket
	}
	return "s3://" + p.Bucket + "/" + p.Prefix
}
