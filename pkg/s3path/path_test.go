package s3path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw    string
		bucket string
		prefix string
	}{
		{"s3://my-bucket", "my-bucket", ""},
		{"s3://my-bucket/", "my-bucket", ""},
		{"s3://my-bucket/some/prefix", "my-bucket", "some/prefix"},
		{"s3://my_bucket name/a b_c-d", "my_bucket name", "a b_c-d"},
	}
	for _, tc := range cases {
		p, err := Parse(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.bucket, p.Bucket)
		assert.Equal(t, tc.prefix, p.Prefix)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{"", "bucket/prefix", "s3:/bucket", "s3://"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidPath, raw)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "s3://b", Path{Bucket: "b"}.String())
	assert.Equal(t, "s3://b/p/q", Path{Bucket: "b", Prefix: "p/q"}.String())
}
