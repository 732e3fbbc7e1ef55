package objectitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayKey(t *testing.T) {
	plain := &Item{Bucket: "b", Key: "a/b.txt"}
	assert.Equal(t, "s3://b/a/b.txt", plain.DisplayKey())

	versioned := &Item{Bucket: "b", Key: "a/b.txt", VersionID: "v1", IsLatest: true}
	assert.Equal(t, "s3://b/a/b.txt?versionId=v1 (latest)", versioned.DisplayKey())

	older := &Item{Bucket: "b", Key: "a/b.txt", VersionID: "v0"}
	assert.Equal(t, "s3://b/a/b.txt?versionId=v0", older.DisplayKey())

	marker := &Item{Bucket: "b", Key: "a/b.txt", VersionID: "v2", IsDeleteMarker: true}
	assert.Equal(t, "s3://b/a/b.txt?versionId=v2 (delete marker)", marker.DisplayKey())
}

func TestDownloadPath(t *testing.T) {
	assert.Equal(t, "out/a/b.txt", (&Item{Key: "a/b.txt"}).DownloadPath("out"))
	assert.Equal(t, "out/a/b.txt.v9", (&Item{Key: "a/b.txt", VersionID: "9"}).DownloadPath("out"))
}

func TestTagHelpers(t *testing.T) {
	it := &Item{}
	assert.False(t, it.HasTags())
	assert.False(t, it.HasTagKey("env"))

	it.Tags = map[string]string{"env": "prod"}
	assert.True(t, it.HasTags())
	assert.True(t, it.HasTagKey("env"))
	v, ok := it.Tag("env")
	assert.True(t, ok)
	assert.Equal(t, "prod", v)

	_, ok = it.Tag("missing")
	assert.False(t, ok)
}
