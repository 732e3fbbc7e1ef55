package action

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/provider"
	"github.com/3leaps/s3find/pkg/provider/providertest"
)

func newTestContext(t *testing.T, f *providertest.Fake) (*Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Context{Provider: f, Bucket: "bucket", Region: "us-east-1", Stdout: &buf, Logger: zap.NewNop()}, &buf
}

func TestPrintPlain(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	it := &objectitem.Item{Bucket: "bucket", Key: "a/b.txt"}
	err := Print(c, PrintPlain)(context.Background(), []*objectitem.Item{it})
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/a/b.txt\n", buf.String())
}

func TestPrintPlainVersioned(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	it := &objectitem.Item{Bucket: "bucket", Key: "a", VersionID: "v1", IsLatest: true}
	err := Print(c, PrintPlain)(context.Background(), []*objectitem.Item{it})
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/a?versionId=v1 (latest)\n", buf.String())
}

func TestPrintCSVPlainObject(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	it := &objectitem.Item{
		Bucket: "bucket", Key: "a/b.txt", ETag: "abc123", Owner: "alice",
		Size: 42, StorageClass: "STANDARD",
		LastModified: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	err := Print(c, PrintCSV)(context.Background(), []*objectitem.Item{it})
	require.NoError(t, err)
	assert.Equal(t, "abc123,alice,42,2024-01-02T03:04:05Z,a/b.txt,STANDARD,,,\n", buf.String())
}

func TestPrintCSVVersionedObject(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	it := &objectitem.Item{
		Bucket: "bucket", Key: "a", VersionID: "v1", IsLatest: true, IsDeleteMarker: true,
	}
	err := Print(c, PrintCSV)(context.Background(), []*objectitem.Item{it})
	require.NoError(t, err)
	assert.Equal(t, ",,0,0001-01-01T00:00:00Z,a,,v1,true,true\n", buf.String())
}

func TestCombineKeysMatchesReferenceTable(t *testing.T) {
	assert.Equal(t, "somepath/anotherpath/path", CombineKeys(false, "path", "somepath/anotherpath"))
	assert.Equal(t, "somepath/anotherpath/path", CombineKeys(true, "path", "somepath/anotherpath"))
	assert.Equal(t, "somepath/anotherpath/some/path", CombineKeys(false, "some/path", "somepath/anotherpath"))
	assert.Equal(t, "somepath/anotherpath/path", CombineKeys(true, "some/path", "somepath/anotherpath"))
	assert.Equal(t, "some/path", CombineKeys(false, "some/path", ""))
	assert.Equal(t, "path", CombineKeys(true, "some/path", ""))
}

func TestBuildCopySource(t *testing.T) {
	assert.Equal(t, "bucket/some%2Fpath", BuildCopySource("bucket", "some/path", ""))
	assert.Equal(t, "bucket/some%2Fpath?versionId=v1", BuildCopySource("bucket", "some/path", "v1"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://test-bucket.s3.amazonaws.com/somepath/somekey", PublicURL("us-east-1", "test-bucket", "somepath/somekey"))
	assert.Equal(t, "https://test-bucket.s3-eu-west-1.amazonaws.com/somepath/somekey", PublicURL("eu-west-1", "test-bucket", "somepath/somekey"))
}

func TestDeleteHandlerReportsEachKey(t *testing.T) {
	f := providertest.New()
	now := time.Now()
	f.Seed("a", "", true, false, 1, "STANDARD", now, nil)
	f.Seed("b", "v2", true, false, 1, "STANDARD", now, nil)
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Key: "a"}, {Key: "b", VersionID: "v2"}}
	err := Delete(c, false)(context.Background(), batch)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "deleted: s3://bucket/a")
	assert.Contains(t, buf.String(), "deleted: s3://bucket/b (version: v2)")
	assert.Len(t, f.DeleteCalls, 2)
}

func TestDeleteHandlerSkipsMarkersWhenConfigured(t *testing.T) {
	f := providertest.New()
	c, _ := newTestContext(t, f)

	batch := []*objectitem.Item{{Key: "a", IsDeleteMarker: true}}
	err := Delete(c, true)(context.Background(), batch)
	require.NoError(t, err)
	assert.Empty(t, f.DeleteCalls)
}

func TestCopyHandler(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Key: "some/path"}}
	err := Copy(c, "dest-bucket", "prefix", true, "GLACIER")(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, f.CopyCalls, 1)
	assert.Equal(t, "dest-bucket", f.CopyCalls[0].DestBucket)
	assert.Equal(t, "prefix/path", f.CopyCalls[0].DestKey)
	assert.Equal(t, "GLACIER", f.CopyCalls[0].StorageClass)
	assert.Contains(t, buf.String(), "copying: s3://bucket/some%2Fpath => s3://dest-bucket/prefix/path")
}

func TestMoveHandlerCopiesThenDeletes(t *testing.T) {
	f := providertest.New()
	c, _ := newTestContext(t, f)

	batch := []*objectitem.Item{{Key: "x"}}
	err := Move(c, "dest-bucket", "", false, "")(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, f.CopyCalls, 1)
	assert.Len(t, f.DeleteCalls, 1)
	assert.Equal(t, "x", f.DeleteCalls[0].Key)
}

func TestSetTagsAndListTags(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a"}}
	err := SetTags(c, map[string]string{"env": "prod"})(context.Background(), batch)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tags are set for: s3://bucket/a")

	buf.Reset()
	cached := []*objectitem.Item{{Bucket: "bucket", Key: "a", Tags: map[string]string{"env": "prod"}}}
	err = ListTags(c)(context.Background(), cached)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "s3://bucket/a env:prod")
	assert.Equal(t, int64(0), f.TagFetchCallCount())
}

func TestPublicHandler(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a"}}
	err := Public(c)(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, f.ACLCalls, 1)
	assert.Contains(t, buf.String(), "s3://bucket/a")
	assert.Contains(t, buf.String(), "https://bucket.s3.amazonaws.com/a")
}

func TestRestoreSkipsNonColdTier(t *testing.T) {
	f := providertest.New()
	c, _ := newTestContext(t, f)

	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a", StorageClass: "STANDARD"}}
	err := Restore(c, 5, "Standard")(context.Background(), batch)
	require.NoError(t, err)
	assert.Empty(t, f.RestoreCalls)
}

func TestRestoreInitiatesForGlacier(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a", StorageClass: "GLACIER"}}
	err := Restore(c, 5, "Standard")(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, f.RestoreCalls, 1)
	assert.Contains(t, buf.String(), "Restore initiated for: s3://bucket/a")
}

func TestRestoreAlreadyInProgressIsInformational(t *testing.T) {
	f := providertest.New()
	f.ScriptRestoreError("a", provider.ErrRestoreAlreadyInProgress)
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a", StorageClass: "DEEP_ARCHIVE"}}
	err := Restore(c, 5, "Bulk")(context.Background(), batch)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Restore already in progress for: s3://bucket/a")
}

func TestExecSubstitutesDisplayKeyAndRunsCommand(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a/b.txt"}}
	err := Exec(c, "echo {}")(context.Background(), batch)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "s3://bucket/a/b.txt")
}

func TestDownloadWritesFileAndSkipsExistingWithoutForce(t *testing.T) {
	f := providertest.New()
	f.SeedBody("a/b.txt", "", []byte("hello"))
	c, buf := newTestContext(t, f)

	dir := t.TempDir()
	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a/b.txt"}}
	err := Download(c, dir, false)(context.Background(), batch)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "downloading: s3://bucket/a/b.txt")

	data, readErr := os.ReadFile(dir + "/a/b.txt")
	require.NoError(t, readErr)
	assert.Equal(t, "hello", string(data))

	f.SeedBody("a/b.txt", "", []byte("changed"))
	err = Download(c, dir, false)(context.Background(), batch)
	require.NoError(t, err)
	data, readErr = os.ReadFile(dir + "/a/b.txt")
	require.NoError(t, readErr)
	assert.Equal(t, "hello", string(data), "existing file must not be overwritten without force")
}

func TestChangeStorageClass(t *testing.T) {
	f := providertest.New()
	c, buf := newTestContext(t, f)

	batch := []*objectitem.Item{{Bucket: "bucket", Key: "a"}}
	err := ChangeStorageClass(c, "GLACIER")(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, f.CopyCalls, 1)
	assert.Equal(t, "a", f.CopyCalls[0].DestKey)
	assert.Equal(t, "GLACIER", f.CopyCalls[0].StorageClass)
	assert.Contains(t, buf.String(), "Changing storage class for s3://bucket/a to GLACIER")
}
