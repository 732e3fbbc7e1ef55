package listing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/s3find/pkg/provider/providertest"
)

func drain(t *testing.T, batches <-chan Batch, errs <-chan error) ([]string, error) {
	t.Helper()
	var keys []string
	for b := range batches {
		for _, it := range b.Items {
			keys = append(keys, it.Key)
		}
	}
	return keys, <-errs
}

func TestFlatListing(t *testing.T) {
	f := providertest.New()
	f.Seed("a.txt", "", true, false, 1, "STANDARD", time.Now(), nil)
	f.Seed("b.txt", "", true, false, 2, "STANDARD", time.Now(), nil)

	batches, errs := Flat(context.Background(), f, "bucket", "", 10)
	keys, err := drain(t, batches, errs)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, keys)
}

func TestFlatListingEmptyBucket(t *testing.T) {
	f := providertest.New()
	batches, errs := Flat(context.Background(), f, "bucket", "", 10)
	keys, err := drain(t, batches, errs)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestDelimiterDepthZero(t *testing.T) {
	f := providertest.New()
	now := time.Now()
	f.Seed("root.txt", "", true, false, 1, "STANDARD", now, nil)
	f.Seed("dir/f.txt", "", true, false, 1, "STANDARD", now, nil)
	f.Seed("dir/sub/f.txt", "", true, false, 1, "STANDARD", now, nil)

	batches, errs := Delimiter(context.Background(), f, "bucket", "", 0, 10)
	keys, err := drain(t, batches, errs)
	require.NoError(t, err)
	assert.Equal(t, []string{"root.txt"}, keys)
}

func TestDelimiterDepthOne(t *testing.T) {
	f := providertest.New()
	now := time.Now()
	f.Seed("root.txt", "", true, false, 1, "STANDARD", now, nil)
	f.Seed("dir/f.txt", "", true, false, 1, "STANDARD", now, nil)
	f.Seed("dir/sub/f.txt", "", true, false, 1, "STANDARD", now, nil)

	batches, errs := Delimiter(context.Background(), f, "bucket", "", 1, 10)
	keys, err := drain(t, batches, errs)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"root.txt", "dir/f.txt"}, keys)
}

func TestVersionsSortsDescendingWithinKey(t *testing.T) {
	f := providertest.New()
	base := time.Now()
	f.Seed("file.txt", "v1", false, false, 1, "STANDARD", base.Add(-2*time.Hour), nil)
	f.Seed("file.txt", "v2", false, false, 1, "STANDARD", base.Add(-1*time.Hour), nil)
	f.Seed("file.txt", "v3", true, false, 1, "STANDARD", base, nil)

	batches, errs := Versions(context.Background(), f, "bucket", "", 10)
	var versions []string
	for b := range batches {
		for _, it := range b.Items {
			versions = append(versions, it.VersionID)
		}
	}
	require.NoError(t, <-errs)
	assert.Equal(t, []string{"v3", "v2", "v1"}, versions)
}
