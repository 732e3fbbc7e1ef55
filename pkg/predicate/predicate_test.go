package predicate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/s3find/pkg/objectitem"
)

func TestNameGlobCrossesSlash(t *testing.T) {
	p := NewNameGlob("*.txt")
	now := time.Now()
	assert.True(t, p.Match(&objectitem.Item{Key: "a/b/c.txt"}, now))
	assert.False(t, p.Match(&objectitem.Item{Key: "a/b/c.csv"}, now))
}

func TestINameGlobCaseInsensitive(t *testing.T) {
	p := NewINameGlob("*REPORT*")
	now := time.Now()
	assert.True(t, p.Match(&objectitem.Item{Key: "logs/2024/report-final.txt"}, now))
}

func TestRegexUnanchored(t *testing.T) {
	p, err := NewRegex(`\d{4}-\d{2}-\d{2}`)
	require.NoError(t, err)
	now := time.Now()
	assert.True(t, p.Match(&objectitem.Item{Key: "a/2024-05-01/data.csv"}, now))
	assert.False(t, p.Match(&objectitem.Item{Key: "a/nope/data.csv"}, now))
}

func TestSizePredicate(t *testing.T) {
	now := time.Now()
	p, err := ParseSize("+100")
	require.NoError(t, err)
	assert.True(t, p.Match(&objectitem.Item{Size: 1000}, now))
	assert.False(t, p.Match(&objectitem.Item{Size: 5}, now))

	eq, err := ParseSize("10k")
	require.NoError(t, err)
	assert.True(t, eq.Match(&objectitem.Item{Size: 10240}, now))

	le, err := ParseSize("-19")
	require.NoError(t, err)
	assert.True(t, le.Match(&objectitem.Item{Size: 19}, now))
	assert.False(t, le.Match(&objectitem.Item{Size: 20}, now))
}

func TestMtimePredicate(t *testing.T) {
	now := time.Now()

	p, err := ParseMtime("+1h")
	require.NoError(t, err)
	assert.True(t, p.Match(&objectitem.Item{LastModified: now.Add(-30 * time.Minute)}, now))
	assert.False(t, p.Match(&objectitem.Item{LastModified: now.Add(-2 * time.Hour)}, now))

	old, err := ParseMtime("-1d")
	require.NoError(t, err)
	assert.True(t, old.Match(&objectitem.Item{LastModified: now.Add(-48 * time.Hour)}, now))
	assert.False(t, old.Match(&objectitem.Item{LastModified: now.Add(-1 * time.Hour)}, now))

	assert.False(t, p.Match(&objectitem.Item{}, now))
}

func TestStorageClassPredicate(t *testing.T) {
	now := time.Now()
	p := NewStorageClass("GLACIER")
	assert.True(t, p.Match(&objectitem.Item{StorageClass: "GLACIER"}, now))
	assert.False(t, p.Match(&objectitem.Item{StorageClass: "STANDARD"}, now))
	assert.False(t, p.Match(&objectitem.Item{IsDeleteMarker: true, StorageClass: "GLACIER"}, now))
}

func TestChainShortCircuitAnd(t *testing.T) {
	var c Chain
	c.Add(NewNameGlob("*.txt"))
	sz, _ := ParseSize("+100")
	c.Add(sz)

	now := time.Now()
	assert.True(t, c.Match(&objectitem.Item{Key: "a.txt", Size: 200}, now))
	assert.False(t, c.Match(&objectitem.Item{Key: "a.txt", Size: 5}, now))
	assert.False(t, c.Match(&objectitem.Item{Key: "a.csv", Size: 200}, now))
}

func TestEmptyChainMatchesAll(t *testing.T) {
	var c Chain
	assert.True(t, c.Match(&objectitem.Item{}, time.Now()))
}

func TestTagChain(t *testing.T) {
	var c TagChain
	c.Add(NewTagEquals("env", "prod"))

	assert.False(t, c.Match(&objectitem.Item{}))
	assert.False(t, c.Match(&objectitem.Item{Tags: map[string]string{"env": "dev"}}))
	assert.True(t, c.Match(&objectitem.Item{Tags: map[string]string{"env": "prod"}}))
}

func TestTagExists(t *testing.T) {
	p := NewTagExists("owner")
	assert.False(t, p.Match(&objectitem.Item{}))
	assert.False(t, p.Match(&objectitem.Item{Tags: map[string]string{}}))
	assert.True(t, p.Match(&objectitem.Item{Tags: map[string]string{"owner": "team-a"}}))
}
