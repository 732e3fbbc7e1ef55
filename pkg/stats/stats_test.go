package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/3leaps/s3find/pkg/objectitem"
)

func items(sizesAndKeys ...any) []*objectitem.Item {
	var out []*objectitem.Item
	for i := 0; i < len(sizesAndKeys); i += 2 {
		out = append(out, &objectitem.Item{Key: sizesAndKeys[i+1].(string), Size: int64(sizesAndKeys[i].(int))})
	}
	return out
}

func TestAddComputesExtremesAndAverage(t *testing.T) {
	var s Stats
	s.Add(items(5, "small", 19, "medium", 1000, "large"))

	assert.EqualValues(t, 3, s.Count)
	assert.EqualValues(t, 1024, s.TotalBytes)
	assert.Equal(t, "large", s.MaxKey)
	assert.Equal(t, "small", s.MinKey)
	assert.InDelta(t, 1024.0/3.0, s.AverageBytes(), 0.001)
}

func TestFoldAssociativity(t *testing.T) {
	b1 := items(5, "a", 10, "b")
	b2 := items(1, "c", 100, "d")

	var whole Stats
	whole.Add(append(append([]*objectitem.Item{}, b1...), b2...))

	var s1, s2 Stats
	s1.Add(b1)
	s2.Add(b2)
	merged := Merge(s1, s2)

	assert.Equal(t, whole, merged)
}

func TestEmptyStats(t *testing.T) {
	var s Stats
	assert.Equal(t, float64(0), s.AverageBytes())
	assert.Contains(t, s.Summary(), "Total files: 0")
}
