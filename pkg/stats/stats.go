// Package stats implements the running aggregate folded across every
// batch an action handles: count, total/min/max/avg size, and the keys
// holding the size extremes.
package stats

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/3leaps/s3find/pkg/objectitem"
)

// Stats is fold-associative: Merge(Fold(B1), Fold(B2)) == Fold(B1++B2).
type Stats struct {
	Count      int64
	TotalBytes int64

	MaxBytes int64
	MaxKey   string
	MinBytes int64
	MinKey   string
}

// Add folds one batch of items into s.
func (s *Stats) Add(items []*objectitem.Item) {
	for _, it := range items {
		if s.Count == 0 {
			s.MinBytes, s.MinKey = it.Size, it.Key
			s.MaxBytes, s.MaxKey = it.Size, it.Key
		} else {
			if it.Size > s.MaxBytes {
				s.MaxBytes, s.MaxKey = it.Size, it.Key
			}
			if it.Size < s.MinBytes {
				s.MinBytes, s.MinKey = it.Size, it.Key
			}
		}
		s.Count++
		s.TotalBytes += it.Size
	}
}

// Merge combines two independently accumulated Stats, e.g. one per
// worker, preserving fold-associativity with Add.
func Merge(a, b Stats) Stats {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}
	out := Stats{
		Count:      a.Count + b.Count,
		TotalBytes: a.TotalBytes + b.TotalBytes,
		MaxBytes:   a.MaxBytes,
		MaxKey:     a.MaxKey,
		MinBytes:   a.MinBytes,
		MinKey:     a.MinKey,
	}
	if b.MaxBytes > out.MaxBytes {
		out.MaxBytes, out.MaxKey = b.MaxBytes, b.MaxKey
	}
	if b.MinBytes < out.MinBytes {
		out.MinBytes, out.MinKey = b.MinBytes, b.MinKey
	}
	return out
}

// AverageBytes returns the mean object size, 0 when Count is 0.
func (s Stats) AverageBytes() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.TotalBytes) / float64(s.Count)
}

// Summary renders the --summarize block in the reference tool's text
// format, with binary (IEC) byte units.
func (s Stats) Summary() string {
	if s.Count == 0 {
		return "Total files: 0\nTotal space: 0 B\n"
	}
	return fmt.Sprintf(
		"Total files: %d\nTotal space: %s\nLargest file: %s\nLargest file size: %s\nSmallest file: %s\nSmallest file size: %s\nAverage file size: %s\n",
		s.Count,
		humanize.IBytes(uint64(s.TotalBytes)),
		s.MaxKey,
		humanize.IBytes(uint64(s.MaxBytes)),
		s.MinKey,
		humanize.IBytes(uint64(s.MinBytes)),
		humanize.IBytes(uint64(s.AverageBytes())),
	)
}
