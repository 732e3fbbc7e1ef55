package predicate

import (
	"fmt"
	"strconv"
)

var timeUnits = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
	'w': 604800,
}

// ParseMtime parses the --mtime flag grammar: a bare N or +N means
// "modified within the last N seconds" (age <= N, recent); -N means
// "modified at least N seconds ago" (age >= N, old). A trailing
// s/m/h/d/w unit multiplies N into seconds.
func ParseMtime(spec string) (Predicate, error) {
	if spec == "" {
		return Predicate{}, fmt.Errorf("empty mtime spec")
	}

	op := TimeLE
	rest := spec
	switch spec[0] {
	case '+':
		rest = spec[1:]
	case '-':
		op = TimeGE
		rest = spec[1:]
	}
	if rest == "" {
		return Predicate{}, fmt.Errorf("invalid mtime spec %q", spec)
	}

	multiplier := int64(1)
	last := rest[len(rest)-1]
	if m, ok := timeUnits[last]; ok {
		multiplier = m
		rest = rest[:len(rest)-1]
	}

	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return Predicate{}, fmt.Errorf("invalid mtime spec %q: %w", spec, err)
	}
	if n < 0 {
		return Predicate{}, fmt.Errorf("invalid mtime spec %q: negative magnitude", spec)
	}

	return Predicate{Kind: KindMtime, TimeOp: op, TimeSeconds: n * multiplier}, nil
}
