package predicate

import (
	"fmt"
	"strconv"
)

var sizeUnits = map[byte]int64{
	'k': 1024,
	'M': 1024 * 1024,
	'G': 1024 * 1024 * 1024,
	'T': 1024 * 1024 * 1024 * 1024,
	'P': 1024 * 1024 * 1024 * 1024 * 1024,
}

// ParseSize parses the --size flag grammar: a bare N means exact equality,
// +N means "at least N", -N means "at most N"; a trailing k/M/G/T/P
// multiplies N by the corresponding power of 1024.
func ParseSize(spec string) (Predicate, error) {
	if spec == "" {
		return Predicate{}, fmt.Errorf("empty size spec")
	}

	op := SizeEQ
	rest := spec
	switch spec[0] {
	case '+':
		op = SizeGE
		rest = spec[1:]
	case '-':
		op = SizeLE
		rest = spec[1:]
	}
	if rest == "" {
		return Predicate{}, fmt.Errorf("invalid size spec %q", spec)
	}

	multiplier := int64(1)
	last := rest[len(rest)-1]
	if m, ok := sizeUnits[last]; ok {
		multiplier = m
		rest = rest[:len(rest)-1]
	}

	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return Predicate{}, fmt.Errorf("invalid size spec %q: %w", spec, err)
	}
	if n < 0 {
		return Predicate{}, fmt.Errorf("invalid size spec %q: negative magnitude", spec)
	}

	return Predicate{Kind: KindSize, SizeOp: op, SizeBytes: n * multiplier}, nil
}
