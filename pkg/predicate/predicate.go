// Package predicate implements the object- and tag-level predicates that
// make up a FilterChain, plus the chain itself.
//
// Predicates are modeled as a single tagged-variant struct evaluated by a
// switch in Match, rather than an interface with one boxed implementation
// per kind: the chain is evaluated once per item in the hot path of the
// pipeline, and a closed set of kinds switches more cheaply than a
// polymorphic collection of interface values.
package predicate

import (
	"regexp"
	"strings"
	"time"

	"github.com/3leaps/s3find/pkg/objectitem"
)

// Kind identifies which object predicate a Predicate value carries.
type Kind int

const (
	KindNameGlob Kind = iota
	KindINameGlob
	KindRegex
	KindSize
	KindMtime
	KindStorageClass
)

// SizeOp is the comparator carried by a size predicate.
type SizeOp int

const (
	SizeEQ SizeOp = iota
	SizeGE
	SizeLE
)

// TimeOp is the comparator carried by an mtime predicate.
type TimeOp int

const (
	TimeLE TimeOp = iota
	TimeGE
)

// Predicate is one object-level filter condition.
type Predicate struct {
	Kind Kind

	// KindNameGlob / KindINameGlob
	Pattern string

	// KindRegex
	re *regexp.Regexp

	// KindSize
	SizeOp    SizeOp
	SizeBytes int64

	// KindMtime
	TimeOp      TimeOp
	TimeSeconds int64

	// KindStorageClass
	StorageClass string
}

// NewNameGlob builds a case-sensitive full-key glob predicate.
func NewNameGlob(pattern string) Predicate {
	return Predicate{Kind: KindNameGlob, Pattern: pattern}
}

// NewINameGlob builds a case-insensitive full-key glob predicate.
func NewINameGlob(pattern string) Predicate {
	return Predicate{Kind: KindINameGlob, Pattern: strings.ToLower(pattern)}
}

// NewRegex compiles an unanchored regex predicate.
func NewRegex(pattern string) (Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Kind: KindRegex, Pattern: pattern, re: re}, nil
}

// NewStorageClass builds an exact storage-class equality predicate.
func NewStorageClass(class string) Predicate {
	return Predicate{Kind: KindStorageClass, StorageClass: class}
}

// Match evaluates the predicate against it. now is the reference instant
// for mtime predicates ("now - last_modified").
func (p Predicate) Match(it *objectitem.Item, now time.Time) bool {
	switch p.Kind {
	case KindNameGlob:
		return matchGlob(p.Pattern, it.Key, false)
	case KindINameGlob:
		return matchGlob(p.Pattern, it.Key, true)
	case KindRegex:
		return p.re.MatchString(it.Key)
	case KindSize:
		return matchSize(p.SizeOp, p.SizeBytes, it.Size)
	case KindMtime:
		return matchMtime(p.TimeOp, p.TimeSeconds, it.LastModified, now)
	case KindStorageClass:
		if it.IsDeleteMarker || it.StorageClass == "" {
			return false
		}
		return it.StorageClass == p.StorageClass
	default:
		return false
	}
}

func matchSize(op SizeOp, want, got int64) bool {
	switch op {
	case SizeEQ:
		return got == want
	case SizeGE:
		return got >= want
	case SizeLE:
		return got <= want
	default:
		return false
	}
}

func matchMtime(op TimeOp, wantSeconds int64, lastModified, now time.Time) bool {
	if lastModified.IsZero() {
		return false
	}
	age := int64(now.Sub(lastModified).Seconds())
	switch op {
	case TimeLE:
		return age <= wantSeconds
	case TimeGE:
		return age >= wantSeconds
	default:
		return false
	}
}

// Chain is an ordered sequence of object predicates evaluated with
// short-circuit AND in insertion order.
type Chain struct {
	predicates []Predicate
}

// Add appends a predicate to the chain.
func (c *Chain) Add(p Predicate) {
	c.predicates = append(c.predicates, p)
}

// Len reports how many predicates are configured.
func (c *Chain) Len() int {
	return len(c.predicates)
}

// Match reports whether it satisfies every predicate in the chain. An
// empty chain matches everything.
func (c *Chain) Match(it *objectitem.Item, now time.Time) bool {
	for _, p := range c.predicates {
		if !p.Match(it, now) {
			return false
		}
	}
	return true
}
