package predicate

import "github.com/3leaps/s3find/pkg/objectitem"

// TagKind identifies which tag predicate a TagPredicate value carries.
type TagKind int

const (
	TagExists TagKind = iota
	TagEquals
)

// TagPredicate is one tag-level filter condition. Evaluating it requires
// tags to have already been fetched: an item whose tag fetch was never
// attempted (Tags == nil) never matches.
type TagPredicate struct {
	Kind  TagKind
	Key   string
	Value string
}

// NewTagExists builds a "tag key present" predicate.
func NewTagExists(key string) TagPredicate {
	return TagPredicate{Kind: TagExists, Key: key}
}

// NewTagEquals builds a "tag key equals value" predicate.
func NewTagEquals(key, value string) TagPredicate {
	return TagPredicate{Kind: TagEquals, Key: key, Value: value}
}

// Match evaluates the predicate against it. Tags must already be
// populated (it.Tags != nil); an unfetched item never matches.
func (p TagPredicate) Match(it *objectitem.Item) bool {
	if it.Tags == nil {
		return false
	}
	switch p.Kind {
	case TagExists:
		_, ok := it.Tags[p.Key]
		return ok
	case TagEquals:
		v, ok := it.Tags[p.Key]
		return ok && v == p.Value
	default:
		return false
	}
}

// TagChain is an ordered sequence of tag predicates evaluated with
// short-circuit AND.
type TagChain struct {
	predicates []TagPredicate
}

// Add appends a tag predicate to the chain.
func (c *TagChain) Add(p TagPredicate) {
	c.predicates = append(c.predicates, p)
}

// Len reports how many tag predicates are configured.
func (c *TagChain) Len() int {
	return len(c.predicates)
}

// Match reports whether it satisfies every tag predicate. An empty chain
// matches everything and requires no tags to be populated.
func (c *TagChain) Match(it *objectitem.Item) bool {
	for _, p := range c.predicates {
		if !p.Match(it) {
			return false
		}
	}
	return true
}
