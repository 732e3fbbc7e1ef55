package predicate

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// hiddenSeparator stands in for '/' in both the pattern and the key, so
// '*' crosses '/' the way the original Rust `glob` crate's default
// (require_literal_separator=false) does, and the way this tool's
// name/iname predicates are specified: doublestar's '*' stops at '/', and
// its '**' only crosses '/' when it is a whole path segment, so the
// separator is hidden from doublestar instead.
const hiddenSeparator = "\x00"

func hideSeparators(s string) string {
	return strings.ReplaceAll(s, "/", hiddenSeparator)
}

func matchGlob(pattern, key string, foldCase bool) bool {
	if foldCase {
		key = strings.ToLower(key)
	}
	ok, err := doublestar.Match(hideSeparators(pattern), hideSeparators(key))
	if err != nil {
		return false
	}
	return ok
}
