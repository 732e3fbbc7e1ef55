package action

import "strings"

// CombineKeys derives a copy/move destination key from a source key, a
// destination prefix, and the --flat flag. When flat is set only the
// source key's basename is kept; otherwise the full source key carries
// over. The result is joined onto destPrefix with "/" when destPrefix is
// non-empty.
func CombineKeys(flat bool, sourceKey, destPrefix string) string {
	key := sourceKey
	if flat {
		key = keyName(sourceKey)
	}
	if destPrefix == "" {
		return key
	}
	return joinKey(destPrefix, key)
}

func keyName(key string) string {
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return key
	}
	return key[idx+1:]
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + key
}
