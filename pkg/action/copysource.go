package action

import "fmt"

// BuildCopySource renders the copy_source parameter for a server-side
// CopyObject call: "<bucket>/<url-encoded-key>[?versionId=<url-encoded-vid>]".
//
// Every byte outside the unreserved set (ALPHA / DIGIT / "-" / "." / "_"
// / "~") is percent-encoded, including "/", matching the reference
// implementation's encoder rather than net/url's path escaping (which
// leaves "/" untouched).
func BuildCopySource(bucket, key, versionID string) string {
	encodedKey := percentEncode(key)
	if versionID == "" {
		return fmt.Sprintf("%s/%s", bucket, encodedKey)
	}
	return fmt.Sprintf("%s/%s?versionId=%s", bucket, encodedKey, percentEncode(versionID))
}

func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b = append(b, c)
			continue
		}
		b = append(b, '%', hex[c>>4], hex[c&0x0f])
	}
	return string(b)
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	default:
		return false
	}
}
