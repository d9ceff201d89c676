package security

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// entities are the encodings Sanitize produces. An ampersand that already
// opens one of them is left alone so a second pass is a no-op.
var entities = []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#x27;"}

// Sanitize trims s, collapses whitespace runs to a single space, drops
// control characters and entity-encodes & < > " '. It runs regardless of
// any detection verdict.
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if isEntity(s[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isEntity(s string) bool {
	for _, e := range entities {
		if strings.HasPrefix(s, e) {
			return true
		}
	}
	return false
}

// SanitizeObject walks v and sanitizes every string leaf. Maps and slices
// are copied; every other value is returned unchanged.
func SanitizeObject(v any) any {
	switch t := v.(type) {
	case string:
		return Sanitize(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = SanitizeObject(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = SanitizeObject(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, val := range t {
			out[i] = Sanitize(val)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = Sanitize(val)
		}
		return out
	default:
		return v
	}
}
