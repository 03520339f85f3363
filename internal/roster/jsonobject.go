package roster

import "strings"

// FindJSONObject returns the first top-level JSON object embedded in s.
//
// Models tend to wrap JSON in prose or markdown fences, so the scan starts at
// the first '{' and follows brace depth, skipping braces inside string
// literals, until the matching '}'. It is a heuristic, not a parser: the
// caller still decodes the result. ok is false when no balanced object exists.
func FindJSONObject(s string) (object string, ok bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
