package matcher

import "strings"

// Match reports whether a tool name satisfies pattern. "*" matches every
// name, a pattern ending with "*" or "_" matches by prefix and anything else
// must match exactly.
func Match(pattern, name string) bool {
	switch {
	case pattern == "*":
		return true
	case pattern == "":
		return false
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	case strings.HasSuffix(pattern, "_"):
		return strings.HasPrefix(name, pattern)
	}
	return name == pattern
}
