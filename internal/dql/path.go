package dql

import "strings"

// Wildcard is a path segment matching any metric part.
const Wildcard = "*"

// Path is a metric path.
type Path []string

// IsWildcard whether the last segment of path is [Wildcard].
func (p Path) IsWildcard() bool {
	return len(p) > 0 && p[len(p)-1] == Wildcard
}

// String returns path selector, e.g. `'base'.'cpu'.*`.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if i != 0 {
			sb.WriteByte('.')
		}
		if seg == Wildcard {
			sb.WriteString(seg)
			continue
		}
		sb.WriteString(singleQuoted(seg))
	}
	return sb.String()
}

// bucketCode returns bucket name for given source: its first two characters.
func bucketCode(source string) string {
	n := 0
	for i := range source {
		if n == 2 {
			return source[:i]
		}
		n++
	}
	return source
}
