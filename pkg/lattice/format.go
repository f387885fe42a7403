package lattice

import "strings"

const (
	// EmptySet is the rendering of a set without segments.
	EmptySet = "∅"
	// UnionSep separates the rendered segments of a set.
	UnionSep = " ∪ "
)

// Format joins rendered segments into the human readable form of a set.
func Format(parts []string) string {
	if len(parts) == 0 {
		return EmptySet
	}
	return strings.Join(parts, UnionSep)
}

// Split is the inverse of Format. It returns nil for the empty set.
func Split(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == EmptySet {
		return nil
	}
	parts := strings.Split(s, "∪")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
