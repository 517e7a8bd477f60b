package domain

import "strings"

// MaxRosterNames is how many member names are shown before the rest is
// collapsed into a "+N" indicator.
const MaxRosterNames = 6

// FormatFullName shortens a full name for display: "Jo Bauer" -> "Jo B.",
// "Anna Maria Schmidt" -> "Anna MS.", single tokens stay as they are.
// Display only; never use the result as a lookup key.
func FormatFullName(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 3:
		return parts[0] + " " + string([]rune(parts[1])[0]) + string([]rune(parts[2])[0]) + "."
	default:
		return parts[0] + " " + string([]rune(parts[1])[0]) + "."
	}
}

// Initials returns up to two uppercased initials for avatar fallbacks.
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "U"
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(string([]rune(p)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// TruncateNames splits a member list into the names to show and the count of
// hidden ones. The input slice is never mutated.
func TruncateNames(names []string, max int) (shown []string, more int) {
	if len(names) <= max {
		return names, 0
	}
	return names[:max], len(names) - max
}
