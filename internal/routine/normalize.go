package routine

import (
	"strings"
)

// synonymRules maps label fragments to canonical habit names. Matching is
// ordered, first hit wins, so more specific fragments sit above generic ones.
// New synonyms are data here, not code elsewhere.
var synonymRules = []struct {
	fragment  string
	canonical string
}{
	{"workout", "exercise"},
	{"work out", "exercise"},
	{"gym", "exercise"},
	{"training", "exercise"},
	{"exercise", "exercise"},
	{"lifting", "exercise"},
	{"meditat", "meditation"},
	{"mindfulness", "meditation"},
	{"journal", "journaling"},
	{"reading", "reading"},
	{"stretch", "stretching"},
	{"yoga", "stretching"},
}

// Normalize resolves a raw block identity to its canonical habit name.
// Priority order: user-declared canonical names (substring match in either
// direction), then the synonym table, then the cleaned label unchanged.
func Normalize(identity string, canonicalNames []string) string {
	cleaned := clean(identity)
	if cleaned == "" {
		return ""
	}

	for _, name := range canonicalNames {
		canon := clean(name)
		if canon == "" {
			continue
		}
		if strings.Contains(cleaned, canon) || strings.Contains(canon, cleaned) {
			return canon
		}
	}

	for _, rule := range synonymRules {
		if strings.Contains(cleaned, rule.fragment) {
			return rule.canonical
		}
	}

	return cleaned
}

// clean lowercases, trims, and collapses internal whitespace.
func clean(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
