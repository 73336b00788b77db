package biography

import (
	"regexp"
	"strings"
)

// Name-shaped strings that are really organizations, exchanges, or section
// furniture. Filing prose capitalizes these the same way it capitalizes
// people, so a keyword stoplist is the only reliable filter.
var organizationKeywords = []string{
	"stock exchange", "securities", "commission", "corporation",
	"company", "inc.", "llc", "ltd", "limited", "incorporated",
	"new york", "nasdaq", "exchange", "federal", "department",
	"united states", "internal revenue", "financial accounting",
	"table of contents", "form 10", "part i",
}

// Common sentence starters that the paragraph tier must not mistake for a
// leading person name.
var sentenceStarters = map[string]bool{
	"The": true, "This": true, "These": true, "Each": true, "Our": true,
	"In": true, "On": true, "During": true, "Pursuant": true, "As": true,
	"For": true, "All": true, "None": true, "Under": true, "Since": true,
}

var consecutiveCaps = regexp.MustCompile(`[A-Z]{3,}`)

// isLikelyPersonName reports whether a captured name token sequence plausibly
// names a person rather than an organization or a heading.
func isLikelyPersonName(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range organizationKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	if name == strings.ToUpper(name) {
		return false
	}
	// NYSE, SEC, FDIC and friends.
	if consecutiveCaps.MatchString(name) {
		return false
	}
	first := strings.Fields(name)
	if len(first) == 0 || sentenceStarters[first[0]] {
		return false
	}
	return true
}
