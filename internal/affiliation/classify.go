package affiliation

import (
	"regexp"
	"strings"
)

// ClassifyFunc maps a context window to a relationship category and
// confidence tier.
type ClassifyFunc func(context string) (Type, Confidence)

// newClassifier builds the priority-ordered classifier from the configured
// keyword lists. Rules are evaluated in order and the first hit wins: degree
// and role mentions are the least ambiguous signals and must not be
// downgraded by a weaker keyword appearing elsewhere in the same window.
//
// The window is not sentence-bounded, so a degree keyword that belongs to a
// different person inside the window can still upgrade a mention. That is a
// known precision limitation of the window policy, accepted as is.
func newClassifier(cfg Config) ClassifyFunc {
	// The trailing boundary matters: tokens like `M\.?A\.?` have optional
	// tails, and without it the leading letter alone would match inside
	// ordinary words ("Boston" would read as a B.A.).
	degreeRe := regexp.MustCompile(`(?i)\b(?:` + strings.Join(cfg.DegreeTokens, "|") + `)\b`)

	roles := lowerAll(cfg.RoleKeywords)
	education := lowerAll(cfg.EducationKeywords)
	employment := lowerAll(cfg.EmploymentKeywords)

	return func(context string) (Type, Confidence) {
		lower := strings.ToLower(context)

		if degreeRe.MatchString(context) {
			return TypeDegree, ConfidenceHigh
		}
		if containsAny(lower, roles) {
			return TypePosition, ConfidenceHigh
		}
		if containsAny(lower, education) {
			return TypeEducation, ConfidenceMedium
		}
		if containsAny(lower, employment) {
			return TypeEmployment, ConfidenceMedium
		}
		return TypeMention, ConfidenceLow
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}
