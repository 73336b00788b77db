package affiliation

// Config groups everything that varies between scanner deployments:
// organization name patterns, the classifier keyword lists, the context
// window radius, and an optional classifier override. It is read-only after
// construction, so concurrent scanners with different configurations never
// interfere.
type Config struct {
	// OrgPatterns are regular expressions matched case-insensitively against
	// scanned text. Defaults target Boston University.
	OrgPatterns []string

	// DegreeTokens are degree abbreviations matched on a word boundary.
	DegreeTokens []string

	// RoleKeywords, EducationKeywords, and EmploymentKeywords are matched as
	// lowercase substrings of the context window, in that priority order.
	RoleKeywords       []string
	EducationKeywords  []string
	EmploymentKeywords []string

	// ContextWindow is the radius in characters around a mention used for
	// classification and human review.
	ContextWindow int

	// Classify overrides the built-in priority classifier when non-nil.
	Classify ClassifyFunc
}

// DefaultContextWindow is the context radius used when none is configured.
const DefaultContextWindow = 200

// ExportContextLimit caps context length in exported records.
const ExportContextLimit = 500

// DefaultConfig returns the stock configuration: Boston University name
// variants and the standard keyword lists. Full names only; short
// abbreviations like "BU" produce too many false positives.
func DefaultConfig() Config {
	return Config{
		OrgPatterns: []string{
			`Boston\s+University`,
			`Boston\s+U\.`,
		},
		DegreeTokens: []string{
			`B\.?A\.?`, `B\.?S\.?`, `Bachelor(?:'s)?`,
			`M\.?A\.?`, `M\.?B\.?A\.?`, `M\.?S\.?`, `Master(?:'s)?`,
			`Ph\.?D\.?`, `J\.?D\.?`, `M\.?D\.?`,
			`LL\.?M\.?`, `LL\.?B\.?`, `Ed\.?D\.?`,
		},
		RoleKeywords: []string{
			"professor", "faculty", "instructor", "lecturer", "researcher",
			"fellow", "trustee", "board member", "dean", "chair",
			"president", "chancellor", "provost",
		},
		EducationKeywords: []string{
			"studied", "attended", "graduated", "enrolled",
			"alumnus", "alumni", "educated",
		},
		EmploymentKeywords: []string{
			"served", "worked", "employed", "appointed", "joined",
		},
		ContextWindow: DefaultContextWindow,
	}
}

// WithOrgPatterns returns a copy of the config targeting a different
// organization. This is the primary point of reuse.
func (c Config) WithOrgPatterns(patterns []string) Config {
	c.OrgPatterns = append([]string(nil), patterns...)
	return c
}
