// Package affiliation scans biography text for organization-name mentions and
// classifies each mention into a relationship category with a confidence tier.
package affiliation

// Type is the relationship category assigned to an organization mention.
type Type string

const (
	TypeDegree     Type = "degree"
	TypePosition   Type = "position"
	TypeEducation  Type = "education"
	TypeEmployment Type = "employment"
	TypeMention    Type = "mention"
)

// Confidence is a coarse ordinal expressing classification certainty. It is a
// deterministic function of which keyword category matched.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

var confidenceRank = map[Confidence]int{
	ConfidenceHigh:   3,
	ConfidenceMedium: 2,
	ConfidenceLow:    1,
}

// Rank returns the ordinal value of the confidence tier (high > medium > low).
func (c Confidence) Rank() int {
	return confidenceRank[c]
}

// UnknownPerson is the person name attached to matches found without
// per-person attribution (whole-document scans).
const UnknownPerson = "Unknown"

// Match records one organization-name occurrence in scanned text. Matches are
// immutable once created; deduplication removes matches but never rewrites
// them.
type Match struct {
	PersonName   string            `json:"person_name"`
	Type         Type              `json:"affiliation_type"`
	Organization string            `json:"organization"`
	Context      string            `json:"context"`
	Confidence   Confidence        `json:"confidence"`
	FilingInfo   map[string]string `json:"filing_info,omitempty"`
}
