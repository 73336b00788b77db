// Package sections locates biography-bearing regions inside normalized filing
// text. Proxy statements and 10-Ks bury director and officer biographies
// under a recognizable but non-uniform set of headings, and heading text is
// the only stable landmark these documents offer.
package sections

import (
	"regexp"
	"sort"

	"github.com/jonathan/filing-affiliations/internal/normalize"
)

// Section is a labeled, immutable span of normalized text believed to contain
// one or more biographies. Start is the offset of the heading match within the
// normalized text the locator was given.
type Section struct {
	Label string
	Start int
	Text  string
}

type headingRule struct {
	pattern *regexp.Regexp
	label   string
}

// The base rules mirror the heading vocabulary of proxy statements (DEF 14A),
// 10-K Item 10, and S-1 management sections. The enhanced rules extend the
// list for amended and nonstandard filings; they are a strict superset and
// must never replace the base set, or recall drops.
var headingRules = []headingRule{
	{regexp.MustCompile(`(?i)Item\s+10\.?\s+Directors[,\s]+Executive\s+Officers`), "Item 10: Directors & Officers"},
	{regexp.MustCompile(`(?i)BOARD\s+OF\s+DIRECTORS|DIRECTORS\s+AND\s+EXECUTIVE\s+OFFICERS`), "Directors & Officers"},
	{regexp.MustCompile(`(?i)EXECUTIVE\s+OFFICERS|MANAGEMENT\b`), "Executive Officers"},
	{regexp.MustCompile(`(?i)BIOGRAPHICAL\s+INFORMATION|BIOGRAPHIES`), "Biographies"},
	{regexp.MustCompile(`(?i)PROPOSAL\s+\d+[\s\-]+ELECTION\s+OF\s+DIRECTORS`), "Election of Directors"},
	{regexp.MustCompile(`(?i)NOMINEES\s+FOR\s+DIRECTOR`), "Director Nominees"},
	{regexp.MustCompile(`(?i)CONTINUING\s+DIRECTORS`), "Continuing Directors"},
	{regexp.MustCompile(`(?i)MANAGEMENT\s+DISCUSSION`), "Management Discussion"},
}

// Locate finds every heading match in the normalized text and returns one
// section per match, ordered by start offset. A section runs from its heading
// to the next heading match of any pattern, or to the end of the text. An
// empty result means no heading matched; callers fall back to scanning the
// whole text.
func Locate(text string) []Section {
	type hit struct {
		start int
		label string
		rule  int
	}

	var hits []hit
	for i, rule := range headingRules {
		for _, loc := range rule.pattern.FindAllStringIndex(text, -1) {
			hits = append(hits, hit{start: loc[0], label: rule.label, rule: i})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].rule < hits[j].rule
	})

	// Two patterns matching at the same offset would produce a zero-length
	// section; keep only the earliest rule for that offset.
	deduped := hits[:0]
	lastStart := -1
	for _, h := range hits {
		if h.start == lastStart {
			continue
		}
		deduped = append(deduped, h)
		lastStart = h.start
	}

	sections := make([]Section, 0, len(deduped))
	for i, h := range deduped {
		end := len(text)
		if i+1 < len(deduped) {
			end = deduped[i+1].start
		}
		sections = append(sections, Section{
			Label: h.label,
			Start: h.start,
			Text:  text[h.start:end],
		})
	}
	return sections
}

// LocateFromMarkup normalizes raw filing markup and locates sections in the
// resulting text. Parse failures propagate as *normalize.ParseError.
func LocateFromMarkup(markup string) ([]Section, error) {
	text, err := normalize.ToPlainText(markup)
	if err != nil {
		return nil, err
	}
	return Locate(text), nil
}
