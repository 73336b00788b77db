// Package biography splits a biography-bearing section into one record per
// described person. Segmentation uses a tiered fallback: an explicit
// name-plus-age pattern, then a name-plus-title pattern, then a paragraph
// heuristic. The first tier that yields any record wins; tiers are never
// mixed within one section.
package biography

import (
	"regexp"
	"strings"
)

// Bio is one person's biography record. Age is "Unknown" outside the
// name+age tier. Text is capped at MaxBioLen characters.
type Bio struct {
	Name string
	Age  string
	Text string
}

// UnknownAge marks records produced by tiers that carry no age information.
const UnknownAge = "Unknown"

// MaxBioLen bounds each record's text to keep downstream context windows
// cheap.
const MaxBioLen = 2000

// minBioLen filters out heading fragments that match a name pattern but
// carry no biographical prose.
const minBioLen = 100

// Strategy is one segmentation tier: a pure function from section text to
// records. Returning an empty slice hands control to the next tier.
type Strategy func(text string) []Bio

// Two-to-four capitalized tokens with an optional middle initial, allowing
// hyphenated and apostrophe surnames.
const namePart = `[A-Z][a-z]+(?:[-'][A-Z][a-z]+)?`
const namePattern = namePart + `(?:\s+[A-Z]\.?)?\s+` + namePart + `(?:\s+` + namePart + `)?`

var nameAgeRe = regexp.MustCompile(`(?m)(?:^|\n\s*)(` + namePattern + `)[,\s]+(?:age\s+)?(\d{2})\b`)

// defaultTitleKeywords are the role words the name+title tier accepts after a
// candidate name. Phrases like "has served" catch the narrative style some
// filers use instead of a title.
var defaultTitleKeywords = []string{
	"Mr.", "Ms.", "Mrs.", "Dr.",
	"Director", "President", "CEO", "CFO", "COO", "Chairman",
	"Chief", "Vice", "Trustee", "Officer",
	"has served", "is a", "serves",
}

var leadingNameRe = regexp.MustCompile(`(` + namePart + `(?:\s+[A-Z]\.?)?(?:\s+` + namePart + `)+)`)

// Segmenter runs an ordered list of segmentation strategies.
type Segmenter struct {
	strategies []Strategy
}

// New returns a segmenter with the default three-tier strategy list.
func New() *Segmenter {
	return NewWithTitles(defaultTitleKeywords)
}

// NewWithTitles returns a segmenter whose name+title tier accepts the given
// role words instead of the defaults.
func NewWithTitles(titleKeywords []string) *Segmenter {
	return &Segmenter{
		strategies: []Strategy{
			segmentByNameAge,
			nameTitleStrategy(titleKeywords),
			segmentByParagraph,
		},
	}
}

// Segment splits section text into per-person records using the first
// strategy that yields at least one record. An empty result is a valid
// outcome, not an error.
func (s *Segmenter) Segment(text string) []Bio {
	for _, strategy := range s.strategies {
		if bios := strategy(text); len(bios) > 0 {
			return bios
		}
	}
	return nil
}

// Segment runs the default segmenter.
func Segment(text string) []Bio {
	return New().Segment(text)
}

// segmentByNameAge is tier 1: "<Name>, age 45" or "<Name>, 45". Each match
// starts a record that runs to the next match or the section end.
func segmentByNameAge(text string) []Bio {
	matches := nameAgeRe.FindAllStringSubmatchIndex(text, -1)

	var bios []Bio
	for i, m := range matches {
		name := strings.TrimSpace(text[m[2]:m[3]])
		if !isLikelyPersonName(name) {
			continue
		}
		age := text[m[4]:m[5]]

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		bios = append(bios, Bio{
			Name: name,
			Age:  age,
			Text: truncate(strings.TrimSpace(text[m[0]:end]), MaxBioLen),
		})
	}
	return bios
}

// nameTitleStrategy builds tier 2: "<Name>, <title keyword>". Age is unknown
// at this tier.
func nameTitleStrategy(titleKeywords []string) Strategy {
	quoted := make([]string, len(titleKeywords))
	for i, kw := range titleKeywords {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(kw), " ", `\s+`)
	}
	re := regexp.MustCompile(`(?m)(?:^|\n\s*)(` + namePattern + `)[,\s]+(?i:` +
		strings.Join(quoted, "|") + `)`)

	return func(text string) []Bio {
		matches := re.FindAllStringSubmatchIndex(text, -1)

		var bios []Bio
		for i, m := range matches {
			name := strings.TrimSpace(text[m[2]:m[3]])
			if !isLikelyPersonName(name) {
				continue
			}

			end := len(text)
			if i+1 < len(matches) {
				end = matches[i+1][0]
			}
			bioText := strings.TrimSpace(text[m[0]:end])
			if len(bioText) < minBioLen {
				continue
			}
			bios = append(bios, Bio{
				Name: name,
				Age:  UnknownAge,
				Text: truncate(bioText, MaxBioLen),
			})
		}
		return bios
	}
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// segmentByParagraph is tier 3: split on paragraph boundaries and keep
// paragraphs whose first line opens with a person-shaped name. Paragraphs
// without a detectable leading name are skipped, not erroneous.
func segmentByParagraph(text string) []Bio {
	paragraphs := blankLineRe.Split(text, -1)
	// Normalized text carries single-newline block boundaries only.
	if len(paragraphs) == 1 && strings.Contains(text, "\n") {
		paragraphs = strings.Split(text, "\n")
	}

	var bios []Bio
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if len(para) < minBioLen {
			continue
		}
		firstLine := para
		if idx := strings.IndexByte(para, '\n'); idx >= 0 {
			firstLine = para[:idx]
		}
		name := leadingNameRe.FindString(firstLine)
		if name == "" || !isLikelyPersonName(name) {
			continue
		}
		bios = append(bios, Bio{
			Name: name,
			Age:  UnknownAge,
			Text: truncate(para, MaxBioLen),
		})
	}
	return bios
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
