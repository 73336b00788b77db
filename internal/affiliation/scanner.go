package affiliation

import (
	"context"
	"maps"
	"regexp"
	"unicode/utf8"

	"github.com/jonathan/filing-affiliations/internal/biography"
	"github.com/jonathan/filing-affiliations/internal/ner"
	"github.com/jonathan/filing-affiliations/internal/normalize"
	"github.com/jonathan/filing-affiliations/internal/sections"
)

// Scanner finds organization mentions in biography text and classifies each
// one. A scanner is immutable after construction and safe for concurrent use.
type Scanner struct {
	cfg       Config
	orgRes    []*regexp.Regexp
	classify  ClassifyFunc
	segmenter *biography.Segmenter
	extractor ner.Extractor
}

// Option customizes scanner construction.
type Option func(*Scanner)

// WithExtractor wires a person-name extractor for section scanning. The
// choice is made once here, not per call; an extractor that reports
// unavailable leaves the pattern path in effect.
func WithExtractor(e ner.Extractor) Option {
	return func(s *Scanner) { s.extractor = e }
}

// NewScanner validates and compiles the configuration. An empty organization
// pattern list, an invalid pattern, or empty keyword lists (when no
// classifier override is supplied) are configuration errors, fatal to the
// call.
func NewScanner(cfg Config, opts ...Option) (*Scanner, error) {
	if len(cfg.OrgPatterns) == 0 {
		return nil, &ConfigurationError{Message: "no organization patterns configured"}
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = DefaultContextWindow
	}

	orgRes := make([]*regexp.Regexp, 0, len(cfg.OrgPatterns))
	for _, p := range cfg.OrgPatterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, &ConfigurationError{Message: "invalid organization pattern " + p, Cause: err}
		}
		orgRes = append(orgRes, re)
	}

	classify := cfg.Classify
	if classify == nil {
		if len(cfg.DegreeTokens) == 0 || len(cfg.RoleKeywords) == 0 ||
			len(cfg.EducationKeywords) == 0 || len(cfg.EmploymentKeywords) == 0 {
			return nil, &ConfigurationError{Message: "empty keyword configuration"}
		}
		classify = newClassifier(cfg)
	}

	s := &Scanner{
		cfg:       cfg,
		orgRes:    orgRes,
		classify:  classify,
		segmenter: biography.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.extractor != nil && !s.extractor.Available() {
		s.extractor = nil
	}
	return s, nil
}

// FindInText scans text for every non-overlapping organization mention and
// classifies each occurrence. personName is attached to every match; pass
// UnknownPerson when scanning text without per-person attribution. No
// mentions is an empty result, not an error.
func (s *Scanner) FindInText(text, personName string) []Match {
	if personName == "" {
		personName = UnknownPerson
	}

	var matches []Match
	for _, re := range s.orgRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			ctx := contextWindow(text, loc[0], loc[1], s.cfg.ContextWindow)
			affType, confidence := s.classify(ctx)
			matches = append(matches, Match{
				PersonName:   personName,
				Type:         affType,
				Organization: text[loc[0]:loc[1]],
				Context:      ctx,
				Confidence:   confidence,
			})
		}
	}
	return matches
}

// ScanFiling runs the full pipeline over raw filing markup: normalize, locate
// biography sections, segment them into per-person records, and scan each
// record. When no section matches, the whole normalized text is scanned with
// person "Unknown". filingInfo, if given, is copied onto every match so that
// matches stay independent of the caller's map and of each other.
func (s *Scanner) ScanFiling(ctx context.Context, markup string, filingInfo map[string]string) ([]Match, error) {
	text, err := normalize.ToPlainText(markup)
	if err != nil {
		return nil, err
	}

	var matches []Match
	secs := sections.Locate(text)
	if len(secs) == 0 {
		matches = s.FindInText(text, UnknownPerson)
	} else {
		for _, sec := range secs {
			matches = append(matches, s.scanSection(ctx, sec.Text)...)
		}
	}

	if filingInfo != nil {
		for i := range matches {
			matches[i].FilingInfo = maps.Clone(filingInfo)
		}
	}
	return matches, nil
}

// scanSection scans one located section, with NER-based person attribution
// when an extractor is wired and the pattern path otherwise.
func (s *Scanner) scanSection(ctx context.Context, sectionText string) []Match {
	if s.extractor != nil {
		if matches, ok := s.scanWithExtractor(ctx, sectionText); ok {
			return matches
		}
		// Extraction failure falls back to the pattern path below.
	}

	bios := s.segmenter.Segment(sectionText)
	if len(bios) == 0 {
		return s.FindInText(sectionText, UnknownPerson)
	}

	var matches []Match
	for _, bio := range bios {
		matches = append(matches, s.FindInText(bio.Text, bio.Name)...)
	}
	return matches
}

// scanWithExtractor attributes each organization mention to the person names
// the extractor finds inside the mention's context window. The second return
// is false when extraction failed and the caller should use the pattern path.
func (s *Scanner) scanWithExtractor(ctx context.Context, text string) ([]Match, bool) {
	var matches []Match
	for _, re := range s.orgRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			window := contextWindow(text, loc[0], loc[1], s.cfg.ContextWindow)
			persons, err := s.extractor.ExtractPersonNames(ctx, window)
			if err != nil {
				return nil, false
			}

			affType, confidence := s.classify(window)
			if len(persons) == 0 {
				matches = append(matches, Match{
					PersonName:   UnknownPerson,
					Type:         affType,
					Organization: text[loc[0]:loc[1]],
					Context:      window,
					Confidence:   confidence,
				})
				continue
			}
			for _, p := range persons {
				matches = append(matches, Match{
					PersonName:   p.Name,
					Type:         affType,
					Organization: text[loc[0]:loc[1]],
					Context:      window,
					Confidence:   confidence,
				})
			}
		}
	}
	return matches, true
}

// contextWindow extracts radius bytes around [start, end), clamped at the
// string edges and widened to rune boundaries so the window never splits a
// multi-byte character.
func contextWindow(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
