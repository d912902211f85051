package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"keyword-scraper/utils"
)

var (
	// timestampRegexp matches clock-style timestamps like "4:22"
	timestampRegexp = regexp.MustCompile(`\d+:\d+`)
	// priceRegexp matches currency amounts like "$19.99"
	priceRegexp = regexp.MustCompile(`\$\d+\.\d+`)
	// sourceRegexp matches video/site provenance markers and URLs
	sourceRegexp = regexp.MustCompile(`YouTube\s·\s.*|www\..*\.com|https?://.*`)
	// viewsRegexp matches view counts with dates and relative dates like "3 days ago"
	viewsRegexp = regexp.MustCompile(`\d+[KM]?\+?\sviews\s·\s\w+\s\d+.*|\d+\s\w+\sago`)
	// curbsideRegexp matches the store-pickup promo span
	curbsideRegexp = regexp.MustCompile(`CURBSIDE.*?Pick up today`)
	// ratingRegexp matches rating fragments like "4.5(120+)"
	ratingRegexp = regexp.MustCompile(`\d+\.\d+\(\d+[k+]?\)`)
	// quotedPairRegexp matches two quoted review fragments joined by a middot.
	// Must run before junkCharsRegexp, which strips the quotes and middots
	// this pattern anchors on.
	quotedPairRegexp = regexp.MustCompile(`["“].*["”]\s·\s["“].*["”]`)
	// junkCharsRegexp matches decorative characters removed outright
	junkCharsRegexp = regexp.MustCompile(`["“”·\\|]`)
)

// DefaultDenylist contains promotional phrases that disqualify a candidate
// keyword when present as a case-insensitive substring.
var DefaultDenylist = []string{
	"more products", "see more", "view all", "shop now", "curbside",
	"pick up today", "amazon.com", "target", "30-day returns", "view all posts",
}

// Rules configures validation for one signal field.
type Rules struct {
	MinLength int
	Denylist  []string
}

// KeywordRules applies to autocomplete and related-search keywords.
var KeywordRules = Rules{MinLength: 3, Denylist: DefaultDenylist}

// QuestionRules applies to People Also Ask questions. Questions have a
// higher length floor and no denylist check.
var QuestionRules = Rules{MinLength: 5}

// Normalize strips recognized noise patterns (timestamps, prices, URLs,
// view counts, promo spans, rating fragments, decorative punctuation) from
// a raw scraped string and collapses whitespace. It is a total, pure
// function and is idempotent: the cascade is re-applied until the output
// stops changing. Returns "" for empty input.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := raw
	// Every substitution deletes characters, so the loop terminates.
	for i := 0; i < 8; i++ {
		next := normalizePass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func normalizePass(s string) string {
	s = timestampRegexp.ReplaceAllString(s, "")
	s = priceRegexp.ReplaceAllString(s, "")
	s = sourceRegexp.ReplaceAllString(s, "")
	s = viewsRegexp.ReplaceAllString(s, "")
	s = collapseWhitespace(s)
	s = curbsideRegexp.ReplaceAllString(s, "")
	s = ratingRegexp.ReplaceAllString(s, "")
	s = quotedPairRegexp.ReplaceAllString(s, "")
	s = junkCharsRegexp.ReplaceAllString(s, "")
	return strings.TrimSpace(collapseWhitespace(s))
}

// collapseWhitespace reduces every whitespace run, newlines included, to a
// single space.
func collapseWhitespace(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// Valid reports whether a cleaned string qualifies as a usable keyword or
// question under the given rules. Rejected: empty strings, strings at or
// below the length floor, purely numeric strings (allowing one decimal
// point), and strings containing a denylisted phrase.
func Valid(s string, rules Rules) bool {
	if s == "" || utf8.RuneCountInString(s) <= rules.MinLength {
		return false
	}
	if isNumeric(s) {
		return false
	}

	lower := strings.ToLower(s)
	for _, phrase := range rules.Denylist {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// isNumeric reports whether s consists only of digits after removing at
// most one decimal point.
func isNumeric(s string) bool {
	s = strings.Replace(s, ".", "", 1)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Dedupe removes case-insensitive duplicates from items, keeping the first
// occurrence with its original casing and preserving input order. Runs in
// O(n). Downstream consumers treat list order as relevance order, so
// stability matters here.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Pipeline is the shared normalize → validate → dedupe unit. Both the live
// extractor and the batch cleanup command call it, so cleaning semantics
// cannot drift between the two.
type Pipeline struct {
	logger *utils.Logger
}

// NewPipeline creates a Pipeline with the given logger.
func NewPipeline(logger *utils.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// ProcessList normalizes every raw item, drops the ones that fail
// validation under rules, and deduplicates the survivors. The result is
// never nil, so empty fields serialize as [] rather than null.
func (p *Pipeline) ProcessList(raw []string, rules Rules) []string {
	cleaned := make([]string, 0, len(raw))
	for _, item := range raw {
		c := Normalize(item)
		if !Valid(c, rules) {
			p.logger.Debug("[pipeline] Dropped %q (cleaned: %q)", item, c)
			continue
		}
		cleaned = append(cleaned, c)
	}

	out := Dedupe(cleaned)
	p.logger.Debug("[pipeline] %d raw → %d valid → %d unique", len(raw), len(cleaned), len(out))
	return out
}
