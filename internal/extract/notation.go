package extract

import (
	"regexp"
	"strings"
)

// Inline code spans stay on one line; a match never crosses a newline.
var (
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
	labeledRe    = regexp.MustCompile(`(?i)\bsmiles\b[^:\n-]*[:-]\s*([A-Za-z0-9@+\[\]()\\/=#$%-]+)`)
)

// NotationExtractor extracts chemical-structure notation candidates from text
type NotationExtractor struct{}

// NewNotationExtractor creates a new notation extractor
func NewNotationExtractor() *NotationExtractor {
	return &NotationExtractor{}
}

// Extract scans text with two independent heuristics and returns the union
// of their matches: every backtick-delimited inline-code span, and every
// "SMILES: ..." labeled run of structure-notation characters. Matches are
// trimmed, empties discarded, and duplicates collapsed to the first
// occurrence. Order is deterministic: inline-code matches in text order,
// then labeled matches in text order.
func (e *NotationExtractor) Extract(text string) []string {
	seen := make(map[string]bool)
	var candidates []string

	add := func(match string) {
		match = strings.TrimSpace(match)
		if match == "" || seen[match] {
			return
		}
		seen[match] = true
		candidates = append(candidates, match)
	}

	for _, m := range inlineCodeRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range labeledRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	return candidates
}
