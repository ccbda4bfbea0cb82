package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/molscan/molscan/internal/model"
)

// Double brackets first so [[2]] is one token, not "[" + [2] + "]".
var citationRe = regexp.MustCompile(`\[\[(\d+)\]\]|\[(\d+)\]`)

// Split partitions message text into citation and prose segments, in
// original order. Citation segments keep the literal token text and its
// 1-based page number; prose segments keep the original untrimmed span.
// Whitespace-only prose spans are dropped; trimming is only the emptiness
// test, never applied to emitted content.
func Split(text string) []model.Segment {
	var segments []model.Segment

	last := 0
	for _, loc := range citationRe.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			segments = appendProse(segments, text[last:loc[0]])
		}
		segments = append(segments, model.Segment{
			Kind: model.SegmentCitation,
			Text: text[loc[0]:loc[1]],
			Page: pageNumber(text, loc),
		})
		last = loc[1]
	}
	if last < len(text) {
		segments = appendProse(segments, text[last:])
	}

	return segments
}

func appendProse(segments []model.Segment, span string) []model.Segment {
	if strings.TrimSpace(span) == "" {
		return segments
	}
	return append(segments, model.Segment{
		Kind: model.SegmentProse,
		Text: span,
	})
}

// pageNumber reads the digits group of a citation match: group 1 for the
// [[N]] form, group 2 for [N].
func pageNumber(text string, loc []int) int {
	start, end := loc[2], loc[3]
	if start < 0 {
		start, end = loc[4], loc[5]
	}
	page, err := strconv.Atoi(text[start:end])
	if err != nil {
		return 0
	}
	return page
}
