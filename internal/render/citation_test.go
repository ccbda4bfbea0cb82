package render

import (
	"strings"
	"testing"

	"github.com/molscan/molscan/internal/model"
)

func TestSplit_MixedCitationForms(t *testing.T) {
	segments := Split("See [[2]] and also [3] for details.")

	want := []model.Segment{
		{Kind: model.SegmentProse, Text: "See "},
		{Kind: model.SegmentCitation, Text: "[[2]]", Page: 2},
		{Kind: model.SegmentProse, Text: " and also "},
		{Kind: model.SegmentCitation, Text: "[3]", Page: 3},
		{Kind: model.SegmentProse, Text: " for details."},
	}

	if len(segments) != len(want) {
		t.Fatalf("Expected %d segments, got %d: %+v", len(want), len(segments), segments)
	}
	for i := range want {
		if segments[i].Kind != want[i].Kind || segments[i].Text != want[i].Text || segments[i].Page != want[i].Page {
			t.Errorf("Segment %d: expected %+v, got %+v", i, want[i], segments[i])
		}
	}
}

func TestSplit_LosslessPartition(t *testing.T) {
	inputs := []string{
		"See [[2]] and also [3] for details.",
		"no citations at all",
		"[1]leading token",
		"trailing token[12]",
		"[[4]][[5]]back to back",
		"math [7] inside $x^2$ prose",
	}

	for _, input := range inputs {
		var rebuilt strings.Builder
		for _, seg := range Split(input) {
			rebuilt.WriteString(seg.Text)
		}
		if rebuilt.String() != input {
			t.Errorf("Split(%q) lost text: rebuilt %q", input, rebuilt.String())
		}
	}
}

func TestSplit_WhitespaceOnlyProseDropped(t *testing.T) {
	segments := Split("[1]   [2]")

	if len(segments) != 2 {
		t.Fatalf("Expected 2 citation segments, got %d: %+v", len(segments), segments)
	}
	for _, seg := range segments {
		if !seg.IsCitation() {
			t.Errorf("Expected only citations, got %+v", seg)
		}
	}
}

func TestSplit_ProseKeptUntrimmed(t *testing.T) {
	segments := Split("see [1] here ")

	last := segments[len(segments)-1]
	if last.Text != " here " {
		t.Errorf("Prose span must keep original whitespace, got %q", last.Text)
	}
}

func TestSplit_NonCitationBracketsAreProse(t *testing.T) {
	segments := Split("an array [a, b] and [x1] stay prose")

	for _, seg := range segments {
		if seg.IsCitation() {
			t.Errorf("Unexpected citation segment: %+v", seg)
		}
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if segments := Split(""); len(segments) != 0 {
		t.Errorf("Expected no segments for empty input, got %+v", segments)
	}
}

func TestSplit_DoubleBracketsTakePriority(t *testing.T) {
	segments := Split("[[10]]")

	if len(segments) != 1 || segments[0].Text != "[[10]]" || segments[0].Page != 10 {
		t.Errorf("Expected one [[10]] citation with page 10, got %+v", segments)
	}
}
