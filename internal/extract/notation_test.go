package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestNotationExtractor_InlineCode(t *testing.T) {
	extractor := NewNotationExtractor()

	candidates := extractor.Extract("Consider `CCO` as ethanol.")

	if !reflect.DeepEqual(candidates, []string{"CCO"}) {
		t.Errorf("Expected [CCO], got %v", candidates)
	}
}

func TestNotationExtractor_Labeled(t *testing.T) {
	extractor := NewNotationExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"colon", "SMILES: C1=CC=CC=C1 is benzene", "C1=CC=CC=C1"},
		{"lowercase", "smiles: CCO", "CCO"},
		{"qualifier", "SMILES notation: CC(=O)O", "CC(=O)O"},
		{"dash", "SMILES - c1ccccc1", "c1ccccc1"},
		{"end of string", "The SMILES: CC(C)Br", "CC(C)Br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := extractor.Extract(tt.text)
			if len(candidates) != 1 || candidates[0] != tt.want {
				t.Errorf("Extract(%q) = %v, want [%s]", tt.text, candidates, tt.want)
			}
		})
	}
}

func TestNotationExtractor_BothHeuristicsUnion(t *testing.T) {
	extractor := NewNotationExtractor()

	text := "Ethanol is `CCO` and the SMILES: C1=CC=CC=C1 is benzene."
	candidates := extractor.Extract(text)

	want := []string{"CCO", "C1=CC=CC=C1"}
	if !reflect.DeepEqual(candidates, want) {
		t.Errorf("Expected %v, got %v", want, candidates)
	}
}

func TestNotationExtractor_OverlappingMatchesCollapse(t *testing.T) {
	extractor := NewNotationExtractor()

	// The same notation appears as inline code and as a labeled run.
	text := "Benzene `C1=CC=CC=C1` has SMILES: C1=CC=CC=C1 too."
	candidates := extractor.Extract(text)

	if len(candidates) != 1 {
		t.Errorf("Expected 1 candidate after dedup, got %d: %v", len(candidates), candidates)
	}
}

func TestNotationExtractor_NoEmptyOrWhitespaceResults(t *testing.T) {
	extractor := NewNotationExtractor()

	inputs := []string{
		"",
		"no notation here",
		"empty span `   ` only",
		"SMILES:",
		"`\t`",
	}

	for _, text := range inputs {
		for _, c := range extractor.Extract(text) {
			if strings.TrimSpace(c) == "" {
				t.Errorf("Extract(%q) produced empty candidate", text)
			}
			if c != strings.TrimSpace(c) {
				t.Errorf("Extract(%q) produced untrimmed candidate %q", text, c)
			}
		}
	}
}

func TestNotationExtractor_NoCrossLineJoining(t *testing.T) {
	extractor := NewNotationExtractor()

	// An unmatched backtick on one line must not swallow the next line.
	text := "open `CCO\nand another `CC(=O)O` here"
	candidates := extractor.Extract(text)

	for _, c := range candidates {
		if strings.Contains(c, "\n") {
			t.Errorf("Candidate spans lines: %q", c)
		}
	}
}

func TestNotationExtractor_Deterministic(t *testing.T) {
	extractor := NewNotationExtractor()

	text := "`CCO` then `c1ccccc1` then SMILES: CC(C)O end"
	first := extractor.Extract(text)
	for i := 0; i < 10; i++ {
		if got := extractor.Extract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Unstable order: %v vs %v", got, first)
		}
	}
}
