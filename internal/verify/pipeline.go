package verify

import (
	"context"
	"strings"
)

// Pipeline verifies extracted candidates against a lookup Client
type Pipeline struct {
	client Client
}

// NewPipeline creates a new verification pipeline
func NewPipeline(client Client) *Pipeline {
	return &Pipeline{client: client}
}

// Verify resolves each candidate to its canonical form, strictly one lookup
// at a time to bound load on the external service. A failed lookup or an
// empty canonical result degrades that entry to the raw candidate; it never
// aborts the batch. The final list is deduplicated in first-seen order. An
// empty input returns an empty list without touching the client.
func (p *Pipeline) Verify(ctx context.Context, candidates []string) []string {
	if len(candidates) == 0 {
		return []string{}
	}

	results := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		canonical, err := p.client.Lookup(ctx, candidate)
		canonical = strings.TrimSpace(canonical)
		if err != nil || canonical == "" {
			results = append(results, candidate)
			continue
		}
		results = append(results, canonical)
	}

	return Dedupe(results)
}

// Dedupe removes duplicate entries, preserving first-seen order.
func Dedupe(entries []string) []string {
	seen := make(map[string]bool)
	unique := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !seen[entry] {
			seen[entry] = true
			unique = append(unique, entry)
		}
	}

	return unique
}
