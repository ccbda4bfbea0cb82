package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/molscan/molscan/internal/cache"
	"github.com/molscan/molscan/internal/extract"
	"github.com/molscan/molscan/internal/model"
	"github.com/molscan/molscan/internal/render"
	"github.com/molscan/molscan/internal/verify"
)

// Pipeline orchestrates the complete scan: fetch or read text, extract
// notation candidates, verify them against the lookup service, and split
// the message into citation-aware segments.
type Pipeline struct {
	fetcher   *Fetcher
	extractor *extract.NotationExtractor
	verifier  *verify.Pipeline
	renderer  *render.Renderer
	reporter  *Reporter
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var lookupCache cache.Cache
	if cfg.Cache.Enabled {
		lookupCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	client := verify.NewPubChemClient(cfg.Verify, cfg.HTTP, lookupCache, cfg.Cache.TTL)

	return &Pipeline{
		fetcher:   NewFetcher(cfg.HTTP),
		extractor: extract.NewNotationExtractor(),
		verifier:  verify.NewPipeline(client),
		renderer:  render.NewRenderer(nil, cfg.Output.Verbose),
		reporter:  NewReporter(),
		config:    cfg,
	}
}

// ScanText scans a block of text directly. source labels where the text
// came from ("stdin", a file path, "chat").
func (p *Pipeline) ScanText(ctx context.Context, source, text string) *model.Report {
	candidates := p.extractor.Extract(text)
	structures := p.verifier.Verify(ctx, candidates)
	segments := p.renderer.Render(text)

	return &model.Report{
		Source:     source,
		ScannedAt:  time.Now().UTC(),
		Candidates: candidates,
		Structures: structures,
		Segments:   segments,
		Stats:      model.NewStats(candidates, structures, segments),
	}
}

// ScanURL fetches a page and scans its visible text
func (p *Pipeline) ScanURL(ctx context.Context, rawURL string) (*model.Report, error) {
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	report := p.ScanText(ctx, rawURL, fetched.Text)
	report.SourceURL = fetched.FinalURL
	report.FetchMeta = &fetched.Meta
	return report, nil
}

// RenderReport writes the report to the configured outputs and prints the
// stdout summary.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.reporter.WriteJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if mdPath != "" {
		if err := p.reporter.WriteMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}
	p.reporter.PrintSummary(report, verbose)
	return nil
}
