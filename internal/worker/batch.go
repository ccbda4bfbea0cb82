package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/molscan/molscan/internal/model"
	"github.com/molscan/molscan/internal/pipeline"
)

// Scanner is the per-document scan boundary
type Scanner interface {
	ScanText(ctx context.Context, source, text string) *model.Report
	ScanURL(ctx context.Context, rawURL string) (*model.Report, error)
}

// ScanJob scans one input: a URL or a local text file
type ScanJob struct {
	Input   string
	Scanner Scanner
}

// Execute runs the scan job
func (j *ScanJob) Execute(ctx context.Context) Result {
	report, err := scanInput(ctx, j.Scanner, j.Input)
	return &ScanResult{
		Input:  j.Input,
		Report: report,
		Error:  err,
	}
}

func scanInput(ctx context.Context, scanner Scanner, input string) (*model.Report, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return scanner.ScanURL(ctx, input)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	return scanner.ScanText(ctx, input, string(data)), nil
}

// ScanResult represents the result of a scan job
type ScanResult struct {
	Input  string
	Report *model.Report
	Error  error
}

// GetError returns the error from the scan result
func (r *ScanResult) GetError() error {
	return r.Error
}

// BatchProcessor scans multiple documents concurrently
type BatchProcessor struct {
	scanner     Scanner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(scanner Scanner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
	}
}

// Process scans the given inputs concurrently. Cancelling ctx stops the
// workers and abandons inputs not yet scanned.
func (b *BatchProcessor) Process(ctx context.Context, inputs []string) []*ScanResult {
	if len(inputs) == 0 {
		return []*ScanResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submission must run alongside the collector: both pool channels are
	// bounded, and a batch larger than the buffers would otherwise wedge.
	go func() {
		for _, input := range inputs {
			pool.Submit(&ScanJob{Input: input, Scanner: b.scanner})
		}
		pool.Close()
	}()

	results := pool.Wait()

	scanResults := make([]*ScanResult, len(results))
	for i, result := range results {
		scanResults[i] = result.(*ScanResult)
	}

	return scanResults
}

// ProcessFile reads inputs from a list file and scans them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*ScanResult, error) {
	inputs, err := ReadInputsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return b.Process(ctx, inputs), nil
}

// ReadInputsFromFile reads scan inputs from a file, one per line. Blank
// lines and # comments are skipped; duplicates are dropped.
func ReadInputsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}

var _ Scanner = (*pipeline.Pipeline)(nil)
