package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/molscan/molscan/internal/pipeline"
	"github.com/molscan/molscan/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Scan multiple documents from a list file in parallel",
	Long: `Batch reads inputs from a file (one URL or file path per line, # for
comments) and scans them concurrently. Documents run in parallel;
verification lookups inside each document stay sequential and
rate-limited.

Example:
  molscan batch inputs.txt
  molscan batch inputs.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./molscan-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	cfg := buildConfig()
	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, listPath)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	reporter := pipeline.NewReporter()
	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Input, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, reportName(result.Input)+".json")
		if err := reporter.WriteJSON(result.Report, jsonPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Input, err)
			continue
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s\n", result.Input, jsonPath)
		}
	}

	fmt.Printf("Batch complete: %d scanned, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

// reportName flattens an input path or URL into a safe file name
func reportName(input string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(input, "https://"), "http://")
	replacer := strings.NewReplacer("/", "_", ":", "_", "?", "_", "&", "_", "#", "_", " ", "_")
	name = replacer.Replace(name)
	name = strings.Trim(name, "._")
	if name == "" {
		name = "report"
	}
	return name
}
