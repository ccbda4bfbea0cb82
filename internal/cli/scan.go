package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/molscan/molscan/internal/model"
	"github.com/molscan/molscan/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	ignoreRobots bool
	httpProxy    string
	httpsProxy   string
	verifyURL    string
	verifyRate   float64
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <text|file|url|->",
	Short: "Scan text for chemical structures and citations",
	Long: `Scan extracts SMILES candidates from the input, verifies each against
PubChem, and reports the deduplicated canonical list plus the
citation-aware split of the message.

The argument is taken as a URL when it starts with http(s)://, as a file
when a file of that name exists, as "-" for stdin, and as literal text
otherwise.

Example:
  molscan scan "Consider ` + "`CCO`" + ` as ethanol"
  molscan scan notes.md --json report.json --md report.md
  molscan scan https://en.wikipedia.org/wiki/Benzene
  cat transcript.txt | molscan scan -`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().StringVar(&userAgent, "ua", "Molscan/0.1 (+https://github.com/molscan/molscan)", "HTTP User-Agent")
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable lookup memoization")
	scanCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "skip robots.txt checks for URL scans")
	scanCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scanCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Verification flags
	scanCmd.Flags().StringVar(&verifyURL, "verify-url", "", "override the PubChem base URL")
	scanCmd.Flags().Float64Var(&verifyRate, "verify-rate", 5, "max verification lookups per second")
}

func runScan(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()
	p := pipeline.NewPipeline(cfg)

	var report *model.Report
	switch {
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching: %s\n", input)
		}
		r, err := p.ScanURL(ctx, input)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		report = r
	case input == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		report = p.ScanText(ctx, "stdin", string(data))
	default:
		if data, err := os.ReadFile(input); err == nil {
			report = p.ScanText(ctx, input, string(data))
		} else {
			report = p.ScanText(ctx, "inline", input)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d candidates\n", report.Stats.Candidates)
		fmt.Fprintf(os.Stderr, "✓ Verified %d structures\n", report.Stats.Structures)
		fmt.Fprintf(os.Stderr, "✓ Found %d citation markers\n", report.Stats.Citations)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig merges the scan flags over the defaults
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.IgnoreRobots = ignoreRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	if verifyURL != "" {
		cfg.Verify.BaseURL = verifyURL
	}
	if verifyRate > 0 {
		cfg.Verify.RatePerSec = verifyRate
	}
	return cfg
}
