package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/molscan/molscan/internal/model"
)

// Reporter renders scan reports to files and to stdout
type Reporter struct{}

// NewReporter creates a new reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

// WriteJSON writes the report as indented JSON
func (r *Reporter) WriteJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteMarkdown writes an annotated Markdown rendition: the verified
// structure list as copyable code chips, then the message with citation
// tokens turned into reference links.
func (r *Reporter) WriteMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Molscan Report\n\n")
	fmt.Fprintf(&b, "Source: %s  \n", report.Source)
	fmt.Fprintf(&b, "Scanned: %s\n\n", report.ScannedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Structures\n\n")
	if len(report.Structures) == 0 {
		b.WriteString("No chemical structures found.\n\n")
	} else {
		for _, s := range report.Structures {
			fmt.Fprintf(&b, "- `%s`\n", s)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Message\n\n")
	for _, seg := range report.Segments {
		if seg.IsCitation() {
			fmt.Fprintf(&b, "[%d](#citation-%d)", seg.Page, seg.Page)
			continue
		}
		b.WriteString(seg.Text)
	}
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// PrintSummary prints the scan result counts to stdout
func (r *Reporter) PrintSummary(report *model.Report, verbose bool) {
	fmt.Printf("Scanned %s: %d candidates, %d structures, %d citations\n",
		report.Source, report.Stats.Candidates, report.Stats.Structures, report.Stats.Citations)

	if verbose {
		for _, s := range report.Structures {
			fmt.Printf("  %s\n", s)
		}
	}
}
