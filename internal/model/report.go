package model

import "time"

// Report represents the complete result of scanning one document
type Report struct {
	Source    string     `json:"source"`               // Where the text came from ("stdin", a file path, a URL, "chat")
	SourceURL string     `json:"source_url,omitempty"` // Final URL after redirects, URL scans only
	ScannedAt time.Time  `json:"scanned_at"`           // When the scan occurred
	FetchMeta *FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata, URL scans only

	Candidates []string `json:"candidates"` // Raw extracted notation candidates, first-seen order
	Structures []string `json:"structures"` // Verified (canonical or raw-fallback) notations, deduplicated

	Segments []Segment `json:"segments"` // Citation-aware split of the message body

	Stats Stats `json:"stats"` // Aggregate counts
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// Stats summarizes a scan for the stdout summary and the JSON report
type Stats struct {
	Candidates int `json:"candidates"` // Unique candidates extracted
	Structures int `json:"structures"` // Entries in the final verified list
	Citations  int `json:"citations"`  // Citation tokens found in the message body
	ProseSpans int `json:"prose_spans"`
}

// NewStats derives aggregate counts from scan results.
func NewStats(candidates, structures []string, segments []Segment) Stats {
	s := Stats{
		Candidates: len(candidates),
		Structures: len(structures),
	}
	for _, seg := range segments {
		if seg.IsCitation() {
			s.Citations++
		} else {
			s.ProseSpans++
		}
	}
	return s
}
