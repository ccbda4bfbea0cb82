package model

// SegmentKind discriminates the units a message body is split into
type SegmentKind string

const (
	SegmentProse    SegmentKind = "prose"    // a span of message text, Markdown-rendered
	SegmentCitation SegmentKind = "citation" // a bracketed page reference like [3] or [[3]]
)

// Segment is one unit of a split message body. Prose segments carry the
// original untrimmed span; citation segments carry the literal token text
// plus the 1-based page number it names.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`           // original span (literal token for citations)
	Page int         `json:"page,omitempty"` // 1-based page number, citation segments only
	HTML string      `json:"html,omitempty"` // rendered HTML, prose segments only
}

// IsCitation reports whether the segment is a citation reference.
func (s Segment) IsCitation() bool {
	return s.Kind == SegmentCitation
}
