package render

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"os"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/molscan/molscan/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	gmutil "github.com/yuin/goldmark/util"
)

// Renderer renders message text as citation-aware segments, pushing prose
// spans through goldmark (GFM tables, math) and leaving citation tokens as
// typed references. The Markdown grammar is goldmark's; this type only
// customizes link target-blanking, code-block styling, and the class hooks
// on tables, cells, and list items.
type Renderer struct {
	md         goldmark.Markdown
	onCitation func()
	verbose    bool
}

// NewRenderer creates a renderer. onCitation is the optional zero-argument
// notifier invoked on every citation activation; nil disables it.
func NewRenderer(onCitation func(), verbose bool) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, mathjax.MathJax),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				gmutil.Prioritized(&styleTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	return &Renderer{
		md:         md,
		onCitation: onCitation,
		verbose:    verbose,
	}
}

// Render splits text into segments and fills in the HTML of every prose
// segment. A goldmark failure on one span degrades that span to escaped
// plain text; it never aborts the rest of the message.
func (r *Renderer) Render(message string) []model.Segment {
	segments := Split(message)
	for i := range segments {
		if segments[i].Kind != model.SegmentProse {
			continue
		}
		segments[i].HTML = r.renderProse(segments[i].Text)
	}
	return segments
}

// ActivateCitation fires the citation-click notifier, if one is set. The
// notifier takes no arguments: activation is a single "show citations"
// signal, not a page jump.
func (r *Renderer) ActivateCitation() {
	if r.onCitation != nil {
		r.onCitation()
	}
}

func (r *Renderer) renderProse(span string) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.verbose {
				fmt.Fprintf(os.Stderr, "markdown render failed: %v\n", rec)
			}
			out = plainHTML(span)
		}
	}()

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(span), &buf); err != nil {
		if r.verbose {
			fmt.Fprintf(os.Stderr, "markdown render failed: %v\n", err)
		}
		return plainHTML(span)
	}
	return buf.String()
}

// plainHTML is the degraded rendering for a span the Markdown engine
// rejected: the same text, escaped, in a bare paragraph.
func plainHTML(span string) string {
	return "<p>" + stdhtml.EscapeString(span) + "</p>"
}

// styleTransformer applies the fixed presentation attributes: links open in
// a new tab, fenced code blocks keep a styling hook distinct from inline
// code, and tables, cells, and list items get wrapper classes.
type styleTransformer struct{}

func (t *styleTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindLink, ast.KindAutoLink:
			n.SetAttributeString("target", []byte("_blank"))
			n.SetAttributeString("rel", []byte("noopener noreferrer"))
		case ast.KindFencedCodeBlock:
			n.SetAttributeString("class", []byte("code-block"))
		case extast.KindTable:
			n.SetAttributeString("class", []byte("message-table"))
		case extast.KindTableCell:
			n.SetAttributeString("class", []byte("message-cell"))
		case ast.KindListItem:
			n.SetAttributeString("class", []byte("message-list-item"))
		}
		return ast.WalkContinue, nil
	})
}
