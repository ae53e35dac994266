package renderer

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

// SlideRenderer renders a slide's chunks to HTML for the preview host using
// Goldmark. Markdown chunks are converted, diagram chunks pass through as
// fenced source for the client-side renderer to pick up.
type SlideRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	sanitize  bool
}

// Option configures a SlideRenderer
type Option func(*SlideRenderer)

// WithSanitization enables HTML sanitization of rendered output. The preview
// host enables it for remote sources.
func WithSanitization() Option {
	return func(r *SlideRenderer) {
		r.sanitize = true
	}
}

// NewSlideRenderer creates a Goldmark-based slide renderer
func NewSlideRenderer(opts ...Option) *SlideRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,           // GitHub Flavored Markdown
			extension.Typographer,   // Smart punctuation
			extension.Table,         // Tables
			extension.Strikethrough, // ~~strikethrough~~
			extension.TaskList,      // - [ ] task lists
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(), // Allow raw HTML
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("pre", "code", "div", "span")

	r := &SlideRenderer{
		md:        md,
		sanitizer: policy,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RenderSlide converts a slide's chunks to HTML. Speaker notes are rendered
// separately and never appear in the slide body.
func (r *SlideRenderer) RenderSlide(slide *entities.Slide) (*ports.RenderedSlide, error) {
	if slide == nil {
		return nil, fmt.Errorf("slide cannot be nil")
	}

	var parts []string
	for i, chunk := range slide.Chunks {
		rendered, err := r.renderChunk(chunk)
		if err != nil {
			return nil, fmt.Errorf("rendering chunk %d of slide %s: %w", i, slide.ID, err)
		}
		if rendered != "" {
			parts = append(parts, rendered)
		}
	}

	body := strings.Join(parts, "\n")

	// A slide with no chunks still renders its raw content so blank and
	// chunk-less slides stay visible in the deck.
	if body == "" && slide.ContentWithoutNotes() != "" {
		var err error
		body, err = r.renderMarkdown(slide.ContentWithoutNotes())
		if err != nil {
			return nil, fmt.Errorf("rendering slide %s: %w", slide.ID, err)
		}
	}

	notesHTML := ""
	if slide.HasNotes() {
		var err error
		notesHTML, err = r.renderMarkdown(slide.Notes)
		if err != nil {
			return nil, fmt.Errorf("rendering notes of slide %s: %w", slide.ID, err)
		}
	}

	return &ports.RenderedSlide{
		Slide:     slide,
		HTML:      body,
		NotesHTML: notesHTML,
	}, nil
}

// renderChunk renders a single content chunk
func (r *SlideRenderer) renderChunk(chunk entities.ContentChunk) (string, error) {
	if chunk.IsDiagram() {
		// Diagram source is escaped and handed to the client renderer
		// untouched; sanitization would mangle the diagram syntax.
		return fmt.Sprintf(`<pre class="mermaid">%s</pre>`, html.EscapeString(chunk.Code)), nil
	}
	return r.renderMarkdown(chunk.Content)
}

// renderMarkdown converts markdown text to (optionally sanitized) HTML
func (r *SlideRenderer) renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	out := buf.String()
	if r.sanitize {
		out = r.sanitizer.Sanitize(out)
	}
	return out, nil
}

var _ ports.SlideRenderer = (*SlideRenderer)(nil)
