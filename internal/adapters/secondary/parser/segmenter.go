package parser

import (
	"strings"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// slideSpan is a contiguous run of source lines destined to become one
// slide. Line indices are zero-based into the segmented body.
type slideSpan struct {
	startLine int
	endLine   int
	lines     []string
}

// splitSpans partitions the body into slide spans in a single pass, with the
// fence tracker active so delimiter-looking lines inside code blocks never
// split.
func (e *Engine) splitSpans(body string, format entities.PresentationFormat) []slideSpan {
	lines := strings.Split(body, "\n")

	switch format {
	case entities.FormatHeader:
		return splitOnHeadings(lines)
	case entities.FormatHorizontalRule:
		return e.splitOnRules(lines)
	default:
		return []slideSpan{{startLine: 0, endLine: len(lines) - 1, lines: lines}}
	}
}

// splitOnHeadings starts a new span at every h1 or h2 line outside a fence.
// The delimiter line is retained as the first line of the new span; content
// preceding the first delimiter becomes its own leading span. Deeper
// headings (###+) never split.
func splitOnHeadings(lines []string) []slideSpan {
	tracker := NewFenceTracker()
	var spans []slideSpan
	var current *slideSpan

	for i, line := range lines {
		toggled := tracker.Observe(line)
		splits := !toggled && !tracker.InFence() && isHeadingDelimiter(line)

		if splits && current != nil {
			current.endLine = i - 1
			spans = append(spans, *current)
			current = nil
		}

		if current == nil {
			current = &slideSpan{startLine: i}
		}
		current.lines = append(current.lines, line)
	}

	if current != nil {
		current.endLine = len(lines) - 1
		spans = append(spans, *current)
	}

	return spans
}

// splitOnRules closes the current span at every line outside a fence whose
// trimmed value is exactly the rule marker. The delimiter line belongs to
// neither adjacent span; empty spans between consecutive delimiters are
// retained.
func (e *Engine) splitOnRules(lines []string) []slideSpan {
	tracker := NewFenceTracker()
	spans := []slideSpan{}
	current := slideSpan{startLine: 0}

	for i, line := range lines {
		toggled := tracker.Observe(line)

		if !toggled && !tracker.InFence() && strings.TrimSpace(line) == e.ruleMarker {
			current.endLine = i - 1
			spans = append(spans, clampSpan(current, len(lines)))
			current = slideSpan{startLine: i + 1}
			continue
		}

		current.lines = append(current.lines, line)
	}

	current.endLine = len(lines) - 1
	spans = append(spans, clampSpan(current, len(lines)))

	return spans
}

// clampSpan keeps degenerate (empty) span offsets inside the document and
// internally consistent: a blank slide's range collapses to the position
// where its content would appear.
func clampSpan(s slideSpan, totalLines int) slideSpan {
	last := totalLines - 1
	if last < 0 {
		last = 0
	}

	if s.startLine > last {
		s.startLine = last
	}
	if s.endLine < s.startLine {
		s.endLine = s.startLine
	}
	if s.endLine > last {
		s.endLine = last
	}

	return s
}

// isHeadingDelimiter reports whether a line is a slide-splitting heading
// (level 1 or 2 at column 0).
func isHeadingDelimiter(line string) bool {
	level := headingLevel(line)
	return level == 1 || level == 2
}

// buildSlide turns a span into a slide: trimmed content, content-addressed
// id, extracted title and speaker notes, chunk decomposition, and line
// offsets shifted past any frontmatter back into original document
// coordinates.
func (e *Engine) buildSlide(span slideSpan, index int, format entities.PresentationFormat, lineOffset int) entities.Slide {
	content := strings.TrimSpace(strings.Join(span.lines, "\n"))
	id := SlideID(index, content)

	title := UntitledSlideTitle
	if content != "" {
		title = e.ExtractSlideTitle(content)
	}

	return entities.Slide{
		ID:    id,
		Index: index,
		Title: title,
		Location: entities.SlideLocation{
			StartLine: span.startLine + lineOffset,
			EndLine:   span.endLine + lineOffset,
			Content:   content,
			Type:      format,
		},
		Chunks: e.ParseChunks(content, id),
		Notes:  extractNotes(content),
	}
}

// extractNotes collects speaker note lines ("Note:" prefixed) from slide
// content. The lines stay part of the content; this is a read-only view.
func extractNotes(content string) string {
	var notes []string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Note:") {
			notes = append(notes, strings.TrimSpace(strings.TrimPrefix(trimmed, "Note:")))
		}
	}

	return strings.Join(notes, "\n")
}
