package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// ErrSlideIndexOutOfRange reports a mutation against a slide position that
// does not exist. Mutation fails loudly instead of silently no-oping.
var ErrSlideIndexOutOfRange = errors.New("slide index out of range")

// Serialize rejoins the slides into a single markdown document using the
// join rule implied by the presentation's format. Parsing the output with
// the same format reproduces an equivalent slide sequence (same count, same
// titles); byte-for-byte whitespace equality is out of contract.
func (e *Engine) Serialize(p *entities.Presentation) (string, error) {
	if p == nil {
		return "", errors.New("presentation cannot be nil")
	}
	if err := p.Format.Validate(); err != nil {
		return "", err
	}

	var body string

	switch p.Format {
	case entities.FormatHeader:
		parts := make([]string, 0, len(p.Slides))
		for i := range p.Slides {
			parts = append(parts, ensureHeadingPrefix(p.Slides[i].Location.Content))
		}
		body = strings.Join(parts, "\n\n")

	case entities.FormatHorizontalRule:
		parts := make([]string, 0, len(p.Slides))
		for i := range p.Slides {
			parts = append(parts, p.Slides[i].Location.Content)
		}
		body = strings.Join(parts, "\n\n"+e.ruleMarker+"\n\n")

	default:
		parts := make([]string, 0, len(p.Slides))
		for i := range p.Slides {
			parts = append(parts, p.Slides[i].Location.Content)
		}
		body = strings.Join(parts, "\n\n")
	}

	if p.Frontmatter != "" {
		if body == "" {
			return p.Frontmatter + "\n", nil
		}
		return p.Frontmatter + "\n\n" + body, nil
	}

	return body, nil
}

// ensureHeadingPrefix makes a slide's content start with a heading line so
// re-parsing under HEADER format keeps it a separate slide. The prefix goes
// on the first line, which preserves the slide's derived title.
func ensureHeadingPrefix(content string) string {
	if content == "" {
		return content
	}
	if strings.HasPrefix(strings.TrimSpace(content), "#") {
		return content
	}
	return "## " + content
}

// UpdateSlideContent returns a copy of the slide with title, chunks, notes,
// and id recomputed from the new content. StartLine and EndLine are left
// untouched; renumbering is the caller's responsibility.
func (e *Engine) UpdateSlideContent(slide entities.Slide, newContent string) entities.Slide {
	content := strings.TrimSpace(normalizeNewlines(newContent))
	id := SlideID(slide.Index, content)

	title := UntitledSlideTitle
	if content != "" {
		title = e.ExtractSlideTitle(content)
	}

	return entities.Slide{
		ID:    id,
		Index: slide.Index,
		Title: title,
		Location: entities.SlideLocation{
			StartLine: slide.Location.StartLine,
			EndLine:   slide.Location.EndLine,
			Content:   content,
			Type:      slide.Location.Type,
		},
		Chunks: e.ParseChunks(content, id),
		Notes:  extractNotes(content),
	}
}

// UpdatePresentationSlide returns a new presentation with the slide at index
// replaced and OriginalContent regenerated via serialization. The input
// presentation is never mutated. An out-of-range index is an error.
func (e *Engine) UpdatePresentationSlide(p *entities.Presentation, index int, newContent string) (*entities.Presentation, error) {
	if p == nil {
		return nil, errors.New("presentation cannot be nil")
	}

	if index < 0 || index >= len(p.Slides) {
		return nil, fmt.Errorf("%w: %d (presentation has %d slides)", ErrSlideIndexOutOfRange, index, len(p.Slides))
	}

	slides := make([]entities.Slide, len(p.Slides))
	copy(slides, p.Slides)
	slides[index] = e.UpdateSlideContent(p.Slides[index], newContent)

	next := *p
	next.Slides = slides

	serialized, err := e.Serialize(&next)
	if err != nil {
		return nil, fmt.Errorf("serializing updated presentation: %w", err)
	}
	next.OriginalContent = serialized

	return &next, nil
}
