package builders

import (
	"fmt"
	"strings"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// PresentationBuilder helps build Presentation entities for testing
type PresentationBuilder struct {
	presentation *entities.Presentation
}

// NewPresentationBuilder creates a new presentation builder with sensible defaults
func NewPresentationBuilder() *PresentationBuilder {
	return &PresentationBuilder{
		presentation: &entities.Presentation{
			Slides:   []entities.Slide{},
			Format:   entities.FormatHorizontalRule,
			Metadata: make(map[string]interface{}),
		},
	}
}

// WithFormat sets the presentation format
func (b *PresentationBuilder) WithFormat(format entities.PresentationFormat) *PresentationBuilder {
	b.presentation.Format = format
	return b
}

// WithOriginalContent sets the original document content
func (b *PresentationBuilder) WithOriginalContent(content string) *PresentationBuilder {
	b.presentation.OriginalContent = content
	return b
}

// WithFrontmatter sets the raw frontmatter block
func (b *PresentationBuilder) WithFrontmatter(raw string) *PresentationBuilder {
	b.presentation.Frontmatter = raw
	return b
}

// WithSlide adds a single slide to the presentation
func (b *PresentationBuilder) WithSlide(slide entities.Slide) *PresentationBuilder {
	slide.Index = len(b.presentation.Slides)
	b.presentation.Slides = append(b.presentation.Slides, slide)
	return b
}

// WithSlideContents adds one slide per content string
func (b *PresentationBuilder) WithSlideContents(contents ...string) *PresentationBuilder {
	for _, content := range contents {
		b.WithSlide(NewSlideBuilder().WithContent(content).Build())
	}
	if b.presentation.OriginalContent == "" {
		b.presentation.OriginalContent = strings.Join(contents, "\n\n---\n\n")
	}
	return b
}

// WithMetadata sets a frontmatter metadata field
func (b *PresentationBuilder) WithMetadata(key string, value interface{}) *PresentationBuilder {
	if b.presentation.Metadata == nil {
		b.presentation.Metadata = make(map[string]interface{})
	}
	b.presentation.Metadata[key] = value
	return b
}

// WithSource attaches a source descriptor
func (b *PresentationBuilder) WithSource(src entities.Source) *PresentationBuilder {
	b.presentation.Source = &src
	return b
}

// Build creates the final Presentation entity
func (b *PresentationBuilder) Build() *entities.Presentation {
	slides := make([]entities.Slide, len(b.presentation.Slides))
	copy(slides, b.presentation.Slides)

	return &entities.Presentation{
		Slides:          slides,
		OriginalContent: b.presentation.OriginalContent,
		Format:          b.presentation.Format,
		Frontmatter:     b.presentation.Frontmatter,
		Metadata:        copyMetadata(b.presentation.Metadata),
		RepositoryInfo:  b.presentation.RepositoryInfo,
		Source:          b.presentation.Source,
	}
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{
			ID:    "slide-0-test",
			Title: "Test Slide",
			Location: entities.SlideLocation{
				Content: "# Test Slide",
				Type:    entities.FormatHorizontalRule,
			},
		},
	}
}

// WithID sets the slide id
func (b *SlideBuilder) WithID(id string) *SlideBuilder {
	b.slide.ID = id
	return b
}

// WithIndex sets the slide index and derives a matching id
func (b *SlideBuilder) WithIndex(index int) *SlideBuilder {
	b.slide.Index = index
	b.slide.ID = fmt.Sprintf("slide-%d-test", index)
	return b
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithContent sets the slide content and derives a title from its first line
func (b *SlideBuilder) WithContent(content string) *SlideBuilder {
	b.slide.Location.Content = content
	b.slide.Location.EndLine = b.slide.Location.StartLine + strings.Count(content, "\n")

	first := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	if title := strings.TrimLeft(first, "# "); title != "" {
		b.slide.Title = title
	}
	return b
}

// WithLines sets the slide's line span
func (b *SlideBuilder) WithLines(start, end int) *SlideBuilder {
	b.slide.Location.StartLine = start
	b.slide.Location.EndLine = end
	return b
}

// WithFormat sets the format the slide was produced under
func (b *SlideBuilder) WithFormat(format entities.PresentationFormat) *SlideBuilder {
	b.slide.Location.Type = format
	return b
}

// WithChunk appends a content chunk
func (b *SlideBuilder) WithChunk(chunk entities.ContentChunk) *SlideBuilder {
	b.slide.Chunks = append(b.slide.Chunks, chunk)
	return b
}

// WithNotes sets the speaker notes
func (b *SlideBuilder) WithNotes(notes string) *SlideBuilder {
	b.slide.Notes = notes
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() entities.Slide {
	slide := b.slide
	slide.Chunks = append([]entities.ContentChunk(nil), b.slide.Chunks...)
	return slide
}

// ChunkBuilder helps build ContentChunk entities for testing
type ChunkBuilder struct {
	chunk entities.ContentChunk
}

// NewChunkBuilder creates a new chunk builder producing a markdown chunk
func NewChunkBuilder() *ChunkBuilder {
	return &ChunkBuilder{
		chunk: entities.ContentChunk{
			ID:      "chunk-markdown-0-test",
			Type:    entities.ChunkMarkdown,
			Content: "some text",
		},
	}
}

// WithID sets the chunk id
func (b *ChunkBuilder) WithID(id string) *ChunkBuilder {
	b.chunk.ID = id
	return b
}

// AsMarkdown makes the chunk a markdown chunk with the given text
func (b *ChunkBuilder) AsMarkdown(content string) *ChunkBuilder {
	b.chunk.Type = entities.ChunkMarkdown
	b.chunk.Content = content
	b.chunk.Code = ""
	return b
}

// AsMermaid makes the chunk a diagram chunk with the given source
func (b *ChunkBuilder) AsMermaid(code string) *ChunkBuilder {
	b.chunk.Type = entities.ChunkMermaid
	b.chunk.Code = code
	b.chunk.Content = ""
	return b
}

// Build creates the final ContentChunk entity
func (b *ChunkBuilder) Build() entities.ContentChunk {
	return b.chunk
}

// copyMetadata shallow-copies a metadata map
func copyMetadata(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
