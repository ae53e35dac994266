package ports

import (
	"github.com/deckfold/deckfold/internal/domain/entities"
)

// PresentationParser defines the interface for segmenting markdown documents
// into presentations. Implementations are pure: the same input always yields
// the same output, and no call mutates its arguments.
type PresentationParser interface {
	// DetectFormat classifies a document by counting top-level headings
	// outside fenced code blocks.
	DetectFormat(content string) entities.PresentationFormat

	// Parse segments content under the given format. An empty format means
	// auto-detect. Parse reports structural problems as errors instead of
	// degrading; most callers want ParseOrFallback.
	Parse(content string, format entities.PresentationFormat, repo *entities.RepositoryInfo) (*entities.Presentation, error)

	// ParseOrFallback never fails: any internal parse error degrades to a
	// single-slide presentation carrying the raw content verbatim.
	ParseOrFallback(content string, format entities.PresentationFormat, repo *entities.RepositoryInfo) *entities.Presentation

	// ParseSource segments a document using the format implied by its
	// source descriptor and copies the descriptor onto the result.
	ParseSource(src entities.Source) *entities.Presentation

	// ParseChunks decomposes slide content into typed chunks.
	ParseChunks(content string, idPrefix string) []entities.ContentChunk

	// ExtractSlideTitle derives a slide title from content.
	ExtractSlideTitle(content string) string

	// NewErrorPresentation constructs a single-slide presentation that
	// displays an error message when upstream content cannot be loaded.
	NewErrorPresentation(message string) *entities.Presentation

	// UpdateSlideContent returns a copy of the slide with recomputed title,
	// chunks, and id. Line offsets are preserved; renumbering is the
	// caller's responsibility.
	UpdateSlideContent(slide entities.Slide, newContent string) entities.Slide

	// UpdatePresentationSlide returns a new presentation with the slide at
	// index replaced and OriginalContent regenerated via serialization.
	// An out-of-range index is an error.
	UpdatePresentationSlide(p *entities.Presentation, index int, newContent string) (*entities.Presentation, error)

	// Serialize rejoins the slides into a single markdown document using
	// the join rule implied by the presentation's format.
	Serialize(p *entities.Presentation) (string, error)
}

// ChunkStrategy splits slide content into typed chunks. Strategies are tried
// in order; the first one that claims the content wins. The default
// markdown-text strategy claims everything and terminates the list.
type ChunkStrategy interface {
	// Name identifies the strategy in diagnostics.
	Name() string

	// Parse returns the chunk decomposition and whether the strategy
	// claims this content. Returning ok=false falls through to the next
	// strategy.
	Parse(content string, idPrefix string) (chunks []entities.ContentChunk, ok bool)
}
