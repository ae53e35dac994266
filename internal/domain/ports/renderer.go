package ports

import (
	"github.com/deckfold/deckfold/internal/domain/entities"
)

// RenderedSlide represents a slide after preview rendering
type RenderedSlide struct {
	Slide     *entities.Slide
	HTML      string
	NotesHTML string
}

// SlideRenderer defines the interface for rendering a slide's chunks to HTML
// for the preview host. The segmentation engine never depends on it.
type SlideRenderer interface {
	// RenderSlide converts a slide's markdown chunks to HTML; diagram
	// chunks pass through as fenced code for the client to render.
	RenderSlide(slide *entities.Slide) (*RenderedSlide, error)
}
