package ports

import (
	"context"
	"time"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// UpdateEvent is pushed to connected preview clients over the websocket
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Well-known update event types
const (
	EventTypeReload     = "reload"
	EventTypeFileChange = "file_change"
	EventTypeSlideEdit  = "slide_edit"
)

// ClientNotifier pushes update events to connected preview clients
type ClientNotifier interface {
	NotifyClients(event UpdateEvent) error
}

// PresentationService defines the main service interface for presentations
type PresentationService interface {
	// LoadPresentation loads and segments a presentation from a file path
	LoadPresentation(ctx context.Context, path string) (*entities.Presentation, error)

	// ParsePresentation segments raw markdown into a presentation
	ParsePresentation(ctx context.Context, content string, format entities.PresentationFormat) (*entities.Presentation, error)

	// UpdateSlide replaces the content of one slide, re-serializes, and
	// persists when the presentation is file-backed
	UpdateSlide(ctx context.Context, index int, content string) (*entities.Presentation, error)

	// ExportMarkdown serializes the current presentation back to markdown
	ExportMarkdown(ctx context.Context) (string, error)

	// CurrentPresentation returns the most recently loaded presentation
	CurrentPresentation() *entities.Presentation

	// RenderSlides renders all slides for the preview host
	RenderSlides(ctx context.Context, p *entities.Presentation) ([]RenderedSlide, error)
}
