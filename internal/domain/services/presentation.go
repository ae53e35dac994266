package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

// PresentationService implements the business logic for presentations: it
// coordinates the segmentation engine, the backing store, and the preview
// renderer, and tracks the currently served presentation.
type PresentationService struct {
	parser   ports.PresentationParser
	repo     ports.PresentationRepository
	renderer ports.SlideRenderer

	mu      sync.RWMutex
	current *entities.Presentation
	path    string
}

// NewPresentationService creates a new presentation service instance
func NewPresentationService(
	parser ports.PresentationParser,
	repo ports.PresentationRepository,
	renderer ports.SlideRenderer,
) *PresentationService {
	return &PresentationService{
		parser:   parser,
		repo:     repo,
		renderer: renderer,
	}
}

// LoadPresentation loads and segments a presentation from a file path and
// makes it the current one.
func (s *PresentationService) LoadPresentation(ctx context.Context, path string) (*entities.Presentation, error) {
	if path == "" {
		return nil, errors.New("presentation path cannot be empty")
	}

	presentation, err := s.repo.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading presentation: %w", err)
	}

	if err := presentation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid presentation: %w", err)
	}

	s.mu.Lock()
	s.current = presentation
	s.path = path
	s.mu.Unlock()

	return presentation, nil
}

// ParsePresentation segments raw markdown into a presentation without making
// it current. An empty format auto-detects.
func (s *PresentationService) ParsePresentation(ctx context.Context, content string, format entities.PresentationFormat) (*entities.Presentation, error) {
	if content == "" {
		return nil, errors.New("presentation content cannot be empty")
	}

	presentation := s.parser.ParseOrFallback(content, format, nil)

	if err := presentation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid presentation: %w", err)
	}

	return presentation, nil
}

// UpdateSlide replaces the content of one slide of the current presentation,
// regenerates the serialized document, persists it when file-backed, and
// returns the new presentation. Out-of-range indices are an error.
func (s *PresentationService) UpdateSlide(ctx context.Context, index int, content string) (*entities.Presentation, error) {
	s.mu.RLock()
	current := s.current
	path := s.path
	s.mu.RUnlock()

	if current == nil {
		return nil, errors.New("no presentation loaded")
	}

	updated, err := s.parser.UpdatePresentationSlide(current, index, content)
	if err != nil {
		return nil, fmt.Errorf("updating slide %d: %w", index, err)
	}

	if path != "" {
		if err := s.repo.Save(ctx, path, updated); err != nil {
			return nil, fmt.Errorf("persisting updated presentation: %w", err)
		}
	}

	s.mu.Lock()
	s.current = updated
	s.mu.Unlock()

	return updated, nil
}

// ExportMarkdown serializes the current presentation back to markdown.
func (s *PresentationService) ExportMarkdown(ctx context.Context) (string, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return "", errors.New("no presentation loaded")
	}

	serialized, err := s.parser.Serialize(current)
	if err != nil {
		return "", fmt.Errorf("serializing presentation: %w", err)
	}

	return serialized, nil
}

// CurrentPresentation returns the most recently loaded presentation, or nil.
func (s *PresentationService) CurrentPresentation() *entities.Presentation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// RenderSlides renders all slides in a presentation for the preview host.
func (s *PresentationService) RenderSlides(ctx context.Context, presentation *entities.Presentation) ([]ports.RenderedSlide, error) {
	if presentation == nil {
		return nil, errors.New("presentation cannot be nil")
	}
	if s.renderer == nil {
		return nil, errors.New("no renderer configured")
	}

	rendered := make([]ports.RenderedSlide, 0, len(presentation.Slides))

	for i := range presentation.Slides {
		slide := &presentation.Slides[i]

		renderedSlide, err := s.renderer.RenderSlide(slide)
		if err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", i+1, err)
		}

		rendered = append(rendered, *renderedSlide)
	}

	return rendered, nil
}

var _ ports.PresentationService = (*PresentationService)(nil)
