package ports

import (
	"context"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// PresentationRepository defines the interface for loading and persisting
// presentations from a backing store.
type PresentationRepository interface {
	// Load reads and segments a presentation from the given path.
	Load(ctx context.Context, path string) (*entities.Presentation, error)

	// Save serializes the presentation back to markdown and writes it to
	// the given path.
	Save(ctx context.Context, path string, p *entities.Presentation) error
}
