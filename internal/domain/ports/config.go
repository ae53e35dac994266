package ports

import (
	"context"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// ConfigLoader defines the interface for loading application configuration
type ConfigLoader interface {
	// LoadGlobal loads the global configuration file, creating defaults on
	// first run
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads an optional per-directory configuration file; a nil
	// config with nil error means none exists
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// CreateDefaults writes a default configuration file at the given path
	CreateDefaults(ctx context.Context, path string) error

	// GetGlobalPath returns the path to the global configuration file
	GetGlobalPath() string

	// GetLocalPath returns the local configuration path for a directory
	GetLocalPath(dir string) string
}
