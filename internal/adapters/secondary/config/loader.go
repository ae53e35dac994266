package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

const localConfigName = "deckfold.toml"

// TOMLLoader loads layered TOML configuration: a global file under the
// user's config directory plus an optional per-presentation file next to
// the markdown source.
type TOMLLoader struct {
	globalPath string
}

// LoaderOption configures a TOMLLoader
type LoaderOption func(*TOMLLoader)

// WithGlobalPath overrides the global config file location.
func WithGlobalPath(path string) LoaderOption {
	return func(l *TOMLLoader) {
		l.globalPath = path
	}
}

// NewTOMLLoader creates a TOML configuration loader rooted at the user's
// config directory.
func NewTOMLLoader(opts ...LoaderOption) *TOMLLoader {
	homeDir, _ := os.UserHomeDir()

	l := &TOMLLoader{
		globalPath: filepath.Join(homeDir, ".config", "deckfold", "config.toml"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadGlobal loads the global configuration file, writing defaults on
// first run.
func (l *TOMLLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	if _, err := os.Stat(l.globalPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(l.globalPath); err != nil {
			return nil, fmt.Errorf("creating defaults: %w", err)
		}
	}

	return readConfig(l.globalPath)
}

// LoadLocal loads the per-directory configuration file; absence is not an
// error, the caller gets a nil config.
func (l *TOMLLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	localPath := filepath.Join(dir, localConfigName)

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return nil, nil
	}

	return readConfig(localPath)
}

// CreateDefaults writes a default configuration file at the given path.
func (l *TOMLLoader) CreateDefaults(ctx context.Context, path string) error {
	return WriteDefaultConfig(path)
}

// GetGlobalPath returns the path to the global configuration file.
func (l *TOMLLoader) GetGlobalPath() string {
	return l.globalPath
}

// GetLocalPath returns the local configuration path for a directory.
func (l *TOMLLoader) GetLocalPath(dir string) string {
	return filepath.Join(dir, localConfigName)
}

// readConfig decodes and validates a single TOML config file.
func readConfig(path string) (*entities.Config, error) {
	var config entities.Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}

	return &config, nil
}

var _ ports.ConfigLoader = (*TOMLLoader)(nil)
