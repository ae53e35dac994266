package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// DefaultConfig returns the default configuration with environment overrides
func DefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("DECKFOLD_HOST", "localhost"),
			Port:            getEnvIntOrDefault("DECKFOLD_PORT", 3000),
			ReadTimeout:     getEnvIntOrDefault("DECKFOLD_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("DECKFOLD_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvIntOrDefault("DECKFOLD_SHUTDOWN_TIMEOUT", 5),
			Environment:     getEnvOrDefault("DECKFOLD_ENV", "development"),
			CORSOrigins: getEnvSliceOrDefault("DECKFOLD_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			}),
		},
		Parser: entities.ParserConfig{
			DefaultFormat: getEnvOrDefault("DECKFOLD_DEFAULT_FORMAT", ""),
			DiagramTag:    getEnvOrDefault("DECKFOLD_DIAGRAM_TAG", "mermaid"),
			RuleMarker:    "---",
			TitleLimit:    getEnvIntOrDefault("DECKFOLD_TITLE_LIMIT", 50),
		},
		Browser: entities.BrowserConfig{
			AutoOpen: getEnvBoolOrDefault("DECKFOLD_AUTO_OPEN", true),
			Browser:  getEnvOrDefault("DECKFOLD_BROWSER", "default"),
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: getEnvIntOrDefault("DECKFOLD_WATCH_INTERVAL_MS", 200),
			DebounceMs: getEnvIntOrDefault("DECKFOLD_WATCH_DEBOUNCE_MS", 500),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("DECKFOLD_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("DECKFOLD_LOG_VERBOSE", false),
		},
	}
}

// WriteDefaultConfig writes the default configuration as TOML at the given
// path, creating parent directories as needed.
func WriteDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	file, err := os.Create(path) // #nosec G304 - path is controlled (global config path)
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := toml.NewEncoder(file)
	encoder.Indent = "  "

	if err := encoder.Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("encoding config to %s: %w", path, err)
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns a comma-separated environment variable as a
// slice or the default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
