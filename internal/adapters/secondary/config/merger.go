package config

import (
	"github.com/deckfold/deckfold/internal/domain/entities"
)

// Merger combines configurations from multiple sources with later sources
// taking precedence: defaults, then global file, then local file, then CLI
// flags.
type Merger struct{}

// NewMerger creates a new configuration merger
func NewMerger() *Merger {
	return &Merger{}
}

// Merge merges multiple configurations with later configs taking precedence.
// Nil configs are skipped; zero values never override.
func (m *Merger) Merge(configs ...*entities.Config) *entities.Config {
	result := DefaultConfig()

	for _, c := range configs {
		if c != nil {
			m.mergeInto(result, c)
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *Merger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := *config

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if format, ok := flags["format"].(string); ok && format != "" {
		result.Parser.DefaultFormat = format
	}

	if noBrowser, ok := flags["no-browser"].(bool); ok && noBrowser {
		result.Browser.AutoOpen = false
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return &result
}

// mergeInto overlays non-zero fields of overlay onto base
func (m *Merger) mergeInto(base, overlay *entities.Config) {
	if overlay.Server.Host != "" {
		base.Server.Host = overlay.Server.Host
	}
	if overlay.Server.Port != 0 {
		base.Server.Port = overlay.Server.Port
	}
	if overlay.Server.ReadTimeout != 0 {
		base.Server.ReadTimeout = overlay.Server.ReadTimeout
	}
	if overlay.Server.WriteTimeout != 0 {
		base.Server.WriteTimeout = overlay.Server.WriteTimeout
	}
	if overlay.Server.ShutdownTimeout != 0 {
		base.Server.ShutdownTimeout = overlay.Server.ShutdownTimeout
	}
	if overlay.Server.Environment != "" {
		base.Server.Environment = overlay.Server.Environment
	}
	if len(overlay.Server.CORSOrigins) > 0 {
		base.Server.CORSOrigins = append([]string(nil), overlay.Server.CORSOrigins...)
	}

	if overlay.Parser.DefaultFormat != "" {
		base.Parser.DefaultFormat = overlay.Parser.DefaultFormat
	}
	if overlay.Parser.DiagramTag != "" {
		base.Parser.DiagramTag = overlay.Parser.DiagramTag
	}
	if overlay.Parser.RuleMarker != "" {
		base.Parser.RuleMarker = overlay.Parser.RuleMarker
	}
	if overlay.Parser.TitleLimit != 0 {
		base.Parser.TitleLimit = overlay.Parser.TitleLimit
	}

	// An overlay only carries browser settings when it names a browser; a
	// zero-value section cannot be told apart from an absent one, so
	// auto_open alone never overrides.
	if overlay.Browser.Browser != "" {
		base.Browser.Browser = overlay.Browser.Browser
		base.Browser.AutoOpen = overlay.Browser.AutoOpen
	}

	if overlay.Watcher.IntervalMs != 0 {
		base.Watcher.IntervalMs = overlay.Watcher.IntervalMs
	}
	if overlay.Watcher.DebounceMs != 0 {
		base.Watcher.DebounceMs = overlay.Watcher.DebounceMs
	}

	if overlay.Logging.Level != "" {
		base.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.Verbose {
		base.Logging.Verbose = true
	}
}
