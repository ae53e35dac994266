package entities

import (
	"errors"
	"fmt"
)

// ChunkType classifies a piece of slide content
type ChunkType string

const (
	// ChunkMarkdown is prose markdown text
	ChunkMarkdown ChunkType = "markdown"

	// ChunkMermaid is the source of an embedded mermaid diagram
	ChunkMermaid ChunkType = "mermaid"
)

// ContentChunk is one typed piece of a slide's content. Markdown chunks
// carry text in Content; diagram chunks carry their source in Code with the
// fence delimiters stripped.
type ContentChunk struct {
	ID      string    `json:"id"`
	Type    ChunkType `json:"type"`
	Content string    `json:"content,omitempty"`
	Code    string    `json:"code,omitempty"`
}

// IsDiagram reports whether the chunk holds diagram source
func (c ContentChunk) IsDiagram() bool {
	return c.Type == ChunkMermaid
}

// Text returns the chunk's payload regardless of type
func (c ContentChunk) Text() string {
	if c.IsDiagram() {
		return c.Code
	}
	return c.Content
}

// Validate checks the chunk's payload matches its type
func (c ContentChunk) Validate() error {
	if c.ID == "" {
		return errors.New("chunk id cannot be empty")
	}

	switch c.Type {
	case ChunkMarkdown:
		if c.Code != "" {
			return errors.New("markdown chunk cannot carry diagram code")
		}
	case ChunkMermaid:
		// Empty code is legal: an empty fence interior still produces a
		// diagram chunk so the fence round-trips.
		if c.Content != "" {
			return errors.New("diagram chunk cannot carry markdown content")
		}
	default:
		return fmt.Errorf("unknown chunk type: %q", string(c.Type))
	}

	return nil
}
