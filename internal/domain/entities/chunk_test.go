package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentChunk_Validate(t *testing.T) {
	tests := []struct {
		name    string
		chunk   ContentChunk
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid markdown chunk",
			chunk: ContentChunk{ID: "c1", Type: ChunkMarkdown, Content: "text"},
		},
		{
			name:  "valid mermaid chunk",
			chunk: ContentChunk{ID: "c2", Type: ChunkMermaid, Code: "graph TD"},
		},
		{
			name:  "mermaid chunk with empty code",
			chunk: ContentChunk{ID: "c7", Type: ChunkMermaid},
		},
		{
			name:    "missing id",
			chunk:   ContentChunk{Type: ChunkMarkdown, Content: "text"},
			wantErr: true,
			errMsg:  "chunk id cannot be empty",
		},
		{
			name:    "markdown with code payload",
			chunk:   ContentChunk{ID: "c3", Type: ChunkMarkdown, Content: "text", Code: "oops"},
			wantErr: true,
			errMsg:  "markdown chunk cannot carry diagram code",
		},
		{
			name:    "mermaid with markdown payload",
			chunk:   ContentChunk{ID: "c4", Type: ChunkMermaid, Code: "graph", Content: "oops"},
			wantErr: true,
			errMsg:  "diagram chunk cannot carry markdown content",
		},
		{
			name:    "unknown type",
			chunk:   ContentChunk{ID: "c6", Type: "video"},
			wantErr: true,
			errMsg:  "unknown chunk type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.chunk.Validate()
			if tt.wantErr {
				assert.ErrorContains(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContentChunk_Accessors(t *testing.T) {
	md := ContentChunk{ID: "a", Type: ChunkMarkdown, Content: "text"}
	diagram := ContentChunk{ID: "b", Type: ChunkMermaid, Code: "graph TD"}

	assert.False(t, md.IsDiagram())
	assert.True(t, diagram.IsDiagram())
	assert.Equal(t, "text", md.Text())
	assert.Equal(t, "graph TD", diagram.Text())
}
