package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

func TestContentHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, ContentHash("# Hello"), ContentHash("# Hello"))
	})

	t.Run("known value", func(t *testing.T) {
		// h("abc") = (97*31+98)*31+99 = 96354 = "22ci" in base 36
		assert.Equal(t, "22ci", ContentHash("abc"))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "0", ContentHash(""))
	})

	t.Run("distinct content", func(t *testing.T) {
		assert.NotEqual(t, ContentHash("slide one"), ContentHash("slide two"))
	})

	t.Run("base36 alphabet only", func(t *testing.T) {
		hash := ContentHash("some longer content with unicode: héllo wörld ✓")
		assert.Regexp(t, `^[0-9a-z]+$`, hash)
	})
}

func TestSlideID(t *testing.T) {
	id := SlideID(3, "# Content")

	assert.Regexp(t, `^slide-3-[0-9a-z]+$`, id)
	assert.Equal(t, id, SlideID(3, "# Content"))
	assert.NotEqual(t, id, SlideID(4, "# Content"))
	assert.NotEqual(t, id, SlideID(3, "# Other"))
}

func TestChunkID(t *testing.T) {
	prefix := SlideID(0, "content")

	mdID := ChunkID(prefix, entities.ChunkMarkdown, 0, "text")
	diagramID := ChunkID(prefix, entities.ChunkMermaid, 1, "graph TD")

	assert.Regexp(t, `^slide-0-[0-9a-z]+-markdown-0-[0-9a-z]+$`, mdID)
	assert.Regexp(t, `^slide-0-[0-9a-z]+-mermaid-1-[0-9a-z]+$`, diagramID)
	assert.NotEqual(t, mdID, diagramID)
}
