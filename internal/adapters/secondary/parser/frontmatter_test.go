package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

func TestExtractFrontmatter(t *testing.T) {
	t.Run("extracts fields and raw block", func(t *testing.T) {
		content := "---\ntitle: My Deck\nauthor: Ada\n---\n# Slide"

		fm, body := extractFrontmatter(content)

		assert.Equal(t, "---\ntitle: My Deck\nauthor: Ada\n---", fm.raw)
		assert.Equal(t, 4, fm.lineCount)
		assert.Equal(t, "My Deck", fm.fields["title"])
		assert.Equal(t, "Ada", fm.fields["author"])
		assert.Equal(t, "# Slide", body)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		content := "# Slide\n\nbody"

		fm, body := extractFrontmatter(content)

		assert.Empty(t, fm.raw)
		assert.Zero(t, fm.lineCount)
		assert.Equal(t, content, body)
	})

	t.Run("delimiter not at start is ignored", func(t *testing.T) {
		content := "intro\n---\ntitle: x\n---"

		fm, body := extractFrontmatter(content)

		assert.Empty(t, fm.raw)
		assert.Equal(t, content, body)
	})

	t.Run("unterminated block left in place", func(t *testing.T) {
		content := "---\ntitle: x\n# Slide"

		fm, body := extractFrontmatter(content)

		assert.Empty(t, fm.raw)
		assert.Equal(t, content, body)
	})

	t.Run("malformed yaml left in place", func(t *testing.T) {
		content := "---\ntitle: [unclosed\n---\nbody"

		fm, body := extractFrontmatter(content)

		assert.Empty(t, fm.raw)
		assert.Equal(t, content, body)
	})

	t.Run("empty block", func(t *testing.T) {
		content := "---\n---\nbody"

		fm, body := extractFrontmatter(content)

		assert.Equal(t, "---\n---", fm.raw)
		assert.Equal(t, 2, fm.lineCount)
		assert.Empty(t, fm.fields)
		assert.Equal(t, "body", body)
	})
}

func TestEngine_Parse_Frontmatter(t *testing.T) {
	engine := NewEngine()

	t.Run("frontmatter delimiters are not slide delimiters", func(t *testing.T) {
		content := "---\ntitle: Deck\n---\nOne\n\n---\n\nTwo"

		p, err := engine.Parse(content, entities.FormatHorizontalRule, nil)
		require.NoError(t, err)

		require.Equal(t, 2, p.SlideCount())
		assert.Equal(t, "Deck", p.Metadata["title"])
		assert.Equal(t, "---\ntitle: Deck\n---", p.Frontmatter)
	})

	t.Run("line offsets are in original document coordinates", func(t *testing.T) {
		content := "---\ntitle: Deck\nauthor: Me\n---\n# A\n\n# B"

		p, err := engine.Parse(content, entities.FormatHeader, nil)
		require.NoError(t, err)
		require.Equal(t, 2, p.SlideCount())

		assert.Equal(t, 4, p.Slides[0].Location.StartLine)
		assert.Equal(t, 5, p.Slides[0].Location.EndLine)
		assert.Equal(t, 6, p.Slides[1].Location.StartLine)
		assert.Equal(t, 6, p.Slides[1].Location.EndLine)
	})

	t.Run("frontmatter title wins presentation title", func(t *testing.T) {
		content := "---\ntitle: Frontmatter Title\n---\n# Slide Title"

		p, err := engine.Parse(content, "", nil)
		require.NoError(t, err)

		assert.Equal(t, "Frontmatter Title", p.Title())
	})

	t.Run("detection runs on body only", func(t *testing.T) {
		// Without stripping, the frontmatter fences could skew counting.
		content := "---\ntitle: Deck\n---\nplain body text"

		p, err := engine.Parse(content, "", nil)
		require.NoError(t, err)

		assert.Equal(t, entities.FormatFullContent, p.Format)
		require.Equal(t, 1, p.SlideCount())
		assert.Equal(t, "plain body text", p.Slides[0].Content())
	})
}
