package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

func TestEngine_Serialize(t *testing.T) {
	engine := NewEngine()

	t.Run("horizontal rule join round trips", func(t *testing.T) {
		content := "One\n\n---\n\nTwo\n\n---\n\nThird"

		p, err := engine.Parse(content, entities.FormatHorizontalRule, nil)
		require.NoError(t, err)

		out, err := engine.Serialize(p)
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})

	t.Run("header join round trips", func(t *testing.T) {
		content := "## A\nx\n\n## B"

		p, err := engine.Parse(content, entities.FormatHeader, nil)
		require.NoError(t, err)

		out, err := engine.Serialize(p)
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})

	t.Run("full content joins verbatim", func(t *testing.T) {
		content := "# Title\n\nbody\n\n---\n\nmore"

		p, err := engine.Parse(content, entities.FormatFullContent, nil)
		require.NoError(t, err)

		out, err := engine.Serialize(p)
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})

	t.Run("frontmatter re-emitted verbatim", func(t *testing.T) {
		content := "---\ntitle: Deck\n---\n\nOne\n\n---\n\nTwo"

		p, err := engine.Parse(content, entities.FormatHorizontalRule, nil)
		require.NoError(t, err)

		out, err := engine.Serialize(p)
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})

	t.Run("headerless slide gains heading prefix under header format", func(t *testing.T) {
		p := &entities.Presentation{
			Format: entities.FormatHeader,
			Slides: []entities.Slide{
				{
					ID:    SlideID(0, "plain text"),
					Index: 0,
					Title: "plain text",
					Location: entities.SlideLocation{
						Content: "plain text",
						Type:    entities.FormatHeader,
					},
				},
			},
		}

		out, err := engine.Serialize(p)
		require.NoError(t, err)
		assert.Equal(t, "## plain text", out)
	})

	t.Run("nil presentation is an error", func(t *testing.T) {
		_, err := engine.Serialize(nil)
		assert.Error(t, err)
	})

	t.Run("invalid format is an error", func(t *testing.T) {
		_, err := engine.Serialize(&entities.Presentation{Format: "bogus"})
		assert.Error(t, err)
	})
}

func TestEngine_SerializeParse_SlideCountLaw(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name    string
		content string
		format  entities.PresentationFormat
	}{
		{"horizontal rules", "a\n\n---\n\nb\n\n---\n\nc", entities.FormatHorizontalRule},
		{"headers", "# A\n\ntext\n\n# B\n\n## C", entities.FormatHeader},
		{"blank slide between rules", "a\n\n---\n\n---\n\nb", entities.FormatHorizontalRule},
		{"full content", "anything\n\nat all", entities.FormatFullContent},
		{"fences preserved", "a\n\n```\n---\n```\n\n---\n\nb", entities.FormatHorizontalRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, err := engine.Parse(tt.content, tt.format, nil)
			require.NoError(t, err)

			out, err := engine.Serialize(p1)
			require.NoError(t, err)

			p2, err := engine.Parse(out, tt.format, nil)
			require.NoError(t, err)

			assert.Equal(t, p1.SlideCount(), p2.SlideCount())
			assert.Equal(t, p1.SlideTitles(), p2.SlideTitles())
		})
	}
}

func TestEngine_UpdateSlideContent(t *testing.T) {
	engine := NewEngine()

	base, err := engine.Parse("# Old Title\n\nold body", entities.FormatFullContent, nil)
	require.NoError(t, err)
	original := base.Slides[0]

	t.Run("recomputes id title chunks and notes", func(t *testing.T) {
		updated := engine.UpdateSlideContent(original, "# New Title\n\nnew body\nNote: check timing")

		assert.NotEqual(t, original.ID, updated.ID)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "check timing", updated.Notes)
		require.Len(t, updated.Chunks, 1)
		assert.Contains(t, updated.Chunks[0].Content, "new body")
	})

	t.Run("line offsets are preserved", func(t *testing.T) {
		updated := engine.UpdateSlideContent(original, "different")

		assert.Equal(t, original.Location.StartLine, updated.Location.StartLine)
		assert.Equal(t, original.Location.EndLine, updated.Location.EndLine)
		assert.Equal(t, original.Location.Type, updated.Location.Type)
	})

	t.Run("same content is a fixpoint", func(t *testing.T) {
		updated := engine.UpdateSlideContent(original, original.Content())

		assert.Equal(t, original, updated)
	})

	t.Run("input slide is not mutated", func(t *testing.T) {
		before := original
		_ = engine.UpdateSlideContent(original, "something else")

		assert.Equal(t, before, original)
	})
}

func TestEngine_UpdatePresentationSlide(t *testing.T) {
	engine := NewEngine()

	parse := func(t *testing.T) *entities.Presentation {
		t.Helper()
		p, err := engine.Parse("One\n\n---\n\nTwo\n\n---\n\nThree", entities.FormatHorizontalRule, nil)
		require.NoError(t, err)
		return p
	}

	t.Run("replaces slide and regenerates document", func(t *testing.T) {
		p := parse(t)

		updated, err := engine.UpdatePresentationSlide(p, 1, "Second, edited")
		require.NoError(t, err)

		assert.Equal(t, "Second, edited", updated.Slides[1].Content())
		assert.Equal(t, "One\n\n---\n\nSecond, edited\n\n---\n\nThree", updated.OriginalContent)
	})

	t.Run("input presentation is not mutated", func(t *testing.T) {
		p := parse(t)
		originalContent := p.OriginalContent
		originalSlide := p.Slides[1]

		_, err := engine.UpdatePresentationSlide(p, 1, "changed")
		require.NoError(t, err)

		assert.Equal(t, originalContent, p.OriginalContent)
		assert.Equal(t, originalSlide, p.Slides[1])
	})

	t.Run("updated presentation reparses consistently", func(t *testing.T) {
		p := parse(t)

		updated, err := engine.UpdatePresentationSlide(p, 0, "# Fresh Start")
		require.NoError(t, err)

		again, err := engine.Parse(updated.OriginalContent, updated.Format, nil)
		require.NoError(t, err)
		assert.Equal(t, updated.SlideCount(), again.SlideCount())
		assert.Equal(t, updated.SlideTitles(), again.SlideTitles())
	})

	t.Run("out of range index", func(t *testing.T) {
		p := parse(t)

		for _, index := range []int{-1, 3, 99} {
			_, err := engine.UpdatePresentationSlide(p, index, "x")
			assert.ErrorIs(t, err, ErrSlideIndexOutOfRange, "index %d", index)
		}
	})

	t.Run("nil presentation", func(t *testing.T) {
		_, err := engine.UpdatePresentationSlide(nil, 0, "x")
		assert.Error(t, err)
	})
}
