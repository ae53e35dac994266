package parser

import (
	"strings"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

// DiagramFenceStrategy claims slide content containing fenced code blocks
// tagged with the diagram language. Blocks must open with a line that is
// exactly the backtick fence plus the tag and close with a line that is
// exactly the backtick fence, both at column 0; an unterminated diagram
// fence is not claimed and the content falls through as plain markdown.
type DiagramFenceStrategy struct {
	tag string
}

// NewDiagramFenceStrategy creates a diagram fence strategy for the given
// language tag.
func NewDiagramFenceStrategy(tag string) *DiagramFenceStrategy {
	return &DiagramFenceStrategy{tag: tag}
}

// Name identifies the strategy in diagnostics.
func (s *DiagramFenceStrategy) Name() string {
	return s.tag + "-fence"
}

// Parse splits content around diagram fences: markdown text between fences
// becomes markdown chunks, fence interiors become diagram chunks, in
// document order.
func (s *DiagramFenceStrategy) Parse(content string, idPrefix string) ([]entities.ContentChunk, bool) {
	lines := strings.Split(normalizeNewlines(content), "\n")
	blocks := s.findBlocks(lines)
	if len(blocks) == 0 {
		return nil, false
	}

	var chunks []entities.ContentChunk

	appendMarkdown := func(from, to int) {
		text := strings.TrimSpace(strings.Join(lines[from:to], "\n"))
		if text == "" {
			return
		}
		chunks = append(chunks, entities.ContentChunk{
			ID:      ChunkID(idPrefix, entities.ChunkMarkdown, len(chunks), text),
			Type:    entities.ChunkMarkdown,
			Content: text,
		})
	}

	last := 0
	for _, b := range blocks {
		appendMarkdown(last, b.openLine)

		// An empty interior still yields a diagram chunk so the fence
		// survives reassembly.
		chunks = append(chunks, entities.ContentChunk{
			ID:   ChunkID(idPrefix, entities.ChunkMermaid, len(chunks), b.code),
			Type: entities.ChunkMermaid,
			Code: b.code,
		})

		last = b.closeLine + 1
	}
	appendMarkdown(last, len(lines))

	return chunks, true
}

// diagramBlock is a closed diagram fence located by line index.
type diagramBlock struct {
	openLine  int
	closeLine int
	code      string
}

// findBlocks locates closed diagram fences, using the shared fence tracker
// semantics so a diagram-looking opener inside another fence is ignored.
func (s *DiagramFenceStrategy) findBlocks(lines []string) []diagramBlock {
	tracker := NewFenceTracker()
	var blocks []diagramBlock

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if !tracker.InFence() && s.isOpener(line) {
			closing := findFenceClose(lines, i+1)
			if closing == -1 {
				// Unterminated diagram fence runs to end of input.
				break
			}

			blocks = append(blocks, diagramBlock{
				openLine:  i,
				closeLine: closing,
				code:      strings.TrimSpace(strings.Join(lines[i+1:closing], "\n")),
			})
			i = closing
			continue
		}

		tracker.Observe(line)
	}

	return blocks
}

// isOpener matches a line that is exactly the opening fence with the tag,
// allowing trailing blanks only.
func (s *DiagramFenceStrategy) isOpener(line string) bool {
	return strings.TrimRight(line, " \t") == backtickFence+s.tag
}

// findFenceClose returns the index of the first closing fence line at or
// after from, or -1.
func findFenceClose(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == backtickFence {
			return i
		}
	}
	return -1
}

var _ ports.ChunkStrategy = (*DiagramFenceStrategy)(nil)

// MarkdownTextStrategy is the terminal strategy: it claims all content and
// emits it as a single markdown chunk (or nothing when blank).
type MarkdownTextStrategy struct{}

// NewMarkdownTextStrategy creates the terminal markdown-text strategy.
func NewMarkdownTextStrategy() *MarkdownTextStrategy {
	return &MarkdownTextStrategy{}
}

// Name identifies the strategy in diagnostics.
func (s *MarkdownTextStrategy) Name() string {
	return "markdown-text"
}

// Parse emits the whole input as one markdown chunk; blank input maps to an
// empty chunk list, not an error.
func (s *MarkdownTextStrategy) Parse(content string, idPrefix string) ([]entities.ContentChunk, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return []entities.ContentChunk{}, true
	}

	return []entities.ContentChunk{{
		ID:      ChunkID(idPrefix, entities.ChunkMarkdown, 0, trimmed),
		Type:    entities.ChunkMarkdown,
		Content: trimmed,
	}}, true
}

var _ ports.ChunkStrategy = (*MarkdownTextStrategy)(nil)

// ReassembleChunks reconstructs slide markdown from its chunk decomposition,
// re-wrapping diagram chunks in their fence syntax. Joining with blank lines
// reproduces the slide's trimmed content up to boundary whitespace
// normalization (the chunk round-trip law).
func ReassembleChunks(chunks []entities.ContentChunk, diagramTag string) string {
	parts := make([]string, 0, len(chunks))

	for i := range chunks {
		c := &chunks[i]
		if c.IsDiagram() {
			if c.Code == "" {
				parts = append(parts, backtickFence+diagramTag+"\n"+backtickFence)
			} else {
				parts = append(parts, backtickFence+diagramTag+"\n"+c.Code+"\n"+backtickFence)
			}
		} else {
			parts = append(parts, c.Content)
		}
	}

	return strings.Join(parts, "\n\n")
}
