package parser

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

// Engine is the markdown segmentation engine. It is stateless after
// construction: every method is a pure function over its inputs, so a single
// Engine can be shared freely across goroutines.
type Engine struct {
	diagramTag string
	ruleMarker string
	titleLimit int
	strategies []ports.ChunkStrategy
}

// Option configures an Engine.
type Option func(*Engine)

// WithDiagramTag sets the fenced code block language treated as embedded
// diagram code (default "mermaid").
func WithDiagramTag(tag string) Option {
	return func(e *Engine) { e.diagramTag = tag }
}

// WithRuleMarker sets the horizontal-rule delimiter line (default "---").
func WithRuleMarker(marker string) Option {
	return func(e *Engine) { e.ruleMarker = marker }
}

// WithTitleLimit caps the length of titles derived from non-heading lines
// (default 50).
func WithTitleLimit(limit int) Option {
	return func(e *Engine) { e.titleLimit = limit }
}

// WithChunkStrategies replaces the chunk strategy list. Strategies are tried
// in order; supply a terminal strategy (one that always claims content) last.
func WithChunkStrategies(strategies ...ports.ChunkStrategy) Option {
	return func(e *Engine) { e.strategies = strategies }
}

// NewEngine creates a segmentation engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		diagramTag: "mermaid",
		ruleMarker: "---",
		titleLimit: 50,
	}

	for _, opt := range opts {
		opt(e)
	}

	if len(e.strategies) == 0 {
		e.strategies = []ports.ChunkStrategy{
			NewDiagramFenceStrategy(e.diagramTag),
			NewMarkdownTextStrategy(),
		}
	}

	return e
}

// NewEngineFromConfig creates an engine from parser configuration.
func NewEngineFromConfig(cfg entities.ParserConfig) *Engine {
	return NewEngine(
		WithDiagramTag(cfg.GetDiagramTag()),
		WithRuleMarker(cfg.GetRuleMarker()),
		WithTitleLimit(cfg.GetTitleLimit()),
	)
}

// Parse segments content under the given format. An empty format means
// auto-detect. Empty or whitespace-only content yields a presentation with
// zero slides. Structural problems are reported as errors; callers that must
// never fail use ParseOrFallback.
func (e *Engine) Parse(content string, format entities.PresentationFormat, repo *entities.RepositoryInfo) (*entities.Presentation, error) {
	if format != "" {
		if err := format.Validate(); err != nil {
			return nil, err
		}
	}

	normalized := normalizeNewlines(content)

	if strings.TrimSpace(normalized) == "" {
		if format == "" {
			format = entities.FormatFullContent
		}
		return &entities.Presentation{
			Slides:          []entities.Slide{},
			OriginalContent: content,
			Format:          format,
			RepositoryInfo:  repo,
		}, nil
	}

	fm, body := extractFrontmatter(normalized)

	if format == "" {
		format = e.DetectFormat(body)
	}

	spans := e.splitSpans(body, format)

	slides := make([]entities.Slide, 0, len(spans))
	for i, span := range spans {
		slides = append(slides, e.buildSlide(span, i, format, fm.lineCount))
	}

	p := &entities.Presentation{
		Slides:          slides,
		OriginalContent: content,
		Format:          format,
		Frontmatter:     fm.raw,
		Metadata:        fm.fields,
		RepositoryInfo:  repo,
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("segmentation produced invalid presentation: %w", err)
	}

	return p, nil
}

// ParseOrFallback never fails: any internal error or panic degrades to a
// single slide carrying the entire raw content, so the caller always gets a
// renderable structure.
func (e *Engine) ParseOrFallback(content string, format entities.PresentationFormat, repo *entities.RepositoryInfo) *entities.Presentation {
	p, err := e.parseRecovering(content, format, repo)
	if err != nil {
		warnOnce("parse-fallback:"+string(format), "segmentation failed, falling back to a single slide: %v", err)
		return e.fallbackPresentation(content, format, repo)
	}
	return p
}

// parseRecovering converts parser panics into errors so segmentation failure
// never propagates as a panic to the caller.
func (e *Engine) parseRecovering(content string, format entities.PresentationFormat, repo *entities.RepositoryInfo) (p *entities.Presentation, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	return e.Parse(content, format, repo)
}

// fallbackPresentation builds the single-slide degraded result: the whole
// raw content as one slide, decomposed with the terminal markdown strategy
// only so the fallback path cannot itself fail.
func (e *Engine) fallbackPresentation(content string, format entities.PresentationFormat, repo *entities.RepositoryInfo) *entities.Presentation {
	if err := format.Validate(); err != nil {
		format = entities.FormatFullContent
	}

	trimmed := strings.TrimSpace(normalizeNewlines(content))
	if trimmed == "" {
		return &entities.Presentation{
			Slides:          []entities.Slide{},
			OriginalContent: content,
			Format:          format,
			RepositoryInfo:  repo,
		}
	}

	id := SlideID(0, trimmed)
	var chunks []entities.ContentChunk
	if mdChunks, ok := NewMarkdownTextStrategy().Parse(trimmed, id); ok {
		chunks = mdChunks
	}

	slide := entities.Slide{
		ID:    id,
		Index: 0,
		Title: e.ExtractSlideTitle(trimmed),
		Location: entities.SlideLocation{
			StartLine: 0,
			EndLine:   maxInt(strings.Count(trimmed, "\n"), 0),
			Content:   trimmed,
			Type:      format,
		},
		Chunks: chunks,
		Notes:  extractNotes(trimmed),
	}

	return &entities.Presentation{
		Slides:          []entities.Slide{slide},
		OriginalContent: content,
		Format:          format,
		RepositoryInfo:  repo,
	}
}

// ParseSource segments a document using the format implied by its source
// descriptor and copies the descriptor onto the result. Draft sources
// without an identifier get one assigned.
func (e *Engine) ParseSource(src entities.Source) *entities.Presentation {
	p := e.ParseOrFallback(src.Content, src.EffectiveFormat(), src.RepositoryInfo)

	attached := src
	if attached.Type == entities.SourceDraft && attached.ID == "" {
		attached.ID = uuid.New().String()
	}
	p.Source = &attached

	return p
}

// NewErrorPresentation constructs a single-slide presentation that displays
// an error message; used by hosts when upstream content fetch fails.
func (e *Engine) NewErrorPresentation(message string) *entities.Presentation {
	content := "# Unable to Load Presentation\n\n" + strings.TrimSpace(message)
	return e.ParseOrFallback(content, entities.FormatFullContent, nil)
}

// ParseChunks decomposes slide content into typed chunks by trying each
// strategy in order. The terminal markdown strategy claims everything, so
// the result is defined for all input; empty content maps to an empty list.
func (e *Engine) ParseChunks(content string, idPrefix string) []entities.ContentChunk {
	for _, s := range e.strategies {
		if chunks, ok := s.Parse(content, idPrefix); ok {
			return chunks
		}
	}

	// No strategy claimed the content; the configured list is missing a
	// terminal strategy. Degrade to a single markdown chunk.
	warnOnce("chunks-no-terminal", "no chunk strategy claimed content; emitting single markdown chunk")
	if chunks, ok := NewMarkdownTextStrategy().Parse(content, idPrefix); ok {
		return chunks
	}
	return nil
}

var _ ports.PresentationParser = (*Engine)(nil)

// normalizeNewlines converts CRLF line endings so all scanning is \n-based.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var (
	warnMu   sync.Mutex
	warnSeen = make(map[string]struct{})
)

// warnOnce logs a diagnostic warning at most once per key for the life of
// the process. Purely diagnostic; correctness never depends on it.
func warnOnce(key, format string, args ...interface{}) {
	warnMu.Lock()
	defer warnMu.Unlock()

	if _, ok := warnSeen[key]; ok {
		return
	}
	warnSeen[key] = struct{}{}

	log.Printf("[WARN] [parser] "+format, args...)
}
