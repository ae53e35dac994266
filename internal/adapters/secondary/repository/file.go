package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deckfold/deckfold/internal/domain/entities"
	"github.com/deckfold/deckfold/internal/domain/ports"
)

// maxFileSize limits presentation files to 10MB
const maxFileSize = 10 * 1024 * 1024

// FileRepository loads and persists presentations as markdown files on disk
type FileRepository struct {
	parser ports.PresentationParser
	format entities.PresentationFormat
	titler cases.Caser
}

// Option configures a FileRepository
type Option func(*FileRepository)

// WithFormat forces a segmentation format instead of the file-source
// default. An empty format means auto-detect.
func WithFormat(format entities.PresentationFormat) Option {
	return func(r *FileRepository) { r.format = format }
}

// NewFileRepository creates a file-backed presentation repository
func NewFileRepository(parser ports.PresentationParser, opts ...Option) *FileRepository {
	r := &FileRepository{
		parser: parser,
		titler: cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads a markdown file and segments it into a presentation. The
// filename supplies a fallback title when the document itself has none.
func (r *FileRepository) Load(ctx context.Context, path string) (*entities.Presentation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a markdown file", path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%s exceeds maximum file size of %d bytes", path, maxFileSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	presentation := r.parser.ParseSource(entities.Source{
		Type:    entities.SourceFile,
		Content: string(data),
		Format:  r.format,
		Path:    path,
	})

	if presentation.Title() == "" {
		if presentation.Metadata == nil {
			presentation.Metadata = make(map[string]interface{})
		}
		presentation.Metadata["title"] = r.titleFromFilename(path)
	}

	return presentation, nil
}

// Save serializes the presentation back to markdown and writes it atomically
func (r *FileRepository) Save(ctx context.Context, path string, p *entities.Presentation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("presentation cannot be nil")
	}

	serialized, err := r.parser.Serialize(p)
	if err != nil {
		return fmt.Errorf("serializing presentation: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".deckfold-*.md")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(serialized); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}

// titleFromFilename turns "my-great-deck.md" into "My Great Deck"
func (r *FileRepository) titleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return r.titler.String(base)
}

var _ ports.PresentationRepository = (*FileRepository)(nil)
